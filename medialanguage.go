// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webmachine

import (
	"sort"
	"strings"
)

// MediaLanguage is `(main, sub, weight)` parsed from a language tag by
// splitting on the first '-'. Unlike MediaType, an absent sub is the empty
// string rather than "*" — there is no sub-tag wildcarding.
type MediaLanguage struct {
	Main   string
	Sub    string
	Weight float64
}

// ParseMediaLanguage parses a language tag such as "en-GB".
func ParseMediaLanguage(raw string) MediaLanguage {
	main, sub, found := strings.Cut(raw, "-")
	if main == "" {
		return MediaLanguage{Main: "*", Weight: 1.0}
	}
	if !found {
		sub = ""
	}
	return MediaLanguage{Main: main, Sub: sub, Weight: 1.0}
}

func mediaLanguageFromHeaderValue(hv HeaderValue) MediaLanguage {
	lang := ParseMediaLanguage(hv.Value)
	lang.Weight = hv.Quality()
	return lang
}

func (l MediaLanguage) String() string {
	if l.Sub == "" {
		return l.Main
	}
	return l.Main + "-" + l.Sub
}

// Matches reports whether l (a server-provided language) satisfies other
// (a client's acceptable language): other is "*", l equals other exactly,
// or other is a sub-tag refinement of l (e.g. l="en", other="en-GB").
func (l MediaLanguage) Matches(other MediaLanguage) bool {
	if other.Main == "*" || (l.Main == other.Main && l.Sub == other.Sub) {
		return true
	}
	return strings.HasPrefix(other.String(), l.String()+"-")
}

// SortMediaLanguages drops zero-weight entries and sorts the remainder by
// descending weight.
func SortMediaLanguages(values []HeaderValue) []MediaLanguage {
	var sorted []MediaLanguage
	for _, hv := range values {
		lang := mediaLanguageFromHeaderValue(hv)
		if lang.Weight > 0 {
			sorted = append(sorted, lang)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return safeWeight(sorted[i].Weight) > safeWeight(sorted[j].Weight)
	})
	return sorted
}

// MatchingLanguage picks the Content-Language value. When the resource
// declares no languages, the client's top preference is used verbatim (or
// "*" if the client expressed none); otherwise the first resource language
// that matches any acceptable language, in acceptable-preference order,
// wins.
func MatchingLanguage(languagesProvided []string, accept []HeaderValue) (string, bool) {
	if len(accept) > 0 {
		acceptable := SortMediaLanguages(accept)
		if len(languagesProvided) == 0 {
			if len(acceptable) > 0 {
				return acceptable[0].String(), true
			}
			return "", false
		}
		for _, a := range acceptable {
			for _, provided := range languagesProvided {
				p := ParseMediaLanguage(provided)
				if p.Matches(a) {
					return p.String(), true
				}
			}
		}
		return "", false
	}
	if len(languagesProvided) == 0 {
		return "*", true
	}
	return languagesProvided[0], true
}
