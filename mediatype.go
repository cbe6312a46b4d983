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

// MediaTypeMatch ranks how specifically a produced media type satisfies an
// acceptable one. Lower values are more specific; sorting by this value
// directly gives Full before SubStar before Star before None.
type MediaTypeMatch int

const (
	MatchFull MediaTypeMatch = iota
	MatchSubStar
	MatchStar
	MatchNone
)

// MediaType is `(main, sub, weight)` parsed from a header value's primary
// string, or manufactured directly from a resource's produces list.
type MediaType struct {
	Main   string
	Sub    string
	Weight float64
}

// ParseMediaType splits a media range on the first '/'. A missing or empty
// main/sub part defaults to "*".
func ParseMediaType(raw string) MediaType {
	main, sub, found := strings.Cut(raw, "/")
	if main == "" {
		return MediaType{Main: "*", Sub: "*", Weight: 1.0}
	}
	if !found || sub == "" {
		sub = "*"
	}
	return MediaType{Main: main, Sub: sub, Weight: 1.0}
}

// mediaTypeFromHeaderValue parses the primary value as a MediaType and
// carries over the value's q parameter as the weight.
func mediaTypeFromHeaderValue(hv HeaderValue) MediaType {
	mt := ParseMediaType(hv.Value)
	mt.Weight = hv.Quality()
	return mt
}

// specificity mirrors the source's weight() tuple: 0 for a concrete type,
// 1 for "type/*", 2 for "*/*".
func (m MediaType) specificity() int {
	switch {
	case m.Main == "*" && m.Sub == "*":
		return 2
	case m.Sub == "*":
		return 1
	default:
		return 0
	}
}

// Matches reports how well m (typically a produced, concrete type)
// satisfies acceptor (typically a client's Accept entry). Only acceptor's
// main type being "*" yields Star, regardless of acceptor's sub — this
// mirrors the source rather than the stricter "*/*"-only reading.
func (m MediaType) Matches(acceptor MediaType) MediaTypeMatch {
	switch {
	case acceptor.Main == "*":
		return MatchStar
	case m.Main == acceptor.Main && acceptor.Sub == "*":
		return MatchSubStar
	case m.Main == acceptor.Main && m.Sub == acceptor.Sub:
		return MatchFull
	default:
		return MatchNone
	}
}

func (m MediaType) String() string {
	return m.Main + "/" + m.Sub
}

// SortMediaTypes orders header-sourced media types by descending weight,
// breaking ties by ascending specificity (concrete types before "type/*"
// before "*/*"). The sort is stable so equal (weight, specificity) pairs
// keep their original relative order.
func SortMediaTypes(values []HeaderValue) []MediaType {
	sorted := make([]MediaType, len(values))
	for i, hv := range values {
		sorted[i] = mediaTypeFromHeaderValue(hv)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := safeWeight(sorted[i].Weight), safeWeight(sorted[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return sorted[i].specificity() < sorted[j].specificity()
	})
	return sorted
}

// MatchingContentType picks the media type the response will be rendered
// as. With no Accept header present it is simply the first produced type.
// Otherwise every (produced, acceptable) pair is considered and the most
// specific match kind wins — any Full beats any SubStar beats any Star —
// with ties broken by the order of produces. MatchNone pairs never win.
func MatchingContentType(produces []string, accept []HeaderValue) (string, bool) {
	if len(accept) == 0 {
		if len(produces) == 0 {
			return "", false
		}
		return produces[0], true
	}

	acceptable := SortMediaTypes(accept)

	var (
		best      string
		bestMatch = MatchNone
		found     bool
	)
	for _, produced := range produces {
		producedType := ParseMediaType(produced)
		for _, acceptableType := range acceptable {
			m := producedType.Matches(acceptableType)
			if m == MatchNone {
				continue
			}
			if !found || m < bestMatch {
				best, bestMatch, found = produced, m, true
			}
		}
	}
	return best, found
}
