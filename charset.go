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

// DefaultCharset is appended to the client's Accept-Charset preferences
// when neither it nor "*" is already present, and is used as the implicit
// charset when a resource declares none.
const DefaultCharset = "ISO-8859-1"

// Charset is a `(name, weight)` pair. Equality is case-insensitive.
type Charset struct {
	Name   string
	Weight float64
}

func ParseCharset(raw string) Charset {
	return Charset{Name: raw, Weight: 1.0}
}

func charsetFromHeaderValue(hv HeaderValue) Charset {
	return Charset{Name: hv.Value, Weight: hv.Quality()}
}

func (c Charset) String() string { return c.Name }

// Matches reports whether c (a server charset) satisfies other (a client
// preference): other is "*" or the names are equal, case-insensitively.
func (c Charset) Matches(other Charset) bool {
	return other.Name == "*" || strings.EqualFold(c.Name, other.Name)
}

// SortMediaCharsets appends the default charset if the client did not
// already request it or "*", drops zero-weight entries, and sorts the
// remainder by descending weight.
func SortMediaCharsets(values []HeaderValue) []Charset {
	values = appendDefaultIfMissing(values, DefaultCharset, func(hv HeaderValue) bool {
		return hv.Value == "*" || strings.EqualFold(hv.Value, DefaultCharset)
	})
	var sorted []Charset
	for _, hv := range values {
		cs := charsetFromHeaderValue(hv)
		if cs.Weight > 0 {
			sorted = append(sorted, cs)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return safeWeight(sorted[i].Weight) > safeWeight(sorted[j].Weight)
	})
	return sorted
}

// MatchingCharset picks the response charset. When the client expresses no
// preference (no header, or an empty one) the resource's first declared
// charset wins, or the default if it declares none. Otherwise, when the
// resource declares no charsets, the client's top acceptable charset is
// used; when it declares some, the first resource charset matching any
// acceptable charset, in client-preference order, wins. An empty result
// (after the defaulting and weight-0 rules) means the resource is not
// acceptable.
func MatchingCharset(charsetsProvided []string, accept []HeaderValue) (string, bool) {
	if len(accept) > 0 {
		acceptable := SortMediaCharsets(accept)
		if len(charsetsProvided) == 0 {
			if len(acceptable) > 0 {
				return acceptable[0].String(), true
			}
			return "", false
		}
		for _, a := range acceptable {
			for _, provided := range charsetsProvided {
				p := ParseCharset(provided)
				if p.Matches(a) {
					return p.String(), true
				}
			}
		}
		return "", false
	}
	if len(charsetsProvided) == 0 {
		return DefaultCharset, true
	}
	return charsetsProvided[0], true
}

func appendDefaultIfMissing(values []HeaderValue, def string, already func(HeaderValue) bool) []HeaderValue {
	for _, hv := range values {
		if already(hv) {
			return values
		}
	}
	out := make([]HeaderValue, len(values), len(values)+1)
	copy(out, values)
	return append(out, BasicHeaderValue(def))
}
