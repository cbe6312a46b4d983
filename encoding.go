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

// DefaultEncoding is appended to the client's Accept-Encoding preferences
// when neither it nor "*" is already present.
const DefaultEncoding = "identity"

// Encoding is a `(name, weight)` pair. Equality is case-insensitive.
type Encoding struct {
	Name   string
	Weight float64
}

func ParseEncoding(raw string) Encoding {
	return Encoding{Name: raw, Weight: 1.0}
}

func encodingFromHeaderValue(hv HeaderValue) Encoding {
	return Encoding{Name: hv.Value, Weight: hv.Quality()}
}

func (e Encoding) String() string { return e.Name }

func (e Encoding) Matches(other Encoding) bool {
	return other.Name == "*" || strings.EqualFold(e.Name, other.Name)
}

// SortEncodings appends identity if the client did not already request it
// or "*", drops zero-weight entries, and sorts by descending weight.
func SortEncodings(values []HeaderValue) []Encoding {
	values = appendDefaultIfMissing(values, DefaultEncoding, func(hv HeaderValue) bool {
		return hv.Value == "*" || strings.EqualFold(hv.Value, DefaultEncoding)
	})
	var sorted []Encoding
	for _, hv := range values {
		enc := encodingFromHeaderValue(hv)
		if enc.Weight > 0 {
			sorted = append(sorted, enc)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return safeWeight(sorted[i].Weight) > safeWeight(sorted[j].Weight)
	})
	return sorted
}

// MatchingEncoding picks the Content-Encoding value. With no Accept-Encoding
// header, the resource's first declared encoding is used, or identity when
// it declares none. With the header present: an empty encodings_provided
// list matches only if identity survived the client's defaulting/weighting
// rules; otherwise the first resource encoding matching any acceptable
// encoding, in client-preference order, wins.
func MatchingEncoding(encodingsProvided []string, accept []HeaderValue) (string, bool) {
	if len(accept) > 0 {
		acceptable := SortEncodings(accept)
		if len(encodingsProvided) == 0 {
			for _, a := range acceptable {
				if strings.EqualFold(a.Name, DefaultEncoding) {
					return DefaultEncoding, true
				}
			}
			return "", false
		}
		for _, a := range acceptable {
			for _, provided := range encodingsProvided {
				p := ParseEncoding(provided)
				if p.Matches(a) {
					return p.String(), true
				}
			}
		}
		return "", false
	}
	if len(encodingsProvided) == 0 {
		return DefaultEncoding, true
	}
	return encodingsProvided[0], true
}
