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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchingCharset_NoHeaderDefaultsWhenResourceDeclaresNone(t *testing.T) {
	t.Parallel()

	charset, ok := MatchingCharset(nil, nil)
	assert.True(t, ok)
	assert.Equal(t, DefaultCharset, charset)
}

func TestMatchingCharset_RejectsWhenNothingMatches(t *testing.T) {
	t.Parallel()

	// Mirrors spec.md scenario 9: client only accepts iso-8859-5 and
	// explicitly excludes the default charset at q=0.
	accept := ParseHeaderValues("iso-8859-5, iso-8859-1;q=0")
	_, ok := MatchingCharset([]string{"UTF-8", "US-ASCII"}, accept)
	assert.False(t, ok)
}

func TestMatchingCharset_CaseInsensitiveAndWildcard(t *testing.T) {
	t.Parallel()

	charset, ok := MatchingCharset([]string{"utf-8"}, ParseHeaderValues("*"))
	assert.True(t, ok)
	assert.Equal(t, "utf-8", charset)

	charset, ok = MatchingCharset([]string{"UTF-8"}, ParseHeaderValues("utf-8"))
	assert.True(t, ok)
	assert.Equal(t, "UTF-8", charset)
}
