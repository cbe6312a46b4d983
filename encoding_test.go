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

func TestMatchingEncoding_NoHeaderUsesIdentity(t *testing.T) {
	t.Parallel()

	encoding, ok := MatchingEncoding(nil, nil)
	assert.True(t, ok)
	assert.Equal(t, DefaultEncoding, encoding)
}

func TestMatchingEncoding_EmptyProvidedRequiresIdentityAccepted(t *testing.T) {
	t.Parallel()

	_, ok := MatchingEncoding(nil, ParseHeaderValues("gzip;q=1, identity;q=0"))
	assert.False(t, ok)
}

func TestMatchingEncoding_PicksResourceEncoding(t *testing.T) {
	t.Parallel()

	encoding, ok := MatchingEncoding([]string{"gzip", "identity"}, ParseHeaderValues("gzip"))
	assert.True(t, ok)
	assert.Equal(t, "gzip", encoding)
}
