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

// Mirrors spec.md scenario 10: repeated keys accumulate, an empty value is
// preserved, and an embedded '=' in the value is left alone by the
// first-'='-only split.
func TestParseQuery_AccumulatesAndPreservesEmbeddedEquals(t *testing.T) {
	t.Parallel()

	got := parseQuery("a=a%20b%20c&k=&c=d=e=f")
	assert.Equal(t, []string{"a b c"}, got["a"])
	assert.Equal(t, []string{""}, got["k"])
	assert.Equal(t, []string{"d=e=f"}, got["c"])
}

func TestParseQuery_RepeatedKeysAccumulateInOrder(t *testing.T) {
	t.Parallel()

	got := parseQuery("tag=a&tag=b&tag=c")
	assert.Equal(t, []string{"a", "b", "c"}, got["tag"])
}

func TestParseQuery_EmptyStringYieldsEmptyMap(t *testing.T) {
	t.Parallel()

	got := parseQuery("")
	assert.Empty(t, got)
}

func TestDecodeQueryComponent_MalformedEscapeIsLeftLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100%off", decodeQueryComponent("100%off"))
	assert.Equal(t, "a b", decodeQueryComponent("a+b"))
	assert.Equal(t, "a&b", decodeQueryComponent("a%26b"))
}
