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

func TestMapCache_SaveGetRemoveClear(t *testing.T) {
	t.Parallel()

	c := NewMapCache[string, string]()
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Save("a", "1")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	removed, ok := c.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, "1", removed)
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Save("b", "2")
	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestNullCache_NeverRetainsAnything(t *testing.T) {
	t.Parallel()

	var c NullCache[string, string]
	c.Save("a", "1")
	_, ok := c.Get("a")
	assert.False(t, ok)
}
