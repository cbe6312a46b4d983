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

func TestRequest_AddHeaderReplacesCaseInsensitively(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	req.AddHeader("Accept", ParseHeaderValues("text/html"))
	req.AddHeader("accept", ParseHeaderValues("application/json"))

	values := req.FindHeader("ACCEPT")
	if assert.Len(t, values, 1) {
		assert.Equal(t, "application/json", values[0].Value)
	}
}

func TestRequest_ContentTypeDefaultsWhenHeaderAbsent(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	assert.Equal(t, "application/json", req.ContentType())
}

func TestRequest_MethodPredicates(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	assert.True(t, req.IsGet())
	assert.True(t, req.IsGetOrHead())
	assert.False(t, req.IsPost())

	req.Method = "POST"
	assert.True(t, req.IsPost())
	assert.True(t, req.IsPutOrPost())
	assert.False(t, req.IsGet())
}

func TestRequest_HasHeaderValueMatchesPrimaryValueOnly(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	req.AddHeader("If-Match", []HeaderValue{BasicHeaderValue("*")})
	assert.True(t, req.HasHeaderValue("If-Match", "*"))
	assert.False(t, req.HasHeaderValue("If-Match", "other"))
}
