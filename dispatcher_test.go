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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_LongestPrefixWins(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	d.Mount("/widgets", NewResource())

	specific := NewResource()
	specific.RenderResponse = func(context.Context, *Context, *Resource) *string {
		body := "specific"
		return &body
	}
	d.Mount("/widgets/special", specific)

	req := NewRequest()
	req.RequestPath = "/widgets/special/42"
	ctx := NewContext(req)
	d.DispatchToResource(context.Background(), ctx)

	assert.Equal(t, "specific", string(ctx.Response.Body))
	assert.Equal(t, "/42", ctx.Request.RequestPath)
	assert.Equal(t, "/widgets/special", ctx.Request.BasePath)
}

// "/foo" must not match a request for "/foobar" — prefixing is segment-wise.
func TestDispatcher_SegmentBoundaryPreventsFalsePositiveMatch(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	d.Mount("/foo", NewResource())

	req := NewRequest()
	req.RequestPath = "/foobar"
	ctx := NewContext(req)
	d.DispatchToResource(context.Background(), ctx)

	assert.Equal(t, 404, ctx.Response.Status)
}

func TestDispatcher_NoMatchIs404(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	req := NewRequest()
	req.RequestPath = "/nowhere"
	ctx := NewContext(req)
	d.DispatchToResource(context.Background(), ctx)

	assert.Equal(t, 404, ctx.Response.Status)
}

func TestDispatcher_Dispatch_WritesHTTPResponseAndRequestID(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	d.Mount("/", NewResource())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	d.Dispatch(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
