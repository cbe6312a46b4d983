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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalise_SynthesizesContentTypeWithCharset(t *testing.T) {
	t.Parallel()

	ctx := NewContext(NewRequest())
	resource := NewResource()
	Finalise(context.Background(), ctx, resource)

	values := ctx.Response.Headers["Content-Type"]
	require.Len(t, values, 1)
	assert.Equal(t, "application/json", values[0].Value)
	charset, ok := values[0].Param("charset")
	assert.True(t, ok)
	assert.Equal(t, DefaultCharset, charset)
}

func TestFinalise_LeavesExistingContentTypeAlone(t *testing.T) {
	t.Parallel()

	ctx := NewContext(NewRequest())
	ctx.Response.AddHeader("Content-Type", []HeaderValue{BasicHeaderValue("text/plain")})
	Finalise(context.Background(), ctx, NewResource())

	values := ctx.Response.Headers["Content-Type"]
	require.Len(t, values, 1)
	assert.Equal(t, "text/plain", values[0].Value)
}

// Only ETag is quoted on serialization; Expires/Last-Modified are not,
// matching the plain RFC 1123 date form rather than a quoted token.
func TestFinalise_OnlyETagIsQuoted(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	resource := NewResource()
	resource.GenerateETag = func(context.Context, *Context, *Resource) *string {
		etag := "v1"
		return &etag
	}
	resource.LastModified = func(context.Context, *Context, *Resource) *time.Time {
		return &when
	}
	resource.Expires = func(context.Context, *Context, *Resource) *time.Time {
		return &when
	}

	ctx := NewContext(NewRequest())
	Finalise(context.Background(), ctx, resource)

	etag := ctx.Response.Headers["ETag"]
	require.Len(t, etag, 1)
	assert.True(t, etag[0].Quote)
	assert.Equal(t, "v1", etag[0].Value)

	lastModified := ctx.Response.Headers["Last-Modified"]
	require.Len(t, lastModified, 1)
	assert.False(t, lastModified[0].Quote)

	expires := ctx.Response.Headers["Expires"]
	require.Len(t, expires, 1)
	assert.False(t, expires[0].Quote)
}

// Last-Modified/Expires render using the callback's own zone offset rather
// than being normalized to UTC.
func TestFinalise_PreservesNonUTCOffset(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*60*60)
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, loc)

	resource := NewResource()
	resource.LastModified = func(context.Context, *Context, *Resource) *time.Time {
		return &when
	}

	ctx := NewContext(NewRequest())
	Finalise(context.Background(), ctx, resource)

	lastModified := ctx.Response.Headers["Last-Modified"]
	require.Len(t, lastModified, 1)
	assert.Equal(t, when.Format(time.RFC1123Z), lastModified[0].Value)
	assert.Contains(t, lastModified[0].Value, "-0500")
}

func TestFinalise_ConditionalHeadersSkippedForNonGetHead(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	req.Method = "POST"

	resource := NewResource()
	resource.GenerateETag = func(context.Context, *Context, *Resource) *string {
		etag := "v1"
		return &etag
	}

	ctx := NewContext(req)
	Finalise(context.Background(), ctx, resource)

	assert.False(t, ctx.Response.HasHeader("ETag"))
}

func TestFinalise_RendersBodyForBareGet200AndCaches(t *testing.T) {
	t.Parallel()

	calls := 0
	resource := NewResource()
	resource.RenderResponse = func(context.Context, *Context, *Resource) *string {
		calls++
		body := "rendered"
		return &body
	}
	resource.RenderCache = NewMapCache[string, string]()

	req := NewRequest()
	ctx := NewContext(req)
	Finalise(context.Background(), ctx, resource)
	assert.Equal(t, "rendered", string(ctx.Response.Body))
	assert.Equal(t, 1, calls)

	ctx2 := NewContext(NewRequest())
	Finalise(context.Background(), ctx2, resource)
	assert.Equal(t, "rendered", string(ctx2.Response.Body))
	assert.Equal(t, 1, calls, "second render should be served from cache")
}

func TestFinalise_VaryDedupesAcrossDeclaredAndNegotiatedAxes(t *testing.T) {
	t.Parallel()

	resource := NewResource()
	resource.Variances = []string{"Accept-Language"}
	resource.LanguagesProvided = []string{"en", "fr"}

	ctx := NewContext(NewRequest())
	Finalise(context.Background(), ctx, resource)

	vary := ctx.Response.Headers["Vary"]
	count := 0
	for _, v := range vary {
		if v.Value == "Accept-Language" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
