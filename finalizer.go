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
	"time"
)

// Finalise shapes the response after Run has settled on a status: it fills
// in Content-Type, builds Vary from the resource's declared variances plus
// whichever negotiation axes actually had more than one option, stamps
// ETag/Expires/Last-Modified on GET/HEAD, renders a body for a bare 200
// GET, and finally gives the resource's FinaliseResponse hook, if any, the
// last word.
func Finalise(parent context.Context, ctx *Context, resource *Resource) {
	if !ctx.Response.HasHeader("Content-Type") {
		mediaType := "application/json"
		if ctx.SelectedMediaType != nil {
			mediaType = *ctx.SelectedMediaType
		}
		charset := DefaultCharset
		if ctx.SelectedCharset != nil {
			charset = *ctx.SelectedCharset
		}
		ctx.Response.AddHeader("Content-Type", []HeaderValue{{
			Value:  mediaType,
			Params: []HeaderParam{{Key: "charset", Value: charset}},
		}})
	}

	var vary []HeaderValue
	if !ctx.Response.HasHeader("Vary") {
		for _, v := range resource.Variances {
			vary = append(vary, ParseHeaderValue(v))
		}
	}
	if len(resource.LanguagesProvided) > 1 {
		vary = append(vary, BasicHeaderValue("Accept-Language"))
	}
	if len(resource.CharsetsProvided) > 1 {
		vary = append(vary, BasicHeaderValue("Accept-Charset"))
	}
	if len(resource.EncodingsProvided) > 1 {
		vary = append(vary, BasicHeaderValue("Accept-Encoding"))
	}
	if len(resource.Produces) > 1 {
		vary = append(vary, BasicHeaderValue("Accept"))
	}
	if len(vary) > 1 {
		ctx.Response.AddHeader("Vary", dedupHeaderValues(vary))
	}

	if ctx.Request.IsGetOrHead() {
		if etag := resource.GenerateETag(parent, ctx, resource); etag != nil {
			ctx.Response.AddHeader("ETag", []HeaderValue{BasicHeaderValue(*etag).Quoted()})
		}
		if expires := resource.Expires(parent, ctx, resource); expires != nil {
			ctx.Response.AddHeader("Expires", []HeaderValue{BasicHeaderValue(formatHTTPDate(*expires))})
		}
		if lastModified := resource.LastModified(parent, ctx, resource); lastModified != nil {
			ctx.Response.AddHeader("Last-Modified", []HeaderValue{BasicHeaderValue(formatHTTPDate(*lastModified))})
		}
	}

	if !ctx.Response.HasBody() && ctx.Response.Status == 200 && ctx.Request.IsGet() {
		if body, ok := renderCached(parent, ctx, resource); ok {
			ctx.Response.Body = []byte(body)
		}
	}

	if resource.FinaliseResponse != nil {
		resource.FinaliseResponse(parent, ctx, resource)
	}
}

// renderCached calls RenderResponse, consulting and populating the
// resource's RenderCache (if any) by request path.
func renderCached(parent context.Context, ctx *Context, resource *Resource) (string, bool) {
	if resource.RenderCache != nil {
		if cached, ok := resource.RenderCache.Get(ctx.Request.RequestPath); ok {
			return cached, true
		}
	}
	body := resource.RenderResponse(parent, ctx, resource)
	if body == nil {
		return "", false
	}
	if resource.RenderCache != nil {
		resource.RenderCache.Save(ctx.Request.RequestPath, *body)
	}
	return *body, true
}

// formatHTTPDate renders t as RFC 2822, preserving t's own zone offset
// rather than normalizing to UTC.
func formatHTTPDate(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// dedupHeaderValues drops later duplicates by primary value, preserving
// first-seen order — the source's `.unique()` on an iterator of
// HeaderValue.
func dedupHeaderValues(values []HeaderValue) []HeaderValue {
	seen := make(map[string]bool, len(values))
	out := make([]HeaderValue, 0, len(values))
	for _, v := range values {
		if seen[v.Value] {
			continue
		}
		seen[v.Value] = true
		out = append(out, v)
	}
	return out
}
