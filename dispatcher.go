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
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the package's otel tracer, used to span every dispatched
// request the way the router submodule it's modeled on spans every route
// match.
var tracer = otel.Tracer("github.com/angular-rust/ux-webmachine")

// Dispatcher maps route paths to Resources and runs the decision graph for
// whichever one matches a request. Routes are matched by longest prefix,
// not by a radix tree or parameter syntax — a Dispatcher only ever deals
// in static path prefixes, the rest of the path is left for the resource
// itself to interpret via Request.RequestPath.
type Dispatcher struct {
	routes map[string]*Resource

	// Metrics, when set, is fed one observation per dispatched request.
	// Build one with NewMetrics and register it before traffic arrives.
	Metrics *Metrics

	// Observability, when set, additionally records each dispatched
	// request through the otel SDK pipeline built by
	// NewObservabilityProvider, independent of Metrics' own
	// client_golang collectors.
	Observability *ObservabilityProvider
}

// NewDispatcher returns an empty Dispatcher ready for Mount calls.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{routes: make(map[string]*Resource)}
}

// Mount registers resource to serve every request whose path starts with
// path. Mounting the same path twice replaces the previous resource. It
// panics if resource is nil or fails Validate, since a misconfigured
// Resource is a wiring bug, not a runtime condition to recover from.
func (d *Dispatcher) Mount(path string, resource *Resource) {
	if resource == nil {
		panic(ErrNilResource)
	}
	if err := resource.Validate(); err != nil {
		panic(err)
	}
	d.routes[path] = resource
}

// matchPaths returns every mounted path whose segments are a prefix of the
// request path's segments, in no particular order. Segment-wise, not
// string, prefixing: a route "/foo" does not match a request for
// "/foobar".
func (d *Dispatcher) matchPaths(req *Request) []string {
	requestSegments := sanitisePath(req.RequestPath)
	var matches []string
	for route := range d.routes {
		if segmentsStartWith(requestSegments, sanitisePath(route)) {
			matches = append(matches, route)
		}
	}
	return matches
}

func segmentsStartWith(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, p := range prefix {
		if segments[i] != p {
			return false
		}
	}
	return true
}

// DispatchToResource finds the longest matching route for ctx.Request,
// rewrites the request path relative to it, and runs the decision graph
// and finalizer against the matched Resource. A 404 is set directly on the
// response when nothing matches.
func (d *Dispatcher) DispatchToResource(parent context.Context, ctx *Context) {
	if ctx.Request == nil {
		panic(ErrNilRequest)
	}

	matches := d.matchPaths(ctx.Request)
	sort.Slice(matches, func(i, j int) bool { return len(matches[i]) > len(matches[j]) })

	if len(matches) == 0 {
		trace.SpanFromContext(parent).RecordError(ErrNoRouteMatched)
		ctx.Response.Status = 404
		return
	}
	route := matches[0]
	resource := d.routes[route]
	updatePathsForResource(ctx.Request, route)

	span := trace.SpanFromContext(parent)
	span.SetAttributes(attribute.String("webmachine.route", route))

	started := time.Now()
	steps := Run(parent, ctx, resource)
	Finalise(parent, ctx, resource)
	elapsed := time.Since(started)

	span.SetAttributes(attribute.Int("webmachine.status", ctx.Response.Status))
	if ctx.Response.Status >= 500 {
		span.SetStatus(codes.Error, "resource terminated with a server error")
	}
	d.Metrics.observe(route, ctx.Response.Status, steps, elapsed)
	d.Observability.recordRequest(parent, route, ctx.Response.Status)
}

// Dispatch builds a Context from an *http.Request, runs DispatchToResource
// against it, and writes the result onto w.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) {
	parent, span := tracer.Start(r.Context(), "webmachine.dispatch")
	defer span.End()

	req := requestFromHTTP(r)
	ctx := NewContext(req)
	ctx.Metadata["request_id"] = uuid.NewString()
	span.SetAttributes(attribute.String("webmachine.request_id", ctx.Metadata["request_id"]))

	d.DispatchToResource(parent, ctx)

	ctx.Response.AddHeader("X-Request-Id", []HeaderValue{BasicHeaderValue(ctx.Metadata["request_id"])})
	writeHTTPResponse(w, ctx.Response)
}

func requestFromHTTP(r *http.Request) *Request {
	headers := make(map[string][]HeaderValue, len(r.Header))
	for name, values := range r.Header {
		var parsed []HeaderValue
		for _, v := range values {
			parsed = append(parsed, ParseHeaderValues(v)...)
		}
		headers[name] = parsed
	}

	var body []byte
	if r.Body != nil {
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			body = data
		}
	}

	return &Request{
		RequestPath: r.URL.Path,
		BasePath:    "/",
		Method:      strings.ToUpper(r.Method),
		Headers:     headers,
		Body:        body,
		Query:       parseQuery(r.URL.RawQuery),
	}
}

func writeHTTPResponse(w http.ResponseWriter, resp *Response) {
	for _, name := range resp.HeaderNames() {
		values := resp.Headers[name]
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = v.String()
		}
		w.Header().Set(name, strings.Join(rendered, ", "))
	}
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

// sanitisePath splits a path on '/', dropping empty segments.
func sanitisePath(path string) []string {
	segments := strings.Split(path, "/")
	out := segments[:0]
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joinPaths concatenates base and path segments into an absolute path,
// always starting with "/".
func joinPaths(base, path []string) string {
	all := make([]string, 0, len(base)+len(path))
	all = append(all, base...)
	all = append(all, path...)
	if len(all) == 0 {
		return "/"
	}
	joined := strings.Join(all, "/")
	if strings.HasPrefix(joined, "/") {
		return joined
	}
	return "/" + joined
}

// updatePathsForResource rewrites req.RequestPath to be relative to the
// matched route, recording the route itself as req.BasePath.
func updatePathsForResource(req *Request, basePath string) {
	req.BasePath = basePath
	if len(req.RequestPath) > len(basePath) {
		subpath := req.RequestPath[len(basePath):]
		if strings.HasPrefix(subpath, "/") {
			req.RequestPath = subpath
		} else {
			req.RequestPath = "/" + subpath
		}
	} else {
		req.RequestPath = "/"
	}
}
