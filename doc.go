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

// Package webmachine drives an HTTP request through a fixed decision graph
// and produces a protocol-correct response.
//
// Applications describe a Resource as a set of callbacks — existence,
// authorization, ETag generation, the content types it produces, POST/PUT/
// DELETE side effects — and the engine decides the status code, negotiates
// a representation from the Accept* headers, and enforces conditional
// request semantics (If-Match, If-None-Match, If-Modified-Since,
// If-Unmodified-Since).
//
// A minimal resource serving static JSON:
//
//	res := webmachine.NewResource()
//	res.RenderResponse = func(ctx context.Context, c *webmachine.Context, r *webmachine.Resource) *string {
//		body := `{"status":"ok"}`
//		return &body
//	}
//
//	dispatcher := webmachine.NewDispatcher()
//	dispatcher.Mount("/status", res)
//
//	http.Handle("/", http.HandlerFunc(dispatcher.Dispatch))
//
// The engine itself never touches a transport socket; callers adapt
// net/http (or any other transport) into a webmachine.Request and render a
// webmachine.Response back out.
package webmachine
