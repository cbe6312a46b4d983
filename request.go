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

import "strings"

// Request is the input the decision graph runs against. Header lookups are
// always case-insensitive; Headers itself stores keys under their original
// casing purely for callback convenience.
type Request struct {
	// RequestPath is the path relative to the resource, rewritten by the
	// dispatcher (see Dispatcher.Dispatch).
	RequestPath string
	// BasePath is the route prefix the dispatcher matched.
	BasePath string
	// Method is the uppercased HTTP method.
	Method string
	// Headers maps a header name to its ordered, parsed values.
	Headers map[string][]HeaderValue
	// Body is the raw request body, if any.
	Body []byte
	// Query holds decoded query parameters; repeated keys accumulate.
	Query map[string][]string
}

// NewRequest returns a default "GET /" request with empty headers/query.
func NewRequest() *Request {
	return &Request{
		RequestPath: "/",
		BasePath:    "/",
		Method:      "GET",
		Headers:     make(map[string][]HeaderValue),
		Query:       make(map[string][]string),
	}
}

// ContentType returns the request's Content-Type primary value, defaulting
// to "application/json" when the header is absent.
func (r *Request) ContentType() string {
	values := r.FindHeader("Content-Type")
	if len(values) == 0 {
		return "application/json"
	}
	return values[0].Value
}

func (r *Request) IsPutOrPost() bool { return r.Method == "PUT" || r.Method == "POST" }
func (r *Request) IsGetOrHead() bool { return r.Method == "GET" || r.Method == "HEAD" }
func (r *Request) IsGet() bool       { return r.Method == "GET" }
func (r *Request) IsOptions() bool   { return r.Method == "OPTIONS" }
func (r *Request) IsPut() bool       { return r.Method == "PUT" }
func (r *Request) IsPost() bool      { return r.Method == "POST" }
func (r *Request) IsDelete() bool    { return r.Method == "DELETE" }

func (r *Request) HasAcceptHeader() bool         { return r.HasHeader("Accept") }
func (r *Request) Accept() []HeaderValue         { return r.FindHeader("Accept") }
func (r *Request) HasAcceptLanguageHeader() bool { return r.HasHeader("Accept-Language") }
func (r *Request) AcceptLanguage() []HeaderValue { return r.FindHeader("Accept-Language") }
func (r *Request) HasAcceptCharsetHeader() bool  { return r.HasHeader("Accept-Charset") }
func (r *Request) AcceptCharset() []HeaderValue  { return r.FindHeader("Accept-Charset") }
func (r *Request) HasAcceptEncodingHeader() bool { return r.HasHeader("Accept-Encoding") }
func (r *Request) AcceptEncoding() []HeaderValue { return r.FindHeader("Accept-Encoding") }

// HasHeader reports whether header is present, compared case-insensitively.
func (r *Request) HasHeader(header string) bool {
	_, ok := r.lookup(header)
	return ok
}

// FindHeader returns the values for header, or nil if absent.
func (r *Request) FindHeader(header string) []HeaderValue {
	values, _ := r.lookup(header)
	return values
}

// HasHeaderValue reports whether header carries an element equal to value
// (primary value comparison only, see HeaderValue.EqualString).
func (r *Request) HasHeaderValue(header, value string) bool {
	for _, hv := range r.FindHeader(header) {
		if hv.EqualString(value) {
			return true
		}
	}
	return false
}

// AddHeader stores pre-parsed values under header, replacing any existing
// entry for the same (case-insensitive) name.
func (r *Request) AddHeader(header string, values []HeaderValue) {
	if r.Headers == nil {
		r.Headers = make(map[string][]HeaderValue)
	}
	if existing, key, ok := r.find(header); ok {
		delete(r.Headers, key)
		_ = existing
	}
	r.Headers[header] = values
}

func (r *Request) lookup(header string) ([]HeaderValue, bool) {
	values, _, ok := r.find(header)
	return values, ok
}

func (r *Request) find(header string) ([]HeaderValue, string, bool) {
	for k, v := range r.Headers {
		if strings.EqualFold(k, header) {
			return v, k, true
		}
	}
	return nil, "", false
}
