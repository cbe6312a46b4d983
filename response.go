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
	"sort"
	"strings"
)

// Response is the output of a decision graph run. Headers preserves the
// case it was set under but iterates in sorted-key order (HeaderNames),
// giving deterministic emission — the source keeps a BTreeMap for the same
// reason.
type Response struct {
	Status  int
	Headers map[string][]HeaderValue
	Body    []byte
}

// NewResponse returns a default 200 OK response with no headers or body.
func NewResponse() *Response {
	return &Response{Status: 200, Headers: make(map[string][]HeaderValue)}
}

// HasHeader reports whether header is present, compared case-insensitively.
func (resp *Response) HasHeader(header string) bool {
	_, ok := resp.find(header)
	return ok
}

// AddHeader sets header to values, replacing any prior value for the same
// (case-insensitive) name but keeping the newly given casing as the key.
func (resp *Response) AddHeader(header string, values []HeaderValue) {
	if resp.Headers == nil {
		resp.Headers = make(map[string][]HeaderValue)
	}
	if _, existingKey, ok := resp.findKey(header); ok {
		delete(resp.Headers, existingKey)
	}
	resp.Headers[header] = values
}

// AddHeaders merges plain string header values, wrapping each in a basic
// HeaderValue.
func (resp *Response) AddHeaders(headers map[string][]string) {
	for k, vs := range headers {
		values := make([]HeaderValue, len(vs))
		for i, v := range vs {
			values[i] = BasicHeaderValue(v)
		}
		resp.AddHeader(k, values)
	}
}

// CORSHeaders builds the standard permissive CORS triple for the given
// allowed methods.
func CORSHeaders(allowedMethods []string) map[string][]string {
	return map[string][]string{
		"Access-Control-Allow-Origin":  {"*"},
		"Access-Control-Allow-Methods": {strings.Join(allowedMethods, ", ")},
		"Access-Control-Allow-Headers": {"Content-Type"},
	}
}

// AddCORSHeaders adds the standard CORS triple to the response.
func (resp *Response) AddCORSHeaders(allowedMethods []string) {
	resp.AddHeaders(CORSHeaders(allowedMethods))
}

// HasBody reports whether the response carries a non-empty body.
func (resp *Response) HasBody() bool {
	return len(resp.Body) > 0
}

// HeaderNames returns the response's header keys in sorted order, for
// stable emission onto a transport.
func (resp *Response) HeaderNames() []string {
	names := make([]string, 0, len(resp.Headers))
	for k := range resp.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (resp *Response) find(header string) ([]HeaderValue, bool) {
	values, _, ok := resp.findKey(header)
	return values, ok
}

func (resp *Response) findKey(header string) ([]HeaderValue, string, bool) {
	for k, v := range resp.Headers {
		if strings.EqualFold(k, header) {
			return v, k, true
		}
	}
	return nil, "", false
}
