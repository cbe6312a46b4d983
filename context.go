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

import "time"

// Context carries everything the decision graph reads and mutates over the
// life of a single request: the inbound Request, the outbound Response
// being built up, the negotiation outcomes, parsed conditional-request
// timestamps, and two flags: NewResource, which the graph sets, and
// Redirect, which only resource callbacks set. Metadata is not read or
// written by Run or Finalise; Dispatcher.Dispatch stores the request ID
// under "request_id", and the rest is scratch space for resource callbacks.
//
// A Context is created per request and discarded once the response is
// written; it must not be shared across requests.
type Context struct {
	Request  *Request
	Response *Response

	SelectedMediaType *string
	SelectedLanguage  *string
	SelectedCharset   *string
	SelectedEncoding  *string

	IfUnmodifiedSince *time.Time
	IfModifiedSince   *time.Time

	Redirect    bool
	NewResource bool

	Metadata map[string]string

	trace []decisionStep
}

// NewContext builds a Context over req with a fresh default Response.
func NewContext(req *Request) *Context {
	return &Context{
		Request:  req,
		Response: NewResponse(),
		Metadata: make(map[string]string),
	}
}

// decisionStep records one transition taken while running the decision
// graph: the node evaluated, which branch fired, and the node reached
// next. It exists purely for debuggability (see Context.Trace) and is not
// meant to be parsed by callers.
type decisionStep struct {
	Node     Decision
	Branch   string
	NextNode Decision
}

// Trace returns the sequence of branching decision-graph transitions taken
// for this request, in order; the unconditional hop out of Start is not
// recorded. It is intended for tests and diagnostics, not for
// driving application logic.
func (c *Context) Trace() []string {
	out := make([]string, len(c.trace))
	for i, step := range c.trace {
		out[i] = step.Node.String() + " --" + step.Branch + "--> " + step.NextNode.String()
	}
	return out
}
