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
	"fmt"
	"time"
)

// Callback signatures a Resource is built from. None of these (other than
// WriteFunc and CreatePathFunc below) are allowed to fail — "failure" for a resource
// is always expressed through the boolean/optional result itself, not
// through an error return. The standard library context.Context threads
// through every callback purely for cancellation/deadline propagation; the
// engine does not store anything in it.
type (
	BoolFunc         func(ctx context.Context, c *Context, r *Resource) bool
	StringOptionFunc func(ctx context.Context, c *Context, r *Resource) *string
	TimeOptionFunc   func(ctx context.Context, c *Context, r *Resource) *time.Time
	OptionsFunc      func(ctx context.Context, c *Context, r *Resource) map[string][]string
	RenderFunc       func(ctx context.Context, c *Context, r *Resource) *string
	FinaliseFunc     func(ctx context.Context, c *Context, r *Resource)

	// WriteFunc backs three of the four callbacks allowed to fail:
	// DeleteResource, ProcessPost, ProcessPut (the fourth, CreatePath, uses
	// CreatePathFunc). A non-nil error should normally be a
	// *CallbackError carrying the status to terminate with; any other
	// error is treated as a 500.
	WriteFunc func(ctx context.Context, c *Context, r *Resource) (bool, error)

	// CreatePathFunc backs CreatePath, the one callback whose success
	// value is a string rather than a bool.
	CreatePathFunc func(ctx context.Context, c *Context, r *Resource) (string, error)
)

// Resource describes an HTTP endpoint as a set of static capability lists
// plus behavioral callbacks. A Resource is built once (via NewResource,
// then field assignment) and must not be mutated once handed to a
// Dispatcher — the engine shares it, unsynchronized, across concurrent
// requests.
type Resource struct {
	KnownMethods           []string
	AllowedMethods         []string
	AcceptableContentTypes []string
	Produces               []string
	LanguagesProvided      []string
	CharsetsProvided       []string
	EncodingsProvided      []string
	Variances              []string

	Available                 BoolFunc
	UriTooLong                BoolFunc
	MalformedRequest           BoolFunc
	NotAuthorized               StringOptionFunc
	Forbidden                  BoolFunc
	UnsupportedContentHeaders  BoolFunc
	ValidEntityLength          BoolFunc
	ResourceExists             BoolFunc
	PreviouslyExisted          BoolFunc
	MovedPermanently           StringOptionFunc
	MovedTemporarily           StringOptionFunc
	IsConflict                 BoolFunc
	AllowMissingPost           BoolFunc
	GenerateETag               StringOptionFunc
	LastModified               TimeOptionFunc
	Expires                    TimeOptionFunc
	MultipleChoices            BoolFunc
	PostIsCreate               BoolFunc
	Options                    OptionsFunc
	RenderResponse             RenderFunc

	// FinaliseResponse runs last, after the finalizer has shaped the
	// response, purely for side effects (e.g. adding CORS headers). It has
	// no default.
	FinaliseResponse FinaliseFunc

	DeleteResource WriteFunc
	ProcessPost    WriteFunc
	ProcessPut     WriteFunc
	CreatePath     CreatePathFunc

	// RenderCache, when set, lets the finalizer memoize a rendered GET
	// body under the request path instead of invoking RenderResponse
	// again for a repeated request. Resources that render cheaply can
	// leave this nil.
	RenderCache Cache[string, string]
}

// NewResource returns a Resource with every list and callback set to the
// defaults from the source: available to everything, open to GET/HEAD/
// OPTIONS, producing and accepting application/json, and providing only
// identity encoding.
func NewResource() *Resource {
	return &Resource{
		KnownMethods: []string{
			"OPTIONS", "GET", "POST", "PUT", "DELETE", "HEAD", "TRACE", "CONNECT", "PATCH",
		},
		AllowedMethods:         []string{"OPTIONS", "GET", "HEAD"},
		AcceptableContentTypes: []string{"application/json"},
		Produces:               []string{"application/json"},
		EncodingsProvided:      []string{"identity"},

		Available:                 trueFunc,
		UriTooLong:                falseFunc,
		MalformedRequest:          falseFunc,
		NotAuthorized:             noneStringFunc,
		Forbidden:                 falseFunc,
		UnsupportedContentHeaders: falseFunc,
		ValidEntityLength:         trueFunc,
		ResourceExists:            trueFunc,
		PreviouslyExisted:         falseFunc,
		MovedPermanently:          noneStringFunc,
		MovedTemporarily:          noneStringFunc,
		IsConflict:                falseFunc,
		AllowMissingPost:          falseFunc,
		GenerateETag:              noneStringFunc,
		LastModified:              noneTimeFunc,
		Expires:                   noneTimeFunc,
		MultipleChoices:           falseFunc,
		PostIsCreate:              falseFunc,
		RenderResponse:            noneRenderFunc,
		Options: func(ctx context.Context, c *Context, r *Resource) map[string][]string {
			return CORSHeaders(r.AllowedMethods)
		},
		DeleteResource: func(ctx context.Context, c *Context, r *Resource) (bool, error) {
			return true, nil
		},
		ProcessPost: func(ctx context.Context, c *Context, r *Resource) (bool, error) {
			return false, nil
		},
		ProcessPut: func(ctx context.Context, c *Context, r *Resource) (bool, error) {
			return true, nil
		},
		CreatePath: func(ctx context.Context, c *Context, r *Resource) (string, error) {
			return c.Request.RequestPath, nil
		},
	}
}

// Validate reports whether resource carries every callback the engine
// calls unconditionally while running the decision graph. A Resource
// built by hand (rather than starting from NewResource) that omits one of
// these would otherwise fail with a nil-pointer panic deep in evaluate;
// Dispatcher.Mount calls this up front so the failure points at the
// actual mistake.
func (r *Resource) Validate() error {
	callbacks := map[string]bool{
		"Available":                 r.Available == nil,
		"UriTooLong":                r.UriTooLong == nil,
		"MalformedRequest":          r.MalformedRequest == nil,
		"NotAuthorized":             r.NotAuthorized == nil,
		"Forbidden":                 r.Forbidden == nil,
		"UnsupportedContentHeaders": r.UnsupportedContentHeaders == nil,
		"ValidEntityLength":         r.ValidEntityLength == nil,
		"ResourceExists":            r.ResourceExists == nil,
		"PreviouslyExisted":         r.PreviouslyExisted == nil,
		"MovedPermanently":          r.MovedPermanently == nil,
		"MovedTemporarily":          r.MovedTemporarily == nil,
		"IsConflict":                r.IsConflict == nil,
		"AllowMissingPost":          r.AllowMissingPost == nil,
		"GenerateETag":              r.GenerateETag == nil,
		"LastModified":              r.LastModified == nil,
		"Expires":                   r.Expires == nil,
		"MultipleChoices":           r.MultipleChoices == nil,
		"PostIsCreate":              r.PostIsCreate == nil,
		"Options":                   r.Options == nil,
		"RenderResponse":            r.RenderResponse == nil,
		"DeleteResource":            r.DeleteResource == nil,
		"ProcessPost":               r.ProcessPost == nil,
		"ProcessPut":                r.ProcessPut == nil,
		"CreatePath":                r.CreatePath == nil,
	}
	for name, missing := range callbacks {
		if missing {
			return fmt.Errorf("%w: %s", ErrCallbackNotSet, name)
		}
	}
	return nil
}

func trueFunc(context.Context, *Context, *Resource) bool  { return true }
func falseFunc(context.Context, *Context, *Resource) bool { return false }
func noneStringFunc(context.Context, *Context, *Resource) *string {
	return nil
}
func noneTimeFunc(context.Context, *Context, *Resource) *time.Time {
	return nil
}
func noneRenderFunc(context.Context, *Context, *Resource) *string {
	return nil
}
