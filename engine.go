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
	"errors"
	"fmt"
	"strings"
	"time"
)

// maxStateMachineTransitions bounds how many nodes a single request may
// visit before the engine gives up on a misconfigured resource rather than
// looping forever.
const maxStateMachineTransitions = 100

// decisionOutcome is what evaluating a branching node produces: true,
// false, or (for the handful of nodes backed by a fallible callback) a
// status code that short-circuits straight to End(status).
type decisionOutcome struct {
	value      bool
	statusCode int
	isStatus   bool
}

func outcome(v bool) decisionOutcome { return decisionOutcome{value: v} }

func statusOutcome(status int) decisionOutcome {
	return decisionOutcome{isStatus: true, statusCode: status}
}

// statusFromErr extracts the HTTP status a fallible callback asked to
// terminate with; any non-CallbackError is treated as a 500.
func statusFromErr(err error) int {
	var cbErr *CallbackError
	if errors.As(err, &cbErr) {
		return cbErr.Status
	}
	return 500
}

// Run drives req/resource through the decision graph, starting at Start,
// and leaves ctx.Response with the final status and whatever headers the
// graph added along the way. It does not run the finalizer — callers
// normally want Dispatcher.Dispatch, which runs Run then Finalise. It
// returns the number of transitions taken, for callers that want to
// report it (see Metrics.decisionSteps).
func Run(parent context.Context, ctx *Context, resource *Resource) int {
	state := Start
	steps := 0
	for !state.IsTerminal() {
		steps++
		if steps >= maxStateMachineTransitions {
			panic(fmt.Errorf("%w: %d", ErrTooManyTransitions, maxStateMachineTransitions))
		}

		t, ok := transitionMap[state]
		if !ok {
			panic(fmt.Errorf("%w: %s", ErrDecisionNotFound, state))
		}
		if t.unconditional {
			state = t.to
			continue
		}

		result := evaluate(parent, state, ctx, resource)
		var next Decision
		var branchName string
		switch {
		case result.isStatus:
			next, branchName = End(result.statusCode), "status"
		case result.value:
			next, branchName = t.ifTrue, "true"
		default:
			next, branchName = t.ifFalse, "false"
		}
		ctx.trace = append(ctx.trace, decisionStep{Node: state, Branch: branchName, NextNode: next})
		state = next
	}

	if status, ok := state.IsEnd(); ok {
		ctx.Response.Status = status
		return steps
	}
	if state == A3Options {
		ctx.Response.Status = 204
		if headers := resource.Options(parent, ctx, resource); headers != nil {
			ctx.Response.AddHeaders(headers)
		}
	}
	return steps
}

// evaluate runs the predicate behind a single branching node. Nodes not
// listed here have no decision logic of their own in the source either —
// they exist purely to be named branch targets — and evaluate to false.
func evaluate(parent context.Context, d Decision, ctx *Context, resource *Resource) decisionOutcome {
	switch d {
	case B13Available:
		return outcome(resource.Available(parent, ctx, resource))
	case B12KnownMethod:
		return outcome(containsFold(resource.KnownMethods, ctx.Request.Method))
	case B11UriTooLong:
		return outcome(resource.UriTooLong(parent, ctx, resource))
	case B10MethodAllowed:
		if containsFold(resource.AllowedMethods, ctx.Request.Method) {
			return outcome(true)
		}
		values := make([]HeaderValue, len(resource.AllowedMethods))
		for i, m := range resource.AllowedMethods {
			values[i] = BasicHeaderValue(m)
		}
		ctx.Response.AddHeader("Allow", values)
		return outcome(false)
	case B9MalformedRequest:
		return outcome(resource.MalformedRequest(parent, ctx, resource))
	case B8Authorized:
		realm := resource.NotAuthorized(parent, ctx, resource)
		if realm != nil {
			ctx.Response.AddHeader("WWW-Authenticate", []HeaderValue{ParseHeaderValue(*realm)})
			return outcome(false)
		}
		return outcome(true)
	case B7Forbidden:
		return outcome(resource.Forbidden(parent, ctx, resource))
	case B6UnsupportedContentHeader:
		return outcome(resource.UnsupportedContentHeaders(parent, ctx, resource))
	case B5UnknownContentType:
		if !ctx.Request.IsPutOrPost() {
			return outcome(false)
		}
		ct := ctx.Request.ContentType()
		return outcome(!containsFold(resource.AcceptableContentTypes, ct))
	case B4RequestEntityTooLarge:
		if !ctx.Request.IsPutOrPost() {
			return outcome(false)
		}
		return outcome(!resource.ValidEntityLength(parent, ctx, resource))
	case B3Options:
		return outcome(ctx.Request.IsOptions())
	case C3AcceptExists:
		return outcome(ctx.Request.HasAcceptHeader())
	case C4AcceptableMediaTypeAvailable:
		mediaType, ok := MatchingContentType(resource.Produces, ctx.Request.Accept())
		if ok {
			ctx.SelectedMediaType = &mediaType
		}
		return outcome(ok)
	case D4AcceptLanguageExists:
		return outcome(ctx.Request.HasAcceptLanguageHeader())
	case D5AcceptableLanguageAvailable:
		language, ok := MatchingLanguage(resource.LanguagesProvided, ctx.Request.AcceptLanguage())
		if ok && language != "*" {
			ctx.SelectedLanguage = &language
			ctx.Response.AddHeader("Content-Language", []HeaderValue{ParseHeaderValue(language)})
		}
		return outcome(ok)
	case E5AcceptCharsetExists:
		return outcome(ctx.Request.HasAcceptCharsetHeader())
	case E6AcceptableCharsetAvailable:
		charset, ok := MatchingCharset(resource.CharsetsProvided, ctx.Request.AcceptCharset())
		if ok && charset != "*" {
			ctx.SelectedCharset = &charset
		}
		return outcome(ok)
	case F6AcceptEncodingExists:
		return outcome(ctx.Request.HasAcceptEncodingHeader())
	case F7AcceptableEncodingAvailable:
		encoding, ok := MatchingEncoding(resource.EncodingsProvided, ctx.Request.AcceptEncoding())
		if ok {
			ctx.SelectedEncoding = &encoding
			if encoding != DefaultEncoding {
				ctx.Response.AddHeader("Content-Encoding", []HeaderValue{ParseHeaderValue(encoding)})
			}
		}
		return outcome(ok)
	case G7ResourceExists:
		return outcome(resource.ResourceExists(parent, ctx, resource))
	case G8IfMatchExists:
		return outcome(ctx.Request.HasHeader("If-Match"))
	case G9IfMatchStarExists, H7IfMatchStarExists:
		return outcome(ctx.Request.HasHeaderValue("If-Match", "*"))
	case G11EtagInIfMatch:
		return outcome(resourceETagMatchesHeaderValues(parent, resource, ctx, "If-Match"))
	case H10IfUnmodifiedSinceExists:
		return outcome(ctx.Request.HasHeader("If-Unmodified-Since"))
	case H11IfUnmodifiedSinceValid:
		return outcome(validateHeaderDate(ctx.Request, "If-Unmodified-Since", &ctx.IfUnmodifiedSince))
	case H12LastModifiedGreaterThanUMS:
		if ctx.IfUnmodifiedSince == nil {
			return outcome(false)
		}
		lastModified := resource.LastModified(parent, ctx, resource)
		if lastModified == nil {
			return outcome(false)
		}
		return outcome(lastModified.After(*ctx.IfUnmodifiedSince))
	case I7Put:
		if ctx.Request.IsPut() {
			ctx.NewResource = true
			return outcome(true)
		}
		return outcome(false)
	case I12IfNoneMatchExists:
		return outcome(ctx.Request.HasHeader("If-None-Match"))
	case I13IfNoneMatchStarExists:
		return outcome(ctx.Request.HasHeaderValue("If-None-Match", "*"))
	case J18GetHead:
		return outcome(ctx.Request.IsGetOrHead())
	case K7ResourcePreviouslyExisted:
		return outcome(resource.PreviouslyExisted(parent, ctx, resource))
	case K13ETagInIfNoneMatch:
		return outcome(resourceETagMatchesHeaderValues(parent, resource, ctx, "If-None-Match"))
	case L5HasMovedTemporarily:
		location := resource.MovedTemporarily(parent, ctx, resource)
		if location != nil {
			ctx.Response.AddHeader("Location", []HeaderValue{BasicHeaderValue(*location)})
			return outcome(true)
		}
		return outcome(false)
	case L7Post, M5Post, N16Post:
		return outcome(ctx.Request.IsPost())
	case L13IfModifiedSinceExists:
		return outcome(ctx.Request.HasHeader("If-Modified-Since"))
	case L14IfModifiedSinceValid:
		return outcome(validateHeaderDate(ctx.Request, "If-Modified-Since", &ctx.IfModifiedSince))
	case L15IfModifiedSinceGreaterThanNow:
		return outcome(ctx.IfModifiedSince.After(time.Now()))
	case L17IfLastModifiedGreaterThanMS:
		if ctx.IfModifiedSince == nil {
			return outcome(false)
		}
		lastModified := resource.LastModified(parent, ctx, resource)
		if lastModified == nil {
			return outcome(false)
		}
		return outcome(lastModified.After(*ctx.IfModifiedSince))
	case I4HasMovedPermanently, K5HasMovedPermanently:
		location := resource.MovedPermanently(parent, ctx, resource)
		if location != nil {
			ctx.Response.AddHeader("Location", []HeaderValue{BasicHeaderValue(*location)})
			return outcome(true)
		}
		return outcome(false)
	case M7PostToMissingResource, N5PostToMissingResource:
		if resource.AllowMissingPost(parent, ctx, resource) {
			ctx.NewResource = true
			return outcome(true)
		}
		return outcome(false)
	case M16Delete:
		return outcome(ctx.Request.IsDelete())
	case M20DeleteEnacted:
		ok, err := resource.DeleteResource(parent, ctx, resource)
		if err != nil {
			return statusOutcome(statusFromErr(err))
		}
		return outcome(ok)
	case N11Redirect:
		return evaluateRedirect(parent, ctx, resource)
	case P3Conflict, O14Conflict:
		return outcome(resource.IsConflict(parent, ctx, resource))
	case P11NewResource:
		if ctx.Request.IsPut() {
			_, err := resource.ProcessPut(parent, ctx, resource)
			if err != nil {
				return statusOutcome(statusFromErr(err))
			}
			return outcome(ctx.NewResource)
		}
		return outcome(ctx.NewResource)
	case O16Put:
		return outcome(ctx.Request.IsPut())
	case O18MultipleRepresentations:
		return outcome(resource.MultipleChoices(parent, ctx, resource))
	case O20ResponseHasBody:
		return outcome(ctx.Response.HasBody())
	default:
		return outcome(false)
	}
}

// evaluateRedirect backs N11Redirect: a POST that creates a resource
// synthesizes the new path via CreatePath and rewrites the request onto
// it, while one that doesn't defers entirely to ProcessPost. Both paths
// decide on ctx.Redirect.
func evaluateRedirect(parent context.Context, ctx *Context, resource *Resource) decisionOutcome {
	if resource.PostIsCreate(parent, ctx, resource) {
		path, err := resource.CreatePath(parent, ctx, resource)
		if err != nil {
			return statusOutcome(statusFromErr(err))
		}
		basePath := sanitisePath(ctx.Request.BasePath)
		newPath := joinPaths(basePath, sanitisePath(path))
		ctx.Request.RequestPath = path
		ctx.Response.AddHeader("Location", []HeaderValue{BasicHeaderValue(newPath)})
		return outcome(ctx.Redirect)
	}
	if _, err := resource.ProcessPost(parent, ctx, resource); err != nil {
		return statusOutcome(statusFromErr(err))
	}
	return outcome(ctx.Redirect)
}

// resourceETagMatchesHeaderValues reports whether the resource's current
// ETag (per GenerateETag) appears among header's values, honoring the
// weak-ETag ("W/...") comparison form.
func resourceETagMatchesHeaderValues(parent context.Context, resource *Resource, ctx *Context, header string) bool {
	etag := resource.GenerateETag(parent, ctx, resource)
	if etag == nil {
		return false
	}
	for _, v := range ctx.Request.FindHeader(header) {
		if weak, isWeak := v.WeakETag(); isWeak {
			if weak == *etag {
				return true
			}
			continue
		}
		if v.Value == *etag {
			return true
		}
	}
	return false
}

// validateHeaderDate parses header as an RFC 1123/2822 date, stashing the
// result in dest on success. A missing or unparseable header leaves dest
// untouched and reports false, matching the source's
// parse-failure-as-absent behavior.
func validateHeaderDate(req *Request, header string, dest **time.Time) bool {
	values := req.FindHeader(header)
	if len(values) == 0 {
		return false
	}
	t, err := time.Parse(time.RFC1123Z, values[0].Value)
	if err != nil {
		t, err = time.Parse(time.RFC1123, values[0].Value)
	}
	if err != nil {
		return false
	}
	*dest = &t
	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
