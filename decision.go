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
	"fmt"
	"strconv"
)

// Decision names one node of the fixed decision graph. Named nodes follow
// the lettered scheme (B13, C3, G7, ...); Start, A3Options and End are the
// three terminal/entry shapes that don't fit that scheme.
type Decision int

const (
	Start Decision = iota
	A3Options
	B3Options
	B4RequestEntityTooLarge
	B5UnknownContentType
	B6UnsupportedContentHeader
	B7Forbidden
	B8Authorized
	B9MalformedRequest
	B10MethodAllowed
	B11UriTooLong
	B12KnownMethod
	B13Available
	C3AcceptExists
	C4AcceptableMediaTypeAvailable
	D4AcceptLanguageExists
	D5AcceptableLanguageAvailable
	E5AcceptCharsetExists
	E6AcceptableCharsetAvailable
	F6AcceptEncodingExists
	F7AcceptableEncodingAvailable
	G7ResourceExists
	G8IfMatchExists
	G9IfMatchStarExists
	G11EtagInIfMatch
	H7IfMatchStarExists
	H10IfUnmodifiedSinceExists
	H11IfUnmodifiedSinceValid
	H12LastModifiedGreaterThanUMS
	I4HasMovedPermanently
	I7Put
	I12IfNoneMatchExists
	I13IfNoneMatchStarExists
	J18GetHead
	K5HasMovedPermanently
	K7ResourcePreviouslyExisted
	K13ETagInIfNoneMatch
	L5HasMovedTemporarily
	L7Post
	L13IfModifiedSinceExists
	L14IfModifiedSinceValid
	L15IfModifiedSinceGreaterThanNow
	L17IfLastModifiedGreaterThanMS
	M5Post
	M7PostToMissingResource
	M16Delete
	M20DeleteEnacted
	N5PostToMissingResource
	N11Redirect
	N16Post
	O14Conflict
	O16Put
	O18MultipleRepresentations
	O20ResponseHasBody
	P3Conflict
	P11NewResource

	// endMarker separates the fixed named nodes above from the dynamic
	// End(status) terminals, which carry their status code in status
	// rather than being one of a fixed set of values.
	endMarker
)

// decisionNames holds the String() form of every node up to endMarker, in
// declaration order.
var decisionNames = [...]string{
	"Start",
	"A3Options",
	"B3Options",
	"B4RequestEntityTooLarge",
	"B5UnknownContentType",
	"B6UnsupportedContentHeader",
	"B7Forbidden",
	"B8Authorized",
	"B9MalformedRequest",
	"B10MethodAllowed",
	"B11UriTooLong",
	"B12KnownMethod",
	"B13Available",
	"C3AcceptExists",
	"C4AcceptableMediaTypeAvailable",
	"D4AcceptLanguageExists",
	"D5AcceptableLanguageAvailable",
	"E5AcceptCharsetExists",
	"E6AcceptableCharsetAvailable",
	"F6AcceptEncodingExists",
	"F7AcceptableEncodingAvailable",
	"G7ResourceExists",
	"G8IfMatchExists",
	"G9IfMatchStarExists",
	"G11EtagInIfMatch",
	"H7IfMatchStarExists",
	"H10IfUnmodifiedSinceExists",
	"H11IfUnmodifiedSinceValid",
	"H12LastModifiedGreaterThanUMS",
	"I4HasMovedPermanently",
	"I7Put",
	"I12IfNoneMatchExists",
	"I13IfNoneMatchStarExists",
	"J18GetHead",
	"K5HasMovedPermanently",
	"K7ResourcePreviouslyExisted",
	"K13ETagInIfNoneMatch",
	"L5HasMovedTemporarily",
	"L7Post",
	"L13IfModifiedSinceExists",
	"L14IfModifiedSinceValid",
	"L15IfModifiedSinceGreaterThanNow",
	"L17IfLastModifiedGreaterThanMS",
	"M5Post",
	"M7PostToMissingResource",
	"M16Delete",
	"M20DeleteEnacted",
	"N5PostToMissingResource",
	"N11Redirect",
	"N16Post",
	"O14Conflict",
	"O16Put",
	"O18MultipleRepresentations",
	"O20ResponseHasBody",
	"P3Conflict",
	"P11NewResource",
}

// End constructs the terminal node that ends the graph with the given
// HTTP status code.
func End(status int) Decision {
	return endMarker + Decision(status)
}

// IsEnd reports whether d is an End(status) terminal, returning the status
// code if so.
func (d Decision) IsEnd() (int, bool) {
	if d >= endMarker {
		return int(d - endMarker), true
	}
	return 0, false
}

// IsTerminal reports whether d ends the graph: either an End(status) node
// or A3Options, which the driver loop handles specially before returning.
func (d Decision) IsTerminal() bool {
	if _, ok := d.IsEnd(); ok {
		return true
	}
	return d == A3Options
}

func (d Decision) String() string {
	if status, ok := d.IsEnd(); ok {
		return "End(" + strconv.Itoa(status) + ")"
	}
	if int(d) >= 0 && int(d) < len(decisionNames) {
		return decisionNames[d]
	}
	return "Decision(" + strconv.Itoa(int(d)) + ")"
}

// transition describes what TRANSITION_MAP says to do from a node: either
// an unconditional hop (to a non-zero value) or a pair of branches taken
// depending on the node's decision outcome.
type transition struct {
	to          Decision
	unconditional bool
	ifTrue      Decision
	ifFalse     Decision
}

func to(d Decision) transition { return transition{to: d, unconditional: true} }

func branch(ifTrue, ifFalse Decision) transition {
	return transition{ifTrue: ifTrue, ifFalse: ifFalse}
}

// transitionMap is the fixed graph topology: for every non-terminal node,
// either where it goes unconditionally or which two nodes it can branch
// to. It is built once at init and never mutated.
var transitionMap = map[Decision]transition{
	Start:                           to(B13Available),
	B3Options:                       branch(A3Options, C3AcceptExists),
	B4RequestEntityTooLarge:         branch(End(413), B3Options),
	B5UnknownContentType:            branch(End(415), B4RequestEntityTooLarge),
	B6UnsupportedContentHeader:      branch(End(501), B5UnknownContentType),
	B7Forbidden:                     branch(End(403), B6UnsupportedContentHeader),
	B8Authorized:                    branch(B7Forbidden, End(401)),
	B9MalformedRequest:              branch(End(400), B8Authorized),
	B10MethodAllowed:                branch(B9MalformedRequest, End(405)),
	B11UriTooLong:                   branch(End(414), B10MethodAllowed),
	B12KnownMethod:                  branch(B11UriTooLong, End(501)),
	B13Available:                    branch(B12KnownMethod, End(503)),
	C3AcceptExists:                  branch(C4AcceptableMediaTypeAvailable, D4AcceptLanguageExists),
	C4AcceptableMediaTypeAvailable:  branch(D4AcceptLanguageExists, End(406)),
	D4AcceptLanguageExists:          branch(D5AcceptableLanguageAvailable, E5AcceptCharsetExists),
	D5AcceptableLanguageAvailable:   branch(E5AcceptCharsetExists, End(406)),
	E5AcceptCharsetExists:           branch(E6AcceptableCharsetAvailable, F6AcceptEncodingExists),
	E6AcceptableCharsetAvailable:    branch(F6AcceptEncodingExists, End(406)),
	F6AcceptEncodingExists:          branch(F7AcceptableEncodingAvailable, G7ResourceExists),
	F7AcceptableEncodingAvailable:   branch(G7ResourceExists, End(406)),
	G7ResourceExists:                branch(G8IfMatchExists, H7IfMatchStarExists),
	G8IfMatchExists:                 branch(G9IfMatchStarExists, H10IfUnmodifiedSinceExists),
	G9IfMatchStarExists:             branch(H10IfUnmodifiedSinceExists, G11EtagInIfMatch),
	G11EtagInIfMatch:                branch(H10IfUnmodifiedSinceExists, End(412)),
	H7IfMatchStarExists:             branch(End(412), I7Put),
	H10IfUnmodifiedSinceExists:      branch(H11IfUnmodifiedSinceValid, I12IfNoneMatchExists),
	H11IfUnmodifiedSinceValid:       branch(H12LastModifiedGreaterThanUMS, I12IfNoneMatchExists),
	H12LastModifiedGreaterThanUMS:   branch(End(412), I12IfNoneMatchExists),
	I4HasMovedPermanently:           branch(End(301), P3Conflict),
	I7Put:                           branch(I4HasMovedPermanently, K7ResourcePreviouslyExisted),
	I12IfNoneMatchExists:            branch(I13IfNoneMatchStarExists, L13IfModifiedSinceExists),
	I13IfNoneMatchStarExists:        branch(J18GetHead, K13ETagInIfNoneMatch),
	J18GetHead:                      branch(End(304), End(412)),
	K13ETagInIfNoneMatch:            branch(J18GetHead, L13IfModifiedSinceExists),
	K5HasMovedPermanently:           branch(End(301), L5HasMovedTemporarily),
	K7ResourcePreviouslyExisted:     branch(K5HasMovedPermanently, L7Post),
	L5HasMovedTemporarily:           branch(End(307), M5Post),
	L7Post:                          branch(M7PostToMissingResource, End(404)),
	L13IfModifiedSinceExists:        branch(L14IfModifiedSinceValid, M16Delete),
	L14IfModifiedSinceValid:         branch(L15IfModifiedSinceGreaterThanNow, M16Delete),
	L15IfModifiedSinceGreaterThanNow: branch(M16Delete, L17IfLastModifiedGreaterThanMS),
	L17IfLastModifiedGreaterThanMS:  branch(M16Delete, End(304)),
	M5Post:                          branch(N5PostToMissingResource, End(410)),
	M7PostToMissingResource:         branch(N11Redirect, End(404)),
	M16Delete:                       branch(M20DeleteEnacted, N16Post),
	M20DeleteEnacted:                branch(O20ResponseHasBody, End(202)),
	N5PostToMissingResource:         branch(N11Redirect, End(410)),
	N11Redirect:                     branch(End(303), P11NewResource),
	N16Post:                         branch(N11Redirect, O16Put),
	O14Conflict:                     branch(End(409), P11NewResource),
	O16Put:                          branch(O14Conflict, O18MultipleRepresentations),
	P3Conflict:                      branch(End(409), P11NewResource),
	P11NewResource:                  branch(End(201), O20ResponseHasBody),
	O18MultipleRepresentations:      branch(End(300), End(200)),
	O20ResponseHasBody:              branch(O18MultipleRepresentations, End(204)),
}

func init() {
	for node, t := range transitionMap {
		targets := []Decision{t.ifTrue, t.ifFalse}
		if t.unconditional {
			targets = []Decision{t.to}
		}
		for _, target := range targets {
			if !reachable(target) {
				panic(fmt.Errorf("%w: %s names unreachable target %s", ErrUnknownTransition, node, target))
			}
		}
	}
}

// reachable reports whether target is a valid transition destination: a
// terminal node, or a node with its own transitionMap entry.
func reachable(target Decision) bool {
	if target.IsTerminal() {
		return true
	}
	_, ok := transitionMap[target]
	return ok
}
