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

package router

import (
	"regexp"
	"strings"
)

// HandlerFunc is the signature every route handler and middleware function
// implements. Context carries the request, response and bound path
// parameters for a single in-flight request.
type HandlerFunc func(*Context)

// validMethods is the closed verb set AddRoute accepts.
var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "OPTIONS": true, "HEAD": true,
}

// Constraint restricts a path parameter to values matching Pattern.
type Constraint struct {
	Param   string
	Pattern *regexp.Regexp
}

// Route is a registered route: method, path template, handler chain, the
// ordered parameter names parsed out of the template, and registration
// metadata. Routes are immutable once returned by AddRoute; the fluent
// Where method is the one exception, re-validating constraints in place
// (no re-registration step, since the route is already linked into its
// trie node by identity).
type Route struct {
	Method       string
	PathTemplate string
	Handler      HandlerFunc
	ParamNames   []string
	Middleware   []HandlerFunc // per-route middleware, separate from group middleware
	Tags         []string
	Description  string
	Metadata     map[string]any

	constraints []Constraint
}

// Where adds a regular-expression constraint on a path parameter. Panics
// on an invalid pattern, failing fast on route configuration errors.
func (rt *Route) Where(param, pattern string) *Route {
	re := regexp.MustCompile("^" + pattern + "$")
	rt.constraints = append(rt.constraints, Constraint{Param: param, Pattern: re})
	return rt
}

// constraintsSatisfied reports whether every Where constraint on rt matches
// the corresponding bound param value. A route with no constraints always
// satisfies this check.
func (rt *Route) constraintsSatisfied(params map[string]string) bool {
	for _, c := range rt.constraints {
		if !c.Pattern.MatchString(params[c.Param]) {
			return false
		}
	}
	return true
}

// paramNamesOf extracts the ordered {name} placeholders from a path
// template.
func paramNamesOf(template string) []string {
	var names []string
	for _, seg := range splitSegments(template) {
		if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}

// splitSegments splits a path template into its '/'-delimited segments,
// dropping the leading empty segment a leading slash produces. A trailing
// slash is significant: "/users/" yields
// ["users", ""], a distinct node from "/users". This is what lets a
// prefixed group's root route (stored as prefix + "/") coexist with a
// route at the bare prefix. The root path "/" has no segments at all and
// returns nil.
func splitSegments(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
