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
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"
)

// unmatchedRoutePattern and methodNotAllowedRoutePattern are the fixed
// Recorder pattern labels used for requests that never reach a Route, so
// metrics/tracing backends never see raw, high-cardinality request paths
// for these outcomes.
const (
	unmatchedRoutePattern        = "_not_found"
	methodNotAllowedRoutePattern = "_method_not_allowed"
)

// NotFoundHandler is invoked (via the router's own default, or a
// user-installed override) when Match returns NotFound.
type NotFoundHandler func(*Context)

// MethodNotAllowedHandler is invoked when Match returns MethodNotAllowed;
// allowed carries every verb registered at the path, never a subset.
type MethodNotAllowedHandler func(c *Context, allowed []string)

// SetNotFoundHandler overrides the default 404 JSON body.
func (r *Router) SetNotFoundHandler(h NotFoundHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = h
}

// SetMethodNotAllowedHandler overrides the default 405 JSON body.
func (r *Router) SetMethodNotAllowedHandler(h MethodNotAllowedHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methodNotAllowed = h
}

func defaultNotFound(c *Context) {
	writeClientRequestError(c, http.StatusNotFound, "not found", nil)
}

func defaultMethodNotAllowed(c *Context, allowed []string) {
	sort.Strings(allowed)
	c.Header().Set("Allow", strings.Join(allowed, ", "))
	writeClientRequestError(c, http.StatusMethodNotAllowed, "method not allowed", nil)
}

// writeClientRequestError writes the default structured JSON error body
// ({error, detail?, field?, code?}) for failures the router itself
// produces (404/405), which never reach a handler and so can't be shaped
// by catzerr.
func writeClientRequestError(c *Context, status int, detail string, code *int) {
	body := map[string]any{"error": "client_request", "detail": detail}
	if code != nil {
		body["code"] = *code
	}
	c.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Status(status)
	_ = json.NewEncoder(c.Writer).Encode(body)
}

// ServeHTTP makes Router an http.Handler. It resolves the incoming request
// against the trie, builds the effective middleware+handler chain for a
// match, and runs it through Context.Next.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	ctx := r.recorder.OnRequestStart(req.Context(), req)
	req = req.WithContext(ctx)

	result := r.Match(req.Method, req.URL.Path)

	var c *Context
	pattern := unmatchedRoutePattern

	switch result.Outcome {
	case Matched:
		handlers := make([]HandlerFunc, 0, len(result.Route.Middleware)+1)
		handlers = append(handlers, result.Route.Middleware...)
		handlers = append(handlers, result.Route.Handler)
		c = newContext(w, req, result.Params, result.Route, handlers)
		pattern = result.Route.PathTemplate
		c.Next()

	case MethodNotAllowed:
		c = newContext(w, req, nil, nil, nil)
		pattern = methodNotAllowedRoutePattern
		h := r.methodNotAllowed
		if h == nil {
			h = defaultMethodNotAllowed
		}
		h(c, result.Allowed)

	default: // NotFound
		c = newContext(w, req, nil, nil, nil)
		h := r.notFound
		if h == nil {
			h = defaultNotFound
		}
		h(c)
	}

	r.recorder.OnRequestEnd(ctx, req, pattern, c.StatusCode(), c.BytesWritten(), time.Since(start))
}
