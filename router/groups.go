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
	"strings"
)

// pendingRoute is one route recorded against a RouterGroup before the
// group is attached to a Router (directly via UseGroup, or transitively
// via IncludeGroup). path is always stored fully combined with whatever
// group's prefix produced it, computed once at registration time. This
// is what lets IncludeGroup re-flatten an already-included group without
// ever re-applying a prefix twice.
type pendingRoute struct {
	method     string
	path       string
	handler    HandlerFunc
	middleware []HandlerFunc
	metadata   map[string]any
}

// RouterGroup is a named collection of routes sharing a path prefix and a
// middleware chain. A group is not bound to a Router until it is either
// attached directly (Router.UseGroup) or flattened into another group via
// IncludeGroup; until then it is a standalone value independent of any
// particular router instance.
type RouterGroup struct {
	Prefix     string
	Middleware []HandlerFunc
	Metadata   map[string]any

	routes   []pendingRoute
	children []*RouterGroup
}

// normalizePrefix canonicalizes a group prefix: empty or "/" collapses to
// "", a leading slash is ensured, a trailing slash is stripped unless the
// prefix is the root, and runs of "/" collapse to one.
func normalizePrefix(prefix string) string {
	if prefix == "" || prefix == "/" {
		return ""
	}
	var b strings.Builder
	lastWasSlash := false
	for _, r := range prefix {
		if r == '/' {
			if lastWasSlash {
				continue
			}
			lastWasSlash = true
		} else {
			lastWasSlash = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	if len(out) > 1 && strings.HasSuffix(out, "/") {
		out = out[:len(out)-1]
	}
	return out
}

// collapseSlashes collapses runs of "/" to a single "/", without the
// group-prefix-specific rule that maps a bare "/" down to "": a route
// path of "/" must stay "/", since (unlike a prefix) it is itself the
// thing being routed to.
func collapseSlashes(path string) string {
	var b strings.Builder
	lastWasSlash := false
	for _, r := range path {
		if r == '/' {
			if lastWasSlash {
				continue
			}
			lastWasSlash = true
		} else {
			lastWasSlash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// combinePath joins a group prefix and a route path, re-applying the
// slash-collapsing and leading-slash rules. The
// root-route-inside-a-prefixed-group edge case ("/" inside a
// non-empty prefix is stored as prefix + "/") falls out naturally: path
// "/" is never stripped down to "", so prefix+"/" survives as a distinct
// entry from the bare prefix.
func combinePath(prefix, path string) string {
	if prefix == "" {
		if path == "" || path == "/" {
			return "/"
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return collapseSlashes(path)
	}
	if path == "" || path == "/" {
		return prefix + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return collapseSlashes(prefix + path)
}

// NewGroup creates a RouterGroup rooted at prefix, normalized by
// normalizePrefix.
func NewGroup(prefix string, middleware ...HandlerFunc) *RouterGroup {
	return &RouterGroup{
		Prefix:     normalizePrefix(prefix),
		Middleware: middleware,
	}
}

// Use appends middleware to the group's chain; it runs for every route
// registered in this group, every nested child group, and every group
// included into it, outermost first.
func (g *RouterGroup) Use(middleware ...HandlerFunc) {
	g.Middleware = append(g.Middleware, middleware...)
}

func (g *RouterGroup) addRoute(method, path string, handler HandlerFunc, opts ...RouteOption) {
	rt := &Route{}
	cfg := &routeAddConfig{}
	for _, opt := range opts {
		opt(rt, cfg)
	}
	g.routes = append(g.routes, pendingRoute{
		method:     strings.ToUpper(method),
		path:       combinePath(g.Prefix, path),
		handler:    handler,
		middleware: rt.Middleware,
		metadata:   rt.Metadata,
	})
}

func (g *RouterGroup) GET(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("GET", path, handler, opts...)
}

func (g *RouterGroup) POST(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("POST", path, handler, opts...)
}

func (g *RouterGroup) PUT(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("PUT", path, handler, opts...)
}

func (g *RouterGroup) PATCH(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("PATCH", path, handler, opts...)
}

func (g *RouterGroup) DELETE(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("DELETE", path, handler, opts...)
}

func (g *RouterGroup) OPTIONS(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("OPTIONS", path, handler, opts...)
}

func (g *RouterGroup) HEAD(path string, handler HandlerFunc, opts ...RouteOption) {
	g.addRoute("HEAD", path, handler, opts...)
}

// Group creates a child group nested under g, its prefix already fully
// combined with g's (so the child carries its complete absolute prefix
// chain from the moment it is constructed; nothing further needs to be
// prepended at flatten time).
func (g *RouterGroup) Group(prefix string, middleware ...HandlerFunc) *RouterGroup {
	child := NewGroup(combinePath(g.Prefix, prefix), middleware...)
	g.children = append(g.children, child)
	return child
}

// flatten returns every route reachable from g (directly registered,
// nested via Group, or merged in via IncludeGroup) with each route's path
// already absolute (computed once at registration time, never recombined
// here) and its effective middleware chain: inherited (every enclosing
// group's middleware, outermost first) followed by g.Middleware followed
// by the route's own per-route middleware.
func (g *RouterGroup) flatten(inherited []HandlerFunc) []pendingRoute {
	chain := append(append([]HandlerFunc(nil), inherited...), g.Middleware...)

	out := make([]pendingRoute, 0, len(g.routes))
	for _, pr := range g.routes {
		pr.middleware = append(append([]HandlerFunc(nil), chain...), pr.middleware...)
		out = append(out, pr)
	}
	for _, child := range g.children {
		out = append(out, child.flatten(chain)...)
	}
	return out
}

// IncludeGroup flattens sub's routes into g: every (method, path, handler,
// metadata) tuple in sub, including sub's own nested/included
// descendants, is re-emitted under g.Prefix with sub's full prefix chain
// preserved. Preserving the whole chain is the load-bearing part: sub's
// routes already carry their complete path relative to g (built up across
// every intermediate Group/IncludeGroup call since sub was created, with
// sub.Prefix baked in), so only g.Prefix is prepended here; re-applying
// sub.Prefix as well would double it for anything nested more than one
// level deep. Metadata gains original_group_prefix (sub's own Prefix) and
// included_in_group (g's own prefix). sub's own
// middleware chain travels with each route (baked in by sub.flatten(nil));
// g's middleware is layered on top of that later, when g itself is
// flattened or attached, so the effective order stays outermost first
// regardless of how deep the inclusion chain runs.
func (g *RouterGroup) IncludeGroup(sub *RouterGroup) {
	for _, pr := range sub.flatten(nil) {
		metadata := make(map[string]any, len(pr.metadata)+2)
		for k, v := range pr.metadata {
			metadata[k] = v
		}
		metadata["original_group_prefix"] = sub.Prefix
		metadata["included_in_group"] = g.Prefix

		g.routes = append(g.routes, pendingRoute{
			method:     pr.method,
			path:       combinePath(g.Prefix, pr.path),
			handler:    pr.handler,
			middleware: pr.middleware,
			metadata:   metadata,
		})
	}
}

// UseGroup registers every route reachable from group directly onto r,
// with each route's fully composed middleware chain.
func (r *Router) UseGroup(group *RouterGroup) {
	for _, pr := range group.flatten(nil) {
		r.AddRoute(pr.method, pr.path, pr.handler, WithMiddleware(pr.middleware...), WithMetadata(pr.metadata))
	}
}
