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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"api", "/api"},
		{"/api", "/api"},
		{"/api/", "/api"},
		{"//api///v1/", "/api/v1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizePrefix(tc.in), "prefix %q", tc.in)
	}
}

func TestCombinePath_RootRouteInPrefixedGroup(t *testing.T) {
	t.Parallel()

	// "/" inside a prefixed group is stored as prefix + "/", a distinct
	// entry from the bare prefix
	assert.Equal(t, "/api/", combinePath("/api", "/"))
	assert.Equal(t, "/api/users", combinePath("/api", "users"))
	assert.Equal(t, "/api/users", combinePath("/api", "//users"))
	assert.Equal(t, "/", combinePath("", "/"))
}

func TestGroup_NestedGroupCarriesFullPrefixChain(t *testing.T) {
	t.Parallel()

	api := NewGroup("/api")
	v1 := api.Group("/v1")
	v1.GET("/users", func(*Context) {})

	r := New()
	r.UseGroup(api)

	result := r.Match("GET", "/api/v1/users")
	require.Equal(t, Matched, result.Outcome)
	assert.Equal(t, "/api/v1/users", result.Route.PathTemplate)
}

func TestIncludeGroup_NestedGroupPathParameters(t *testing.T) {
	t.Parallel()

	posts := NewGroup("/posts")
	posts.GET("/{post_id}", func(*Context) {})

	api := NewGroup("/api/v1")
	api.IncludeGroup(posts)

	r := New()
	r.UseGroup(api)

	result := r.Match("GET", "/api/v1/posts/45")
	require.Equal(t, Matched, result.Outcome)
	assert.Equal(t, map[string]string{"post_id": "45"}, result.Params)

	// the collapsed path with the intermediate prefix dropped must not exist
	broken := r.Match("GET", "/api/v1/45")
	assert.Equal(t, NotFound, broken.Outcome)
}

func TestIncludeGroup_PreservesIntermediatePrefixesAcrossLevels(t *testing.T) {
	t.Parallel()

	inner := NewGroup("/items")
	inner.GET("/{id}", func(*Context) {})

	middle := NewGroup("/store")
	middle.IncludeGroup(inner)

	outer := NewGroup("/api")
	outer.IncludeGroup(middle)

	r := New()
	r.UseGroup(outer)

	result := r.Match("GET", "/api/store/items/7")
	require.Equal(t, Matched, result.Outcome)
	assert.Equal(t, "7", result.Params["id"])
}

func TestIncludeGroup_StampsInclusionMetadata(t *testing.T) {
	t.Parallel()

	sub := NewGroup("/posts")
	sub.GET("/{post_id}", func(*Context) {}, WithMetadata(map[string]any{"owner": "blog"}))

	api := NewGroup("/api/v1")
	api.IncludeGroup(sub)

	r := New()
	r.UseGroup(api)

	routes := r.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "blog", routes[0].Metadata["owner"])
	assert.Equal(t, "/posts", routes[0].Metadata["original_group_prefix"])
	assert.Equal(t, "/api/v1", routes[0].Metadata["included_in_group"])
}

func TestGroup_RootRouteCoexistsWithPrefixRoute(t *testing.T) {
	t.Parallel()

	api := NewGroup("/api")
	api.GET("/", func(*Context) {})

	r := New()
	r.UseGroup(api)
	r.GET("/api", func(*Context) {})

	require.Equal(t, Matched, r.Match("GET", "/api").Outcome)
	require.Equal(t, Matched, r.Match("GET", "/api/").Outcome)
}

func TestGroup_MiddlewareRunsOutermostFirst(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) HandlerFunc {
		return func(c *Context) { order = append(order, name) }
	}

	outer := NewGroup("/outer", tag("outer"))
	inner := outer.Group("/inner", tag("inner"))
	inner.GET("/leaf", func(*Context) { order = append(order, "handler") }, WithMiddleware(tag("route")))

	r := New()
	r.UseGroup(outer)

	result := r.Match("GET", "/outer/inner/leaf")
	require.Equal(t, Matched, result.Outcome)

	c := newContext(nil, nil, result.Params, result.Route, append(append([]HandlerFunc(nil), result.Route.Middleware...), result.Route.Handler))
	c.Next()

	assert.Equal(t, []string{"outer", "inner", "route", "handler"}, order)
}

func TestIncludeGroup_CarriesIncludedGroupMiddleware(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) HandlerFunc {
		return func(c *Context) { order = append(order, name) }
	}

	sub := NewGroup("/posts", tag("sub"))
	sub.GET("/all", func(*Context) { order = append(order, "handler") })

	api := NewGroup("/api", tag("api"))
	api.IncludeGroup(sub)

	r := New()
	r.UseGroup(api)

	result := r.Match("GET", "/api/posts/all")
	require.Equal(t, Matched, result.Outcome)

	c := newContext(nil, nil, result.Params, result.Route, append(append([]HandlerFunc(nil), result.Route.Middleware...), result.Route.Handler))
	c.Next()

	assert.Equal(t, []string{"api", "sub", "handler"}, order)
}
