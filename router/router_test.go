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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Match_StaticBeatsParam(t *testing.T) {
	t.Parallel()

	r := New()
	r.GET("/users/{id}", func(c *Context) { c.Set("which", "param") })
	r.GET("/users/me", func(c *Context) { c.Set("which", "static") })

	result := r.Match("GET", "/users/me")
	require.Equal(t, Matched, result.Outcome)
	require.NotNil(t, result.Route)
	assert.Empty(t, result.Params)

	result = r.Match("GET", "/users/42")
	require.Equal(t, Matched, result.Outcome)
	assert.Equal(t, "42", result.Params["id"])
}

func TestRouter_Match_NotFound(t *testing.T) {
	t.Parallel()

	r := New()
	r.GET("/users/{id}", func(*Context) {})

	result := r.Match("GET", "/teams/1")
	assert.Equal(t, NotFound, result.Outcome)
	assert.Nil(t, result.Route)
	assert.Nil(t, result.Allowed)
}

func TestRouter_Match_MethodNotAllowedCarriesFullAllowedSet(t *testing.T) {
	t.Parallel()

	r := New()
	r.GET("/widgets/{id}", func(*Context) {})
	r.POST("/widgets/{id}", func(*Context) {})
	r.DELETE("/widgets/{id}", func(*Context) {})

	result := r.Match("PATCH", "/widgets/7")
	require.Equal(t, MethodNotAllowed, result.Outcome)
	assert.ElementsMatch(t, []string{"GET", "POST", "DELETE"}, result.Allowed)
}

func TestRouter_AddRoute_InvalidMethodPanics(t *testing.T) {
	t.Parallel()

	r := New()
	assert.Panics(t, func() {
		r.AddRoute("FETCH", "/x", func(*Context) {})
	})
}

func TestRouter_AddRoute_MethodNormalizedToUpper(t *testing.T) {
	t.Parallel()

	r := New()
	r.AddRoute("get", "/lower", func(*Context) {})

	result := r.Match("get", "/lower")
	assert.Equal(t, Matched, result.Outcome)
}

func TestRouter_AddRoute_ConflictKeepsFirstByDefault(t *testing.T) {
	t.Parallel()

	r := New()
	first := r.GET("/dup", func(*Context) {})
	second := r.GET("/dup", func(*Context) {})

	assert.Same(t, first, second)
}

func TestRouter_AddRoute_OverwriteReplaces(t *testing.T) {
	t.Parallel()

	r := New(WithOverwriteRoutes())
	first := r.GET("/dup", func(*Context) {})
	second := r.GET("/dup", func(*Context) {})

	assert.NotSame(t, first, second)

	result := r.Match("GET", "/dup")
	assert.Same(t, second, result.Route)
}

func TestRouter_Where_RejectsInvalidParam(t *testing.T) {
	t.Parallel()

	r := New()
	rt := r.GET("/users/{id}", func(*Context) {})
	rt.Where("id", `\d+`)

	result := r.Match("GET", "/users/abc")
	assert.Equal(t, NotFound, result.Outcome)

	result = r.Match("GET", "/users/123")
	assert.Equal(t, Matched, result.Outcome)
	assert.Equal(t, "123", result.Params["id"])
}

func TestRouter_Wildcard(t *testing.T) {
	t.Parallel()

	r := New()
	r.GET("/static/*", func(*Context) {})

	result := r.Match("GET", "/static/css/app.css")
	require.Equal(t, Matched, result.Outcome)
	assert.Equal(t, "css/app.css", result.Params["*"])
}

func TestRouter_ServeHTTP_MatchedRunsMiddlewareThenHandler(t *testing.T) {
	t.Parallel()

	var order []string
	r := New()
	mw := func(c *Context) {
		order = append(order, "mw")
		c.Next()
	}
	r.GET("/x", func(c *Context) {
		order = append(order, "handler")
	}, WithMiddleware(mw))

	req := httptest.NewRequest("GET", "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, []string{"mw", "handler"}, order)
}

func TestRouter_ServeHTTP_NotFoundWritesJSON(t *testing.T) {
	t.Parallel()

	r := New()
	req := httptest.NewRequest("GET", "/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestRouter_ServeHTTP_MethodNotAllowedSetsAllowHeader(t *testing.T) {
	t.Parallel()

	r := New()
	r.GET("/x", func(*Context) {})
	r.POST("/x", func(*Context) {})

	req := httptest.NewRequest("DELETE", "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 405, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "GET")
	assert.Contains(t, w.Header().Get("Allow"), "POST")
}
