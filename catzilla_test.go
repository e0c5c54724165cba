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

package catzilla

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezwanahmedsami/catzilla-sub000/cache/responsecache"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

func TestApp_GET_ServesAndBindsDIContext(t *testing.T) {
	t.Parallel()

	a := MustNew()
	err := a.Container().Register("greeting", func(*di.DIContext) (any, error) {
		return "hello", nil
	}, di.Singleton)
	require.NoError(t, err)

	a.GET("/greet", func(c *router.Context) {
		v, err := DI(c).Resolve("greeting")
		require.NoError(t, err)
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write([]byte(v.(string)))
	})

	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	w := httptest.NewRecorder()
	a.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}

func TestApp_DI_PanicsOutsideAppRoute(t *testing.T) {
	t.Parallel()

	a := MustNew()
	r := a.Router()
	r.GET("/raw", func(c *router.Context) {
		assert.Panics(t, func() { DI(c) })
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/raw", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestApp_DIContextCleanupRunsAfterHandlerCompletes(t *testing.T) {
	t.Parallel()

	var cleaned bool
	a := MustNew()
	err := a.Container().Register("resource", func(*di.DIContext) (any, error) {
		return cleanupFunc(func() error { cleaned = true; return nil }), nil
	}, di.Request)
	require.NoError(t, err)

	a.GET("/work", func(c *router.Context) {
		_, err := DI(c).Resolve("resource")
		require.NoError(t, err)
		assert.False(t, cleaned, "cleanup must not run before the handler returns")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/work", nil)
	a.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, cleaned, "cleanup must run once the dispatcher's synchronous Wrap call returns")
}

type cleanupFunc func() error

func (f cleanupFunc) Cleanup() error { return f() }

func TestApp_Routes_ReflectsAppRegistrations(t *testing.T) {
	t.Parallel()

	a := MustNew()
	a.GET("/items", func(*router.Context) {})
	a.POST("/items", func(*router.Context) {})

	routes := a.Routes()
	require.Len(t, routes, 2)
}

func TestApp_WithResponseCache_CachesGETResponses(t *testing.T) {
	t.Parallel()

	calls := 0
	a := MustNew(WithResponseCache(responsecache.Config{}))
	a.GET("/cached", func(c *router.Context) {
		calls++
		c.Header().Set("Cache-Control", "max-age=60")
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write([]byte("payload"))
	})

	req := httptest.NewRequest(http.MethodGet, "/cached", nil)
	w1 := httptest.NewRecorder()
	a.ServeHTTP(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	a.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/cached", nil))
	require.Equal(t, http.StatusOK, w2.Code)

	assert.Equal(t, 1, calls, "second request should be served from the response cache")
	assert.Equal(t, "HIT", w2.Header().Get("X-Cache"))
}

func TestApp_Shutdown_RejectsNewRequests(t *testing.T) {
	t.Parallel()

	a := MustNew()
	a.GET("/ping", func(c *router.Context) { c.Status(http.StatusOK) })

	require.True(t, a.Shutdown(time.Second))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	a.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestApp_Close_RunsContainerCleanup(t *testing.T) {
	t.Parallel()

	var closed bool
	a := MustNew()
	err := a.Container().Register("svc", func(*di.DIContext) (any, error) {
		return cleanupFunc(func() error { closed = true; return nil }), nil
	}, di.Singleton)
	require.NoError(t, err)
	_, err = a.Container().CreateContext().Resolve("svc")
	require.NoError(t, err)

	a.Close()
	assert.True(t, closed)
}
