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

package executor

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

func newTestRouter() *router.Router {
	return router.New()
}

func serve(t *testing.T, r *router.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestClassifyDefaultsToSuspending(t *testing.T) {
	c := newClassifierCache()
	h := func(*router.Context) {}
	kind, err := c.Classify(h)
	require.NoError(t, err)
	assert.Equal(t, Suspending, kind)
}

func TestClassifyBlockingMark(t *testing.T) {
	c := newClassifierCache()
	h := MarkBlocking(func(*router.Context) {})
	kind, err := c.Classify(h)
	require.NoError(t, err)
	assert.Equal(t, Blocking, kind)
}

func TestClassifyNilHandlerIsInvalid(t *testing.T) {
	c := newClassifierCache()
	kind, err := c.Classify(nil)
	require.ErrorIs(t, err, ErrInvalidHandler)
	assert.Equal(t, Invalid, kind)
}

func TestWrapSuspendingRunsHandler(t *testing.T) {
	d := New(Config{})
	r := newTestRouter()
	r.GET("/ping", d.Wrap(func(c *router.Context) {
		c.Status(200)
		_, _ = c.Writer.Write([]byte("pong"))
	}))

	rec := serve(t, r, "GET", "/ping")
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestWrapBlockingRunsOnPool(t *testing.T) {
	d := New(Config{WorkerPoolSize: 2})
	r := newTestRouter()
	r.GET("/work", d.Wrap(MarkBlocking(func(c *router.Context) {
		c.Status(200)
		_, _ = c.Writer.Write([]byte("done"))
	})))

	rec := serve(t, r, "GET", "/work")
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestDispatcherRecoversPanic(t *testing.T) {
	d := New(Config{})
	r := newTestRouter()
	r.GET("/boom", d.Wrap(func(*router.Context) {
		panic("kaboom")
	}))

	rec := serve(t, r, "GET", "/boom")
	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, rec.Body.String(), "handler_crashed")
}

func TestDispatcherReportsTimeout(t *testing.T) {
	d := New(Config{AsyncTimeout: 10 * time.Millisecond})
	r := newTestRouter()
	r.GET("/slow", d.Wrap(func(*router.Context) {
		time.Sleep(100 * time.Millisecond)
	}))

	rec := serve(t, r, "GET", "/slow")
	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, rec.Body.String(), "handler_timeout")
}

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool(1)
	assert.Equal(t, 1, p.Capacity())
	assert.Equal(t, 0, p.InUse())
}

func TestShutdownRejectsNewDispatches(t *testing.T) {
	d := New(Config{})
	r := newTestRouter()
	r.GET("/ping", d.Wrap(func(c *router.Context) { c.Status(200) }))

	assert.True(t, d.Shutdown(time.Second))

	rec := serve(t, r, "GET", "/ping")
	assert.Equal(t, 503, rec.Code)
	assert.Contains(t, rec.Body.String(), "shutting_down")
}

func TestShutdownWaitsForInflightWithinGrace(t *testing.T) {
	d := New(Config{})
	r := newTestRouter()

	started := make(chan struct{})
	release := make(chan struct{})
	r.GET("/slow", d.Wrap(func(c *router.Context) {
		close(started)
		<-release
		c.Status(200)
	}))

	go serve(t, r, "GET", "/slow")
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	assert.True(t, d.Shutdown(time.Second), "in-flight handler should drain within grace")
}

func TestShutdownForcesStopAfterGrace(t *testing.T) {
	d := New(Config{})
	r := newTestRouter()

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	r.GET("/stuck", d.Wrap(func(c *router.Context) {
		close(started)
		<-release
	}))

	go serve(t, r, "GET", "/stuck")
	<-started

	assert.False(t, d.Shutdown(20*time.Millisecond), "stuck handler should exhaust the grace window")
}

func TestStoppedPoolRejectsBlockingDispatch(t *testing.T) {
	d := New(Config{WorkerPoolSize: 1})
	d.pool.Stop()

	r := newTestRouter()
	r.GET("/work", d.Wrap(MarkBlocking(func(c *router.Context) { c.Status(200) })))

	rec := serve(t, r, "GET", "/work")
	assert.Equal(t, 503, rec.Code)
}
