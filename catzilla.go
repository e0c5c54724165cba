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

// Package catzilla wires the router, DI container, smart cache, executor,
// and error taxonomy into a single runtime: a
// request enters through App.ServeHTTP, is matched by the router, gets a
// fresh per-request DIContext bound to it, is dispatched to its handler
// according to the executor's blocking/suspending classification, and any
// failure at that boundary is rendered by catzerr's Responder.
package catzilla

import (
	"net/http"
	"time"

	"rivaas.dev/logging"

	"github.com/rezwanahmedsami/catzilla-sub000/cache"
	"github.com/rezwanahmedsami/catzilla-sub000/cache/responsecache"
	"github.com/rezwanahmedsami/catzilla-sub000/catzerr"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
	"github.com/rezwanahmedsami/catzilla-sub000/executor"
	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

const diStateKey = "catzilla.di"

// Logger is the narrow logging surface App forwards to every subsystem
// that accepts one; rivaas.dev/logging's *Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// App is the top-level Catzilla runtime: a router bound to a DI container,
// a smart cache, an executor dispatcher, and an error responder. The zero
// value is not usable; build one with New.
type App struct {
	router     *router.Router
	container  *di.Container
	cache      *cache.SmartCache
	dispatcher *executor.Dispatcher
	responder  *catzerr.Responder
	respCache  *responsecache.Middleware
	respCfg    *responsecache.Config // set by WithResponseCache; built in New once the cache exists
	logger     Logger

	handler http.Handler // router, optionally wrapped by respCache
}

// Option configures an App at construction time.
type Option func(*App)

// WithLogger sets the logger forwarded to the router, DI container, and
// executor.
func WithLogger(l Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithContainer supplies a pre-built DI container instead of a fresh
// private one (e.g. DefaultContainer(), or one sharing a ScopeManager with
// another App).
func WithContainer(c *di.Container) Option {
	return func(a *App) { a.container = c }
}

// WithCache supplies a pre-built smart cache instead of a fresh private
// one (e.g. DefaultCache()).
func WithCache(c *cache.SmartCache) Option {
	return func(a *App) { a.cache = c }
}

// WithExecutorConfig configures the worker-pool size and dispatch
// timeouts.
func WithExecutorConfig(cfg executor.Config) Option {
	return func(a *App) { a.dispatcher = executor.New(cfg, executor.WithResponder(a.responder)) }
}

// WithResponseCache installs the HTTP response-cache middleware at the
// server level, in front of the whole router rather than per-route,
// backed by App's own cache.
func WithResponseCache(cfg responsecache.Config) Option {
	return func(a *App) { a.respCfg = &cfg }
}

// WithRouterOptions passes options through to the underlying router.Router
// (e.g. router.WithOverwriteRoutes, router.WithRecorder).
func WithRouterOptions(opts ...router.Option) Option {
	return func(a *App) { a.router = router.New(opts...) }
}

// New builds an App. Subsystems not overridden by an Option get sensible,
// private defaults: a fresh DI container, a memory-only smart cache, a
// GOMAXPROCS-sized executor, a plain router, and a rivaas.dev/logging
// logger shared across all of them.
func New(opts ...Option) (*App, error) {
	a := &App{responder: catzerr.NewResponder()}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		defaultLogger, err := logging.New()
		if err != nil {
			return nil, err
		}
		a.logger = defaultLogger
	}
	if a.container == nil {
		a.container = di.New(di.WithContainerLogger(a.logger))
	}
	if a.router == nil {
		a.router = router.New(router.WithLogger(a.logger))
	}
	if a.cache == nil {
		sc, err := cache.New(cache.Config{Memory: cache.MemoryConfig{}}, nil)
		if err != nil {
			return nil, err
		}
		a.cache = sc
	}
	if a.dispatcher == nil {
		a.dispatcher = executor.New(executor.Config{}, executor.WithResponder(a.responder), executor.WithLogger(a.logger))
	}

	a.handler = a.router
	if a.respCfg != nil {
		a.respCache = responsecache.New(*a.respCfg, a.cache)
	}
	if a.respCache != nil {
		a.handler = a.respCache.Wrap(a.router)
	}
	return a, nil
}

// MustNew is New, but panics instead of returning an error. Intended for
// package-init-time construction where a failure is unrecoverable anyway.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Router exposes the underlying router.Router for advanced use (groups,
// per-route constraints, SetNotFoundHandler).
func (a *App) Router() *router.Router { return a.router }

// Container exposes the underlying DI container for service registration.
func (a *App) Container() *di.Container { return a.container }

// Cache exposes the underlying smart cache for direct API-level use,
// alongside its role backing the HTTP response cache.
func (a *App) Cache() *cache.SmartCache { return a.cache }

// Dispatcher exposes the executor dispatcher, e.g. for Pool().InUse()
// observability.
func (a *App) Dispatcher() *executor.Dispatcher { return a.dispatcher }

// Responder exposes the error responder used to render handler-boundary
// failures, so application code can reuse it for errors it catches itself.
func (a *App) Responder() *catzerr.Responder { return a.responder }

// DI retrieves the per-request DIContext bound to c by the diMiddleware
// every App-registered route carries. Panics if called outside a request
// routed through an App.Handle/GET/POST/... registration, since that is
// always a programmer error (a handler bypassing App's registration
// surface entirely).
func DI(c *router.Context) *di.DIContext {
	v, ok := c.Get(diStateKey)
	if !ok {
		panic("catzilla: no DIContext bound to this request; register routes through App, not router.Router directly")
	}
	return v.(*di.DIContext)
}

// diMiddleware opens a request-scoped DIContext before the handler chain
// runs and guarantees its cleanup once the chain (including executor
// dispatch, which blocks the calling goroutine until the handler
// completes or its deadline fires) returns.
func (a *App) diMiddleware() router.HandlerFunc {
	return func(c *router.Context) {
		ctx := a.container.CreateContext()
		defer ctx.Cleanup()
		c.Set(diStateKey, ctx)
		c.Next()
	}
}

// Handle registers handler for method and path, wrapping it with the
// executor's blocking/suspending dispatch and a DI-context-opening
// middleware that runs ahead of any caller-supplied middleware in opts.
func (a *App) Handle(method, path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	wrapped := a.dispatcher.Wrap(handler)
	combined := append([]router.RouteOption{router.WithMiddleware(a.diMiddleware())}, opts...)
	return a.router.AddRoute(method, path, wrapped, combined...)
}

func (a *App) GET(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodGet, path, handler, opts...)
}

func (a *App) POST(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodPost, path, handler, opts...)
}

func (a *App) PUT(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodPut, path, handler, opts...)
}

func (a *App) PATCH(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodPatch, path, handler, opts...)
}

func (a *App) DELETE(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodDelete, path, handler, opts...)
}

func (a *App) OPTIONS(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodOptions, path, handler, opts...)
}

func (a *App) HEAD(path string, handler router.HandlerFunc, opts ...router.RouteOption) *router.Route {
	return a.Handle(http.MethodHead, path, handler, opts...)
}

// Routes returns every route currently registered.
func (a *App) Routes() []router.RouteInfo { return a.router.Routes() }

// ServeHTTP makes App an http.Handler: the response-cache middleware (if
// installed) sits in front of the router, so caching applies once at the
// server level rather than per-route.
func (a *App) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	a.handler.ServeHTTP(w, req)
}

// Shutdown begins graceful shutdown: new handler dispatches are rejected
// with 503, in-flight handlers run to completion for up to grace, and the
// worker pool is forcibly stopped once the window closes. It
// reports whether everything in flight drained within grace. Call Close
// afterwards to tear down the DI container.
func (a *App) Shutdown(grace time.Duration) bool {
	return a.dispatcher.Shutdown(grace)
}

// Close tears down the App's DI container (running every singleton's
// Cleanup in LIFO order). This includes a container supplied via
// WithContainer: Close does not track whether that container is shared
// with other Apps or with the process-wide default.
func (a *App) Close() {
	a.container.Close()
}
