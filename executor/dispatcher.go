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
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rezwanahmedsami/catzilla-sub000/catzerr"
	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

// Logger is the narrow logging surface Dispatcher needs; rivaas.dev/logging's
// Logger satisfies it directly.
type Logger interface {
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Error(string, ...any) {}

// Config configures a Dispatcher.
type Config struct {
	WorkerPoolSize           int
	SyncTimeout              time.Duration // blocking-handler (worker-pool) timeout
	AsyncTimeout             time.Duration // suspending-handler timeout
	EnableContextPropagation bool
}

// Dispatcher wraps handlers with the blocking/suspending dispatch split:
// a [Blocking]-classified handler runs on the worker pool
// under SyncTimeout; a [Suspending]-classified handler runs on the calling
// goroutine under AsyncTimeout. Both paths recover a handler panic into a
// HandlerCrashed error and a handler timeout into a HandlerTimeout error,
// written through catzerr so the response shape matches every other
// request-boundary failure.
type Dispatcher struct {
	pool       *Pool
	cfg        Config
	logger     Logger
	classifier *classifierCache
	responder  *catzerr.Responder

	// shutMu guards the shuttingDown flag against the inflight WaitGroup:
	// handlers take the read side to check-then-Add atomically, so
	// Shutdown's Wait can never race a late Add.
	shutMu       sync.RWMutex
	shuttingDown bool
	inflight     sync.WaitGroup
}

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithLogger sets the logger used for recovered panics and timeouts.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithResponder overrides the catzerr.Responder used to write timeout/crash
// error responses.
func WithResponder(r *catzerr.Responder) Option {
	return func(d *Dispatcher) { d.responder = r }
}

// New creates a Dispatcher. A zero cfg.WorkerPoolSize defaults to
// GOMAXPROCS (see NewPool); a zero timeout disables that dispatch path's
// timeout entirely (the handler runs to completion, however long it
// takes).
func New(cfg Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		pool:       NewPool(cfg.WorkerPoolSize),
		cfg:        cfg,
		logger:     noopLogger{},
		classifier: newClassifierCache(),
		responder:  catzerr.NewResponder(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Pool exposes the underlying worker pool for observability (InUse /
// Capacity).
func (d *Dispatcher) Pool() *Pool { return d.pool }

// Wrap classifies h once (at registration time, via the cached classifier)
// and returns a router.HandlerFunc that dispatches every subsequent call
// according to that classification. Wrap panics on an Invalid
// classification (a nil handler), matching the router package's own
// fail-fast-at-registration convention for programmer errors.
func (d *Dispatcher) Wrap(h router.HandlerFunc) router.HandlerFunc {
	kind, err := d.classifier.Classify(h)
	if err != nil {
		panic(err)
	}
	if kind == Blocking {
		return d.wrapBlocking(h)
	}
	return d.wrapSuspending(h)
}

// wrapBlocking dispatches h to the worker pool, acquiring a slot (itself
// bounded by SyncTimeout) before running the handler in its own goroutine
// under the same deadline.
func (d *Dispatcher) wrapBlocking(h router.HandlerFunc) router.HandlerFunc {
	return func(c *router.Context) {
		if !d.beginRequest() {
			d.writeUnavailable(c)
			return
		}
		defer d.inflight.Done()

		ctx, cancel := d.deadline(c, d.cfg.SyncTimeout)
		defer cancel()

		if err := d.pool.acquire(ctx); err != nil {
			if err == errPoolStopped {
				d.writeUnavailable(c)
				return
			}
			d.writeTimeout(c, Blocking)
			return
		}
		defer d.pool.release()

		d.runWithDeadline(c, ctx, Blocking, h)
	}
}

// wrapSuspending runs h directly (no worker-pool slot needed) under
// AsyncTimeout.
func (d *Dispatcher) wrapSuspending(h router.HandlerFunc) router.HandlerFunc {
	return func(c *router.Context) {
		if !d.beginRequest() {
			d.writeUnavailable(c)
			return
		}
		defer d.inflight.Done()

		ctx, cancel := d.deadline(c, d.cfg.AsyncTimeout)
		defer cancel()
		d.runWithDeadline(c, ctx, Suspending, h)
	}
}

// beginRequest admits one dispatch unless shutdown has begun, registering
// it with the in-flight tracker Shutdown drains.
func (d *Dispatcher) beginRequest() bool {
	d.shutMu.RLock()
	defer d.shutMu.RUnlock()
	if d.shuttingDown {
		return false
	}
	d.inflight.Add(1)
	return true
}

// ShuttingDown reports whether Shutdown has been called.
func (d *Dispatcher) ShuttingDown() bool {
	d.shutMu.RLock()
	defer d.shutMu.RUnlock()
	return d.shuttingDown
}

// Shutdown sets the process-wide shutdown flag (new dispatches are
// rejected with 503 from that point on), lets in-flight handlers run to
// completion for up to grace, then forcibly stops the worker pool. It
// reports whether every in-flight
// handler drained within the grace window. A non-positive grace waits
// indefinitely.
func (d *Dispatcher) Shutdown(grace time.Duration) bool {
	d.shutMu.Lock()
	d.shuttingDown = true
	d.shutMu.Unlock()

	drained := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(drained)
	}()

	if grace <= 0 {
		<-drained
		d.pool.Stop()
		return true
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-drained:
		d.pool.Stop()
		return true
	case <-timer.C:
		d.pool.Stop()
		return false
	}
}

func (d *Dispatcher) writeUnavailable(c *router.Context) {
	err := catzerr.New(catzerr.System, "server is shutting down").
		WithStatus(http.StatusServiceUnavailable).
		WithCode("shutting_down")
	d.writeError(c, err)
}

// deadline derives a context bounded by timeout (if positive) from the
// request's own context when EnableContextPropagation is set, or from
// context.Background() otherwise.
func (d *Dispatcher) deadline(c *router.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	parent := context.Background()
	if d.cfg.EnableContextPropagation && c.Request != nil {
		parent = c.Request.Context()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// runWithDeadline runs h in its own goroutine and races it against ctx's
// deadline. A handler that ignores cancellation keeps running after a
// timeout is reported (Go cannot forcibly preempt arbitrary code); callers
// writing long blocking work are expected to observe ctx via
// EnableContextPropagation the same way any well-behaved goroutine would.
func (d *Dispatcher) runWithDeadline(c *router.Context, ctx context.Context, kind Kind, h router.HandlerFunc) {
	done := make(chan struct{})
	var crashed any

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				crashed = r
			}
		}()
		h(c)
	}()

	select {
	case <-done:
		if crashed != nil {
			d.writeCrash(c, crashed)
		}
	case <-ctx.Done():
		d.writeTimeout(c, kind)
	}
}

func (d *Dispatcher) writeTimeout(c *router.Context, kind Kind) {
	d.logger.Error("executor: handler timeout", "kind", kind.String())
	err := catzerr.Wrap(catzerr.Handler, &HandlerTimeoutError{Kind: kind}, "").WithCode("handler_timeout")
	d.writeError(c, err)
}

func (d *Dispatcher) writeCrash(c *router.Context, recovered any) {
	d.logger.Error("executor: handler crashed", "recovered", recovered)
	err := catzerr.Wrap(catzerr.Handler, &HandlerCrashedError{Recovered: recovered}, "").WithCode("handler_crashed")
	d.writeError(c, err)
}

func (d *Dispatcher) writeError(c *router.Context, err *catzerr.Error) {
	if c.StatusCode() != http.StatusOK || c.BytesWritten() > 0 {
		// The handler already wrote a response before crashing/timing out
		// (e.g. partial body); writing again would panic on a duplicate
		// WriteHeader or produce a corrupt body, so this is a no-op.
		return
	}
	d.responder.Write(c.Writer, c.Request, err)
}
