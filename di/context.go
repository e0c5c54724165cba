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

package di

import "sync"

// DIContext is the per-request resolution context: a container reference,
// the active scope frames, a
// resolution_stack used for cycle detection, and cleanup callbacks run at
// context teardown. One DIContext is created per request via
// Container.CreateContext and destroyed at request exit; its own
// cleanup callbacks (registered by Transient-scoped services exposing
// Cleanup) run in LIFO order regardless of handler outcome, then the
// owning request frame is released.
type DIContext struct {
	container *Container

	requestFrame   *ScopeFrame
	releaseRequest func()

	sessionFrame *ScopeFrame
	threadFrame  *ScopeFrame

	mu              sync.Mutex
	resolutionStack map[string]bool
	resolutionOrder []string
	cleanups        []func()
	closed          bool
}

// resolutionChain returns the current resolution path, for error reporting
// on a detected cycle. Callers must hold ctx.mu.
func (ctx *DIContext) resolutionChain() []string {
	chain := make([]string, len(ctx.resolutionOrder))
	copy(chain, ctx.resolutionOrder)
	return chain
}

func (ctx *DIContext) addCleanup(fn func()) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.cleanups = append(ctx.cleanups, fn)
}

// BindSession attaches the session-scope frame for sessionID to this
// context, so subsequent Session-scoped resolutions are cached against
// that frame rather than failing to find one.
func (ctx *DIContext) BindSession(sessionID string) {
	ctx.sessionFrame = ctx.container.scopes.AcquireScope(Session, sessionID)
}

// BindThread attaches the thread-scope frame for threadID to this context.
// Resolving a Thread-scoped service before calling BindThread (or while
// the container's ScopeManager has thread scope disabled) silently skips
// caching rather than failing: the instance is still constructed and
// returned, just not retained across calls; the thread-scope switch is a
// cache policy, not a hard error gate.
func (ctx *DIContext) BindThread(threadID string) {
	if !ctx.container.scopes.ThreadScopeEnabled() {
		return
	}
	ctx.threadFrame = ctx.container.scopes.AcquireScope(Thread, threadID)
}

// Resolve resolves name against ctx's owning container. Convenience
// wrapper around Container.Resolve so callers holding only a DIContext
// (most handler code) don't need to also thread the container through.
func (ctx *DIContext) Resolve(name string) (any, error) {
	return ctx.container.Resolve(ctx, name)
}

// Cleanup tears the context down: its own cleanup callbacks (Transient
// services exposing Cleanup) run in LIFO order, then the owning request
// frame is released (running its own cleanups in LIFO order too). Safe to
// call more than once; only the first call has any effect.
func (ctx *DIContext) Cleanup() {
	ctx.mu.Lock()
	if ctx.closed {
		ctx.mu.Unlock()
		return
	}
	ctx.closed = true
	callbacks := ctx.cleanups
	ctx.cleanups = nil
	ctx.mu.Unlock()

	for i := len(callbacks) - 1; i >= 0; i-- {
		callbacks[i]()
	}
	ctx.releaseRequest()
}
