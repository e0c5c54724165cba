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

import (
	"fmt"
	"sync"
)

// Factory builds one instance of a registered service, given a DIContext
// so it can resolve its own declared dependencies from the same
// resolution. A factory whose result implements Cleanup gets its Cleanup
// method registered as a callback on the scope that owns the instance.
type Factory func(ctx *DIContext) (any, error)

// Cleanup marks a service instance as owning releasable resources: its
// Cleanup method is invoked when the scope owning that instance tears
// down.
type Cleanup interface {
	Cleanup() error
}

type registration struct {
	name    string
	factory Factory
	scope   Scope
	deps    []string
}

// Container is a dependency-injection container. The zero value is not
// usable; build one with New. A Container may declare a parent: resolution
// shadows by name (child entries hide same-named parent entries) and
// singletons materialized in an ancestor are shared by every descendant.
type Container struct {
	parent *Container
	mu     sync.RWMutex

	registrations map[string]*registration
	singletons    map[string]any
	singletonFrm  *ScopeFrame // owns singleton cleanup callbacks

	// buildLocks serializes first-time singleton construction per name,
	// so exactly one factory invocation wins a concurrent first-resolve
	// race. Per-name rather than container-wide so a factory
	// resolving its own singleton deps never deadlocks on the lock of a
	// different name.
	buildLocks map[string]*sync.Mutex

	scopes *ScopeManager
	logger Logger
}

// Logger is the narrow logging surface Container needs for non-fatal
// scope-cleanup failures; rivaas.dev/logging's Logger satisfies it
// directly.
type Logger interface {
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Error(string, ...any) {}

// Option configures a Container at construction time.
type Option func(*Container)

// WithParent sets the container's parent for shadowed, chained resolution.
func WithParent(parent *Container) Option {
	return func(c *Container) { c.parent = parent }
}

// WithScopeManager supplies a ScopeManager shared across containers (e.g.
// one ScopeManager per process, one Container per module). A Container
// built without this option gets its own private ScopeManager.
func WithScopeManager(sm *ScopeManager) Option {
	return func(c *Container) { c.scopes = sm }
}

// WithContainerLogger sets the logger used for swallowed cleanup errors.
func WithContainerLogger(l Logger) Option {
	return func(c *Container) { c.logger = l }
}

// New creates an empty Container.
func New(opts ...Option) *Container {
	c := &Container{
		registrations: make(map[string]*registration),
		singletons:    make(map[string]any),
		buildLocks:    make(map[string]*sync.Mutex),
		logger:        noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scopes == nil {
		c.scopes = NewScopeManager(true)
	}
	c.singletonFrm = newScopeFrame("singleton", Singleton)
	return c
}

// Register declares a service under name, built by factory at the given
// scope. deps is the explicit set of service names factory depends on:
// Go factories carry no parameter-name reflection to derive dependency
// names from, so they are always declared. Register fails with
// AlreadyRegisteredError if name is already registered in this exact
// container (ancestor registrations are shadowed, not conflicting).
func (c *Container) Register(name string, factory Factory, scope Scope, deps ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.registrations[name]; ok {
		return &AlreadyRegisteredError{Name: name}
	}
	c.registrations[name] = &registration{name: name, factory: factory, scope: scope, deps: deps}
	return nil
}

// lookup finds the registration for name in this container or the nearest
// ancestor that has it, per the "child shadows parent" rule.
func (c *Container) lookup(name string) (*Container, *registration, bool) {
	c.mu.RLock()
	reg, ok := c.registrations[name]
	c.mu.RUnlock()
	if ok {
		return c, reg, true
	}
	if c.parent != nil {
		return c.parent.lookup(name)
	}
	return nil, nil, false
}

// ListServices returns every registered service name reachable from this
// container, including every ancestor container's entries.
func (c *Container) ListServices() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for name := range cur.registrations {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		cur.mu.RUnlock()
	}
	return names
}

// CreateContext opens a new per-request DIContext backed by a fresh
// Request-scope frame. Call Cleanup (or defer it) to tear the frame down;
// cleanup is guaranteed to run exactly once even if called multiple times.
func (c *Container) CreateContext() *DIContext {
	frame, release := c.scopes.OpenRequestScope()
	return &DIContext{
		container:       c,
		requestFrame:    frame,
		releaseRequest:  release,
		resolutionStack: make(map[string]bool),
	}
}

// Resolve resolves name against the container rooted at ctx's owning
// container:
//  1. lookup name in this container, else delegate to parent, else
//     ServiceNotFound;
//  2. singleton with a cached instance returns it;
//  3. request/session/thread scope with an instance already resolved at
//     the active frame returns it;
//  4. cycle detection via ctx.resolutionStack;
//  5. recursively resolve declared deps;
//  6. invoke the factory, cache per scope, register cleanup;
//  7. pop the resolution stack.
func (c *Container) Resolve(ctx *DIContext, name string) (any, error) {
	owner, reg, ok := c.lookup(name)
	if !ok {
		return nil, &ServiceNotFoundError{Name: name}
	}

	switch reg.scope {
	case Singleton:
		owner.mu.RLock()
		if inst, ok := owner.singletons[name]; ok {
			owner.mu.RUnlock()
			return inst, nil
		}
		owner.mu.RUnlock()
	case Request:
		if inst, ok := ctx.requestFrame.get(name); ok {
			return inst, nil
		}
	case Session:
		if ctx.sessionFrame != nil {
			if inst, ok := ctx.sessionFrame.get(name); ok {
				return inst, nil
			}
		}
	case Thread:
		if ctx.threadFrame != nil {
			if inst, ok := ctx.threadFrame.get(name); ok {
				return inst, nil
			}
		}
	}

	ctx.mu.Lock()
	if ctx.resolutionStack[name] {
		chain := ctx.resolutionChain()
		ctx.mu.Unlock()
		return nil, &CircularDependencyError{Name: name, Chain: chain}
	}
	ctx.resolutionStack[name] = true
	ctx.resolutionOrder = append(ctx.resolutionOrder, name)
	ctx.mu.Unlock()

	defer func() {
		ctx.mu.Lock()
		delete(ctx.resolutionStack, name)
		ctx.resolutionOrder = ctx.resolutionOrder[:len(ctx.resolutionOrder)-1]
		ctx.mu.Unlock()
	}()

	for _, dep := range reg.deps {
		if _, err := c.Resolve(ctx, dep); err != nil {
			return nil, err
		}
	}

	if reg.scope == Singleton {
		return owner.buildSingleton(ctx, reg, name)
	}

	instance, err := reg.factory(ctx)
	if err != nil {
		return nil, &FactoryFailedError{Name: name, Err: err}
	}

	if cleanup, ok := instance.(Cleanup); ok {
		cleanupFn := owner.cleanupFn(name, cleanup)
		switch reg.scope {
		case Request:
			ctx.requestFrame.addCleanup(cleanupFn)
		case Session:
			if ctx.sessionFrame != nil {
				ctx.sessionFrame.addCleanup(cleanupFn)
			}
		case Thread:
			if ctx.threadFrame != nil {
				ctx.threadFrame.addCleanup(cleanupFn)
			}
		case Transient:
			ctx.addCleanup(cleanupFn)
		}
	}

	switch reg.scope {
	case Request:
		ctx.requestFrame.put(name, instance)
	case Session:
		if ctx.sessionFrame != nil {
			ctx.sessionFrame.put(name, instance)
		}
	case Thread:
		if ctx.threadFrame != nil {
			ctx.threadFrame.put(name, instance)
		}
	}

	return instance, nil
}

func (c *Container) cleanupFn(name string, cleanup Cleanup) func() {
	return func() {
		if err := cleanup.Cleanup(); err != nil {
			c.logger.Error("di: cleanup failed", "service", name, "error", err)
		}
	}
}

// buildSingleton constructs the singleton for name under its per-name
// build lock, re-checking the cache inside the lock so a concurrent
// first-resolve race invokes the factory exactly once; the losers block
// until the winner's instance lands and then return it.
func (c *Container) buildSingleton(ctx *DIContext, reg *registration, name string) (any, error) {
	lock := c.singletonLock(name)
	lock.Lock()
	defer lock.Unlock()

	c.mu.RLock()
	if inst, ok := c.singletons[name]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	c.mu.RUnlock()

	instance, err := reg.factory(ctx)
	if err != nil {
		return nil, &FactoryFailedError{Name: name, Err: err}
	}
	if cleanup, ok := instance.(Cleanup); ok {
		c.singletonFrm.addCleanup(c.cleanupFn(name, cleanup))
	}

	c.mu.Lock()
	c.singletons[name] = instance
	c.mu.Unlock()
	return instance, nil
}

func (c *Container) singletonLock(name string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.buildLocks[name]
	if !ok {
		lock = &sync.Mutex{}
		c.buildLocks[name] = lock
	}
	return lock
}

// Close tears down the container's singleton scope, running every
// registered singleton Cleanup in LIFO order.
func (c *Container) Close() {
	c.singletonFrm.close()
}

func (c *Container) String() string {
	return fmt.Sprintf("di.Container{services=%d}", len(c.registrations))
}
