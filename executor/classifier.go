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
	"reflect"
	"sync"

	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

// Kind classifies a handler's dispatch strategy.
type Kind int

const (
	// Suspending handlers run in the calling goroutine; this is the
	// default for any handler not explicitly marked blocking.
	Suspending Kind = iota
	// Blocking handlers are dispatched to the worker pool.
	Blocking
	// Invalid marks a handler the classifier could not classify at all
	// (a nil func value).
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Blocking:
		return "blocking"
	case Suspending:
		return "suspending"
	default:
		return "invalid"
	}
}

// blockingMarks records the identity (function pointer) of every handler
// registered through MarkBlocking, consulted by Classify. It is
// process-wide because handler identity is stable for the lifetime of the
// program: handlers are ordinary top-level or closure function values
// registered once at startup.
var blockingMarks sync.Map // map[uintptr]bool

func identityOf(h router.HandlerFunc) uintptr {
	return reflect.ValueOf(h).Pointer()
}

// MarkBlocking declares h as a blocking handler: one that performs
// synchronous, potentially slow work (a blocking database call, CPU-bound
// computation) and must run on the worker pool rather than the calling
// goroutine. It returns h unchanged so it composes directly with
// [router.Router.AddRoute]:
//
//	r.GET("/report", executor.MarkBlocking(generateReport))
//
// Go has no runtime distinction between "blocking" and "suspending"
// functions, so the classification has to be declared rather than
// detected.
func MarkBlocking(h router.HandlerFunc) router.HandlerFunc {
	blockingMarks.Store(identityOf(h), true)
	return h
}

// classifierCache caches the Kind decision per handler identity, so a
// handler dispatched on every request is classified exactly once.
type classifierCache struct {
	mu    sync.RWMutex
	cache map[uintptr]Kind
}

func newClassifierCache() *classifierCache {
	return &classifierCache{cache: make(map[uintptr]Kind)}
}

// Classify resolves h's dispatch Kind, returning [ErrInvalidHandler] for a
// nil handler. The decision is cached by handler identity.
func (c *classifierCache) Classify(h router.HandlerFunc) (Kind, error) {
	if h == nil {
		return Invalid, ErrInvalidHandler
	}
	id := identityOf(h)

	c.mu.RLock()
	kind, ok := c.cache[id]
	c.mu.RUnlock()
	if ok {
		return kind, nil
	}

	kind = Suspending
	if _, marked := blockingMarks.Load(id); marked {
		kind = Blocking
	}

	c.mu.Lock()
	c.cache[id] = kind
	c.mu.Unlock()
	return kind, nil
}
