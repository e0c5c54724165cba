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
	"errors"
	"runtime"
	"sync"
)

// errPoolStopped is returned by acquire once the pool has been forcibly
// stopped during shutdown.
var errPoolStopped = errors.New("executor: worker pool stopped")

// Pool is a bounded worker pool for blocking handler dispatch: a buffered
// channel of tokens caps how many blocking handlers run concurrently,
// the common idiomatic Go worker-pool shape.
type Pool struct {
	tokens   chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewPool creates a Pool with size concurrent slots. size <= 0 defaults to
// GOMAXPROCS, a reasonable bound for CPU-bound blocking work when the
// caller hasn't configured one explicitly.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		tokens:  make(chan struct{}, size),
		stopped: make(chan struct{}),
	}
}

// acquire blocks until a slot is free, ctx is done, or the pool is
// stopped, whichever comes first.
func (p *Pool) acquire(ctx context.Context) error {
	select {
	case <-p.stopped:
		return errPoolStopped
	default:
	}
	select {
	case p.tokens <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return errPoolStopped
	}
}

// Stop forcibly stops the pool: every waiting acquire fails immediately
// and every future acquire fails without blocking. Handlers already
// holding a slot are not interrupted (Go cannot preempt arbitrary code);
// stopping only cuts off new admissions. Safe to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.stopped) })
}

func (p *Pool) release() {
	<-p.tokens
}

// InUse reports how many slots are currently occupied, for observability.
func (p *Pool) InUse() int {
	return len(p.tokens)
}

// Capacity reports the pool's total slot count.
func (p *Pool) Capacity() int {
	return cap(p.tokens)
}
