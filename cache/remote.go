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

package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// RemoteCache abstracts the L2 distributed cache tier (Redis, Memcached,
// an internal KV service, anything addressable by fingerprint key).
type RemoteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RemoteConfig configures the remote tier.
type RemoteConfig struct {
	Enabled   bool
	Namespace string
	Timeout   time.Duration
}

// remoteTier wraps a RemoteCache with namespace prefixing and a
// per-operation timeout, and tracks whether the last probe succeeded for
// HealthCheck.
type remoteTier struct {
	cfg      RemoteConfig
	backend  RemoteCache
	healthy  atomic.Bool
	counters tierCounters
}

func newRemoteTier(cfg RemoteConfig, backend RemoteCache) *remoteTier {
	t := &remoteTier{cfg: cfg, backend: backend}
	t.healthy.Store(backend != nil)
	return t
}

func (t *remoteTier) namespacedKey(key string) string {
	if t.cfg.Namespace == "" {
		return key
	}
	return t.cfg.Namespace + ":" + key
}

func (t *remoteTier) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if t.cfg.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, t.cfg.Timeout)
}

// get degrades to (nil, false) on any backend failure: a remote failure
// is a miss, never an error the caller sees. Failures are counted
// separately from plain misses.
func (t *remoteTier) get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	data, ok, err := t.backend.Get(ctx, t.namespacedKey(key))
	t.healthy.Store(err == nil)
	if err != nil {
		t.counters.failures.Add(1)
		t.counters.misses.Add(1)
		return nil, false
	}
	if !ok {
		t.counters.misses.Add(1)
		return nil, false
	}
	t.counters.hits.Add(1)
	return data, true
}

// set is best-effort: a failure is swallowed (and reflected in health and
// the failure counter), never returned to the caller.
func (t *remoteTier) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	err := t.backend.Set(ctx, t.namespacedKey(key), value, ttl)
	t.healthy.Store(err == nil)
	if err != nil {
		t.counters.failures.Add(1)
		return
	}
	t.counters.sets.Add(1)
}

func (t *remoteTier) delete(ctx context.Context, key string) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	err := t.backend.Delete(ctx, t.namespacedKey(key))
	t.healthy.Store(err == nil)
	if err != nil {
		t.counters.failures.Add(1)
		return
	}
	t.counters.deletes.Add(1)
}
