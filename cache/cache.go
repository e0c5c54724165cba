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
	"time"

	"golang.org/x/sync/singleflight"
)

// Config assembles the tier configurations for a SmartCache.
type Config struct {
	Memory MemoryConfig
	Remote RemoteConfig
	Disk   DiskConfig
}

// Stats reports per-tier counters plus an aggregate hit ratio.
type Stats struct {
	Memory    TierStats
	Remote    TierStats
	Disk      TierStats
	HitRatio  float64
	TotalHits int64
	TotalGets int64
}

// Health reports whether each tier answered its last probe successfully.
type Health struct {
	Memory bool
	Remote bool
	Disk   bool
}

// BuildFunc produces the value to store on a cache miss.
type BuildFunc func(ctx context.Context) (any, time.Duration, error)

// SmartCache is a multi-tier cache: an in-process memory tier backed by
// an optional remote KV tier and an optional disk tier, with promotion of
// lower-tier hits upward and singleflight-based coalescing of concurrent
// builds for the same key.
type SmartCache struct {
	memory *MemoryTier
	remote *remoteTier
	disk   *diskTier

	remoteEnabled bool
	diskEnabled   bool

	group singleflight.Group
}

// New constructs a SmartCache. backend may be nil when cfg.Remote.Enabled
// is false.
func New(cfg Config, backend RemoteCache) (*SmartCache, error) {
	sc := &SmartCache{
		memory:        NewMemoryTier(cfg.Memory),
		remoteEnabled: cfg.Remote.Enabled && backend != nil,
		diskEnabled:   cfg.Disk.Enabled,
	}
	if sc.remoteEnabled {
		sc.remote = newRemoteTier(cfg.Remote, backend)
	}
	if sc.diskEnabled {
		disk, err := newDiskTier(cfg.Disk)
		if err != nil {
			return nil, err
		}
		sc.disk = disk
		sc.disk.pruneExpired()
	}
	return sc, nil
}

// Get looks up key across tiers in order (memory, remote, disk). A disk
// hit is promoted to every higher tier using min(remaining TTL, memory
// default TTL); a remote hit is promoted into memory with the memory
// tier's default TTL, as RemoteCache does not report remaining TTLs.
func (sc *SmartCache) Get(ctx context.Context, key string) (any, bool) {
	if raw, ok := sc.memory.Get(key); ok {
		v, err := deserialize(raw)
		if err != nil {
			return nil, false
		}
		return v, true
	}

	if sc.remoteEnabled {
		if raw, ok := sc.remote.get(ctx, key); ok {
			sc.memory.Set(key, raw, sc.memory.cfg.DefaultTTL)
			v, err := deserialize(raw)
			if err != nil {
				return nil, false
			}
			return v, true
		}
	}

	if sc.diskEnabled {
		if raw, remaining, ok := sc.disk.get(key); ok {
			ttl := promotionTTL(remaining, sc.memory.cfg.DefaultTTL)
			sc.memory.Set(key, raw, ttl)
			if sc.remoteEnabled {
				sc.remote.set(ctx, key, raw, ttl)
			}
			v, err := deserialize(raw)
			if err != nil {
				return nil, false
			}
			return v, true
		}
	}

	return nil, false
}

// promotionTTL picks the TTL for a value promoted from a lower tier:
// min(remaining TTL, tier default). A zero remaining
// (entry stored without expiry) or a zero default leaves the other bound
// in effect.
func promotionTTL(remaining, tierDefault time.Duration) time.Duration {
	switch {
	case remaining <= 0:
		return tierDefault
	case tierDefault <= 0:
		return remaining
	case remaining < tierDefault:
		return remaining
	default:
		return tierDefault
	}
}

// Set writes value to every enabled tier. Remote and disk failures never
// propagate to the caller; only an
// unserializable value or a memory-tier compression error is returned.
func (sc *SmartCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := serialize(key, value)
	if err != nil {
		return err
	}
	if err := sc.memory.Set(key, raw, ttl); err != nil {
		return err
	}
	if sc.remoteEnabled {
		sc.remote.set(ctx, key, raw, ttl)
	}
	if sc.diskEnabled {
		_ = sc.disk.set(key, raw, ttl)
	}
	return nil
}

// Delete removes key from every enabled tier, reporting whether any tier
// held it (idempotent: a second delete of the same key reports false).
func (sc *SmartCache) Delete(ctx context.Context, key string) bool {
	existed := sc.memory.Delete(key)
	if sc.remoteEnabled {
		sc.remote.delete(ctx, key)
	}
	if sc.diskEnabled {
		if sc.disk.delete(key) {
			existed = true
		}
	}
	return existed
}

// Exists reports whether key is present and unexpired in the memory tier,
// without touching lower tiers or LRU order.
func (sc *SmartCache) Exists(key string) bool {
	return sc.memory.Exists(key)
}

// Clear empties the memory tier. Lower tiers are left untouched: remote
// backends are typically shared across processes and a disk tier expires
// on read, so a process-local clear only drops what this process owns
// exclusively.
func (sc *SmartCache) Clear() {
	sc.memory.Clear()
}

// GetOrBuild returns the cached value for key, or invokes build at most
// once across concurrent callers sharing the same key (singleflight
// coalescing: the losers wait for the leader's result), storing the built
// value before returning it.
func (sc *SmartCache) GetOrBuild(ctx context.Context, key string, build BuildFunc) (any, error) {
	if v, ok := sc.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := sc.group.Do(key, func() (any, error) {
		if v, ok := sc.Get(ctx, key); ok {
			return v, nil
		}
		value, ttl, err := build(ctx)
		if err != nil {
			return nil, err
		}
		if err := sc.Set(ctx, key, value, ttl); err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetStats aggregates per-tier counters into a hit ratio. Every Get
// touches the memory tier first, so
// memory hits + memory misses is the total Get count; hits in lower tiers
// rescue a subset of the memory misses rather than adding to the
// denominator.
func (sc *SmartCache) GetStats() Stats {
	mem := sc.memory.Stats()
	stats := Stats{Memory: mem}
	if sc.remoteEnabled {
		stats.Remote = sc.remote.counters.snapshot("remote")
	} else {
		stats.Remote.TierName = "remote"
	}
	if sc.diskEnabled {
		stats.Disk = sc.disk.counters.snapshot("disk")
	} else {
		stats.Disk.TierName = "disk"
	}
	stats.TotalHits = mem.Hits + stats.Remote.Hits + stats.Disk.Hits
	stats.TotalGets = mem.Hits + mem.Misses
	if stats.TotalGets > 0 {
		stats.HitRatio = float64(stats.TotalHits) / float64(stats.TotalGets)
	}
	return stats
}

// HealthCheck reports the last-known health of each enabled tier. A
// disabled tier reports healthy.
func (sc *SmartCache) HealthCheck() Health {
	h := Health{Memory: true, Remote: true, Disk: true}
	if sc.remoteEnabled {
		h.Remote = sc.remote.healthy.Load()
	}
	if sc.diskEnabled {
		h.Disk = sc.disk.healthy.Load()
	}
	return h
}
