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
	"container/list"
	"sync"
	"time"
)

// TierStats is one tier's counter set: monotonic counters plus the
// bytes-in-use / entry-count gauges and the tier's name. Failures counts
// non-fatal tier errors (remote timeouts, disk I/O errors) that degraded
// to a miss or a skipped write.
type TierStats struct {
	TierName   string
	Hits       int64
	Misses     int64
	Sets       int64
	Deletes    int64
	Evictions  int64
	Failures   int64
	EntryCount int64
	BytesInUse int64
}

// MemoryConfig configures the memory tier.
type MemoryConfig struct {
	CapacityItems             int
	CapacityBytes             int64
	DefaultTTL                time.Duration
	CompressionEnabled        bool
	CompressionThresholdBytes int
	BrotliLevel               int // defaults to 4, a balanced level for dynamic content
}

type memoryEntry struct {
	key        string
	value      []byte
	compressed bool
	expiresAt  time.Time // zero means no expiry
	sizeBytes  int64
	elem       *list.Element
}

// MemoryTier is an in-process LRU cache with both byte and item caps,
// lazy TTL expiry, and an optional brotli compression policy applied
// above a configured size threshold: a map guarded by one mutex plus a
// doubly-linked eviction list, evicting from the tail until both caps
// hold.
type MemoryTier struct {
	mu       sync.Mutex
	cfg      MemoryConfig
	entries  map[string]*memoryEntry
	order    *list.List // front = most recently used
	curBytes int64
	stats    TierStats
}

// NewMemoryTier creates a MemoryTier. A zero CapacityItems or
// CapacityBytes means "unbounded" on that axis.
func NewMemoryTier(cfg MemoryConfig) *MemoryTier {
	if cfg.BrotliLevel == 0 {
		cfg.BrotliLevel = 4
	}
	return &MemoryTier{
		cfg:     cfg,
		entries: make(map[string]*memoryEntry),
		order:   list.New(),
	}
}

func (m *MemoryTier) serializeValue(key string, value []byte) ([]byte, bool, error) {
	if m.cfg.CompressionEnabled && len(value) > m.cfg.CompressionThresholdBytes {
		compressed, err := compress(value, m.cfg.BrotliLevel)
		if err != nil {
			return nil, false, err
		}
		return compressed, true, nil
	}
	return value, false, nil
}

// Get returns the raw (pre-deserialization) bytes stored under key,
// transparently decompressing if the entry was stored compressed.
// Expired entries are evicted lazily on access and reported as a miss.
func (m *MemoryTier) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.removeLocked(entry)
		m.stats.Misses++
		return nil, false
	}

	m.order.MoveToFront(entry.elem)
	m.stats.Hits++

	if !entry.compressed {
		return entry.value, true
	}
	raw, err := decompress(entry.value)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Set stores value (already-serialized bytes) under key with ttl (zero
// means the tier's DefaultTTL; a negative TTL means no expiry).
func (m *MemoryTier) Set(key string, value []byte, ttl time.Duration) error {
	stored, compressed, err := m.serializeValue(key, value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = m.cfg.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[key]; ok {
		m.removeLocked(existing)
	}

	entry := &memoryEntry{
		key:        key,
		value:      stored,
		compressed: compressed,
		expiresAt:  expiresAt,
		sizeBytes:  int64(len(stored)),
	}
	entry.elem = m.order.PushFront(entry)
	m.entries[key] = entry
	m.curBytes += entry.sizeBytes
	m.stats.Sets++

	m.evictLocked()
	return nil
}

// evictLocked evicts least-recently-used entries until both caps are
// satisfied. Caller must hold m.mu.
func (m *MemoryTier) evictLocked() {
	for {
		overItems := m.cfg.CapacityItems > 0 && len(m.entries) > m.cfg.CapacityItems
		overBytes := m.cfg.CapacityBytes > 0 && m.curBytes > m.cfg.CapacityBytes
		if !overItems && !overBytes {
			return
		}
		back := m.order.Back()
		if back == nil {
			return
		}
		entry := back.Value.(*memoryEntry)
		m.removeLocked(entry)
		m.stats.Evictions++
	}
}

// removeLocked drops entry from both the map and the LRU list. Caller
// must hold m.mu.
func (m *MemoryTier) removeLocked(entry *memoryEntry) {
	m.order.Remove(entry.elem)
	delete(m.entries, entry.key)
	m.curBytes -= entry.sizeBytes
}

// Delete removes key, reporting whether it existed.
func (m *MemoryTier) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return false
	}
	m.removeLocked(entry)
	m.stats.Deletes++
	return true
}

// Exists reports whether key is present and unexpired, without affecting
// LRU order or stats.
func (m *MemoryTier) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return false
	}
	return entry.expiresAt.IsZero() || !time.Now().After(entry.expiresAt)
}

// Clear empties the tier.
func (m *MemoryTier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*memoryEntry)
	m.order.Init()
	m.curBytes = 0
}

// Stats returns a snapshot of the tier's counters and gauges.
func (m *MemoryTier) Stats() TierStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.stats
	snapshot.TierName = "memory"
	snapshot.EntryCount = int64(len(m.entries))
	snapshot.BytesInUse = m.curBytes
	return snapshot
}
