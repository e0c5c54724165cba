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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTier_SetGet(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	require.NoError(t, m.Set("k", []byte("v"), 0))

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryTier_MissReturnsFalse(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestMemoryTier_TTLExpiry(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	require.NoError(t, m.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok := m.Get("k")
	assert.False(t, ok)
}

func TestMemoryTier_ItemCapEviction(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{CapacityItems: 2})
	require.NoError(t, m.Set("a", []byte("1"), 0))
	require.NoError(t, m.Set("b", []byte("2"), 0))
	require.NoError(t, m.Set("c", []byte("3"), 0))

	_, ok := m.Get("a")
	assert.False(t, ok, "least recently used entry should have been evicted")

	_, ok = m.Get("c")
	assert.True(t, ok)
	assert.EqualValues(t, 1, m.Stats().Evictions)
}

func TestMemoryTier_AccessPromotesRecency(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{CapacityItems: 2})
	require.NoError(t, m.Set("a", []byte("1"), 0))
	require.NoError(t, m.Set("b", []byte("2"), 0))

	_, _ = m.Get("a") // touch a, making b the LRU candidate

	require.NoError(t, m.Set("c", []byte("3"), 0))

	_, ok := m.Get("b")
	assert.False(t, ok)
	_, ok = m.Get("a")
	assert.True(t, ok)
}

func TestMemoryTier_ByteCapEviction(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{CapacityBytes: 3})
	require.NoError(t, m.Set("a", []byte("xx"), 0))
	require.NoError(t, m.Set("b", []byte("xx"), 0))

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestMemoryTier_CompressionRoundTrip(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{
		CompressionEnabled:        true,
		CompressionThresholdBytes: 4,
	})
	value := []byte("a value long enough to exceed the compression threshold")
	require.NoError(t, m.Set("k", value, 0))

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestMemoryTier_DeleteAndExists(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	require.NoError(t, m.Set("k", []byte("v"), 0))

	assert.True(t, m.Exists("k"))
	assert.True(t, m.Delete("k"))
	assert.False(t, m.Delete("k"))
	assert.False(t, m.Exists("k"))
}

func TestMemoryTier_StatsGauges(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	require.NoError(t, m.Set("a", []byte("12345"), 0))
	require.NoError(t, m.Set("b", []byte("678"), 0))

	stats := m.Stats()
	assert.Equal(t, "memory", stats.TierName)
	assert.EqualValues(t, 2, stats.EntryCount)
	assert.EqualValues(t, 8, stats.BytesInUse)
}

func TestMemoryTier_Clear(t *testing.T) {
	m := NewMemoryTier(MemoryConfig{})
	require.NoError(t, m.Set("a", []byte("1"), 0))
	require.NoError(t, m.Set("b", []byte("2"), 0))

	m.Clear()

	_, ok := m.Get("a")
	assert.False(t, ok)
	_, ok = m.Get("b")
	assert.False(t, ok)
}
