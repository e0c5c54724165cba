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

func TestDiskTier_SetGet(t *testing.T) {
	dt, err := newDiskTier(DiskConfig{Enabled: true, Directory: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, dt.set("k", []byte("v"), time.Hour))

	got, remaining, ok := dt.get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Greater(t, remaining, 59*time.Minute)
}

func TestDiskTier_TTLExpiry(t *testing.T) {
	dt, err := newDiskTier(DiskConfig{Enabled: true, Directory: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, dt.set("k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, _, ok := dt.get("k")
	assert.False(t, ok)
}

func TestDiskTier_DeleteMissingIsFalse(t *testing.T) {
	dt, err := newDiskTier(DiskConfig{Enabled: true, Directory: t.TempDir()})
	require.NoError(t, err)

	assert.False(t, dt.delete("missing"))
}

func TestDiskTier_WritesAreDurableAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := newDiskTier(DiskConfig{Enabled: true, Directory: dir})
	require.NoError(t, err)
	require.NoError(t, first.set("k", []byte("v"), time.Hour))

	second, err := newDiskTier(DiskConfig{Enabled: true, Directory: dir})
	require.NoError(t, err)

	got, _, ok := second.get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
