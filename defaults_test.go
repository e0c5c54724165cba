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

package catzilla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezwanahmedsami/catzilla-sub000/di"
)

func TestDefaultContainer_LazyInitIsSingleton(t *testing.T) {
	ResetDefaults()
	defer ResetDefaults()

	c1 := DefaultContainer()
	c2 := DefaultContainer()
	assert.Same(t, c1, c2)
}

func TestDefaultCache_LazyInitIsSingleton(t *testing.T) {
	ResetDefaults()
	defer ResetDefaults()

	sc1 := DefaultCache()
	sc2 := DefaultCache()
	assert.Same(t, sc1, sc2)
}

func TestInitDefaults_IsIdempotent(t *testing.T) {
	ResetDefaults()
	defer ResetDefaults()

	c1, sc1, err := InitDefaults(DefaultsConfig{})
	require.NoError(t, err)

	c2, sc2, err := InitDefaults(DefaultsConfig{})
	require.NoError(t, err)

	assert.Same(t, c1, c2)
	assert.Same(t, sc1, sc2)
}

func TestResetDefaults_RunsCleanupAndAllowsReinit(t *testing.T) {
	ResetDefaults()
	defer ResetDefaults()

	var closed bool
	c := DefaultContainer()
	err := c.Register("svc", func(*di.DIContext) (any, error) {
		return cleanupFunc(func() error { closed = true; return nil }), nil
	}, di.Singleton)
	require.NoError(t, err)
	_, err = c.CreateContext().Resolve("svc")
	require.NoError(t, err)

	ResetDefaults()
	assert.True(t, closed)

	fresh := DefaultContainer()
	assert.NotSame(t, c, fresh)
}
