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
	"sync"

	"github.com/rezwanahmedsami/catzilla-sub000/cache"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
)

// Process-wide default container and cache: explicitly initialized
// process state with documented init/teardown, so tests can reset them
// between runs instead of inheriting state across test binaries.
var (
	defaultsMu        sync.Mutex
	defaultContainer  *di.Container
	defaultCache      *cache.SmartCache
	defaultsInitError error
)

// DefaultsConfig configures the process-wide defaults InitDefaults builds.
type DefaultsConfig struct {
	Container di.Option
	Cache     cache.Config
	Backend   cache.RemoteCache
}

// InitDefaults explicitly initializes the process-wide default container
// and cache. It is idempotent: calling it again without an intervening
// ResetDefaults returns the already-initialized pair and ignores cfg,
// since re-initializing process state out from under already-resolved
// singletons would violate the container's own cleanup guarantees.
func InitDefaults(cfg DefaultsConfig) (*di.Container, *cache.SmartCache, error) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if defaultContainer != nil && defaultCache != nil {
		return defaultContainer, defaultCache, nil
	}

	var containerOpts []di.Option
	if cfg.Container != nil {
		containerOpts = append(containerOpts, cfg.Container)
	}
	defaultContainer = di.New(containerOpts...)

	sc, err := cache.New(cfg.Cache, cfg.Backend)
	if err != nil {
		defaultContainer = nil
		defaultsInitError = err
		return nil, nil, err
	}
	defaultCache = sc
	defaultsInitError = nil
	return defaultContainer, defaultCache, nil
}

// DefaultContainer returns the process-wide default DI container,
// lazily initializing it with zero-value DefaultsConfig if InitDefaults
// was never called.
func DefaultContainer() *di.Container {
	c, _ := ensureDefaults()
	return c
}

// DefaultCache returns the process-wide default smart cache, lazily
// initializing it with zero-value DefaultsConfig if InitDefaults was
// never called. Panics if that lazy initialization fails; with a
// zero-value cache.Config (memory-only, no backend) cache.New does not
// fail.
func DefaultCache() *cache.SmartCache {
	_, sc := ensureDefaults()
	return sc
}

func ensureDefaults() (*di.Container, *cache.SmartCache) {
	defaultsMu.Lock()
	if defaultContainer != nil && defaultCache != nil {
		c, sc := defaultContainer, defaultCache
		defaultsMu.Unlock()
		return c, sc
	}
	defaultsMu.Unlock()

	c, sc, err := InitDefaults(DefaultsConfig{})
	if err != nil {
		panic("catzilla: lazy default initialization failed: " + err.Error())
	}
	return c, sc
}

// ResetDefaults closes the process-wide default container (running every
// singleton's Cleanup) and clears both defaults, so the next
// DefaultContainer/DefaultCache/InitDefaults call starts fresh. Intended
// for use between tests.
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if defaultContainer != nil {
		defaultContainer.Close()
	}
	defaultContainer = nil
	defaultCache = nil
	defaultsInitError = nil
}
