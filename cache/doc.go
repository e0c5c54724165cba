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

// Package cache implements a multi-tier smart cache: an always-present
// in-process memory tier (LRU with byte and item caps, optional brotli
// compression), an optional remote key-value tier, and an optional disk
// tier. Reads check memory, then remote, then disk; a hit in a lower tier
// is promoted into every higher tier. Concurrent builds for the same key
// are coalesced with golang.org/x/sync/singleflight so at most one caller
// computes a value while the rest wait for its result.
//
// Cache failures never fail the request path: a remote or disk error
// degrades a get to a miss and a set to a local-only success, counted in
// per-tier statistics and reported (non-fatally) through HealthCheck.
package cache
