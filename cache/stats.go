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

import "sync/atomic"

// tierCounters is the lock-free counter set the remote and disk tiers
// maintain. The memory tier keeps its counters under its own LRU mutex
// instead, since every touch of them already holds it.
type tierCounters struct {
	hits     atomic.Int64
	misses   atomic.Int64
	sets     atomic.Int64
	deletes  atomic.Int64
	failures atomic.Int64
}

func (c *tierCounters) snapshot(name string) TierStats {
	return TierStats{
		TierName: name,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Sets:     c.sets.Load(),
		Deletes:  c.deletes.Load(),
		Failures: c.failures.Load(),
	}
}
