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

package responsecache

import (
	"strings"
	"time"
)

// Rule overrides Config's defaults for requests whose path matches a glob
// pattern.
type Rule struct {
	TTL         time.Duration
	Methods     []string
	StatusCodes []int
	VaryHeaders []string
}

// Config configures the response-cache middleware.
type Config struct {
	DefaultTTL         time.Duration
	CacheMethods       []string // default {GET, HEAD}
	CacheStatusCodes   []int    // default {200, 301, 302, 404}
	IgnoreQueryParams  []string
	CacheHeaders       []string // default {accept, accept-encoding, accept-language}
	CacheVaryHeaders   []string // extra headers always folded into the key, independent of a response's own Vary
	CachePrivate       bool
	CacheAuthenticated bool
	ExcludePaths       []string
	IncludePaths       []string
	Rules              map[string]Rule // path glob ("*" suffix supported) -> override
}

var (
	defaultCacheMethods     = []string{"GET", "HEAD"}
	defaultCacheStatusCodes = []int{200, 301, 302, 404}
	defaultCacheHeaders     = []string{"accept", "accept-encoding", "accept-language"}
)

// effective resolves the effective settings for path, merging any matching
// Rule over Config's own defaults. Only the fields a Rule sets override;
// zero-valued Rule fields fall back to Config's own value.
func (c Config) effective(path string) (ttl time.Duration, methods []string, statusCodes []int, vary []string) {
	ttl = c.DefaultTTL
	methods = orDefault(c.CacheMethods, defaultCacheMethods)
	statusCodes = orDefaultInts(c.CacheStatusCodes, defaultCacheStatusCodes)
	vary = c.CacheVaryHeaders

	var best string
	var bestRule Rule
	matched := false
	for glob, rule := range c.Rules {
		if !matchGlob(glob, path) {
			continue
		}
		if !matched || len(glob) > len(best) {
			best, bestRule, matched = glob, rule, true
		}
	}
	if !matched {
		return
	}
	if bestRule.TTL > 0 {
		ttl = bestRule.TTL
	}
	if len(bestRule.Methods) > 0 {
		methods = bestRule.Methods
	}
	if len(bestRule.StatusCodes) > 0 {
		statusCodes = bestRule.StatusCodes
	}
	if len(bestRule.VaryHeaders) > 0 {
		vary = bestRule.VaryHeaders
	}
	return
}

func orDefault(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}

func orDefaultInts(v, def []int) []int {
	if len(v) > 0 {
		return v
	}
	return def
}

// matchGlob matches pattern against path, supporting only a trailing "*"
// wildcard; any other pattern is an exact match.
func matchGlob(pattern, path string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == path
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// matchesAnyGlob reports whether path matches any pattern in patterns.
func matchesAnyGlob(patterns []string, path string) bool {
	for _, p := range patterns {
		if matchGlob(p, path) {
			return true
		}
	}
	return false
}
