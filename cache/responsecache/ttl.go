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
	"net/http"
	"strconv"
	"strings"
	"time"
)

// deriveTTL prefers Cache-Control's max-age directive, falls back to
// Expires (converted to a remaining duration), then to defaultTTL.
func deriveTTL(h http.Header, now time.Time, defaultTTL time.Duration) time.Duration {
	if ttl, ok := maxAgeOf(h.Get("Cache-Control")); ok {
		return ttl
	}
	if expires := h.Get("Expires"); expires != "" {
		if t, err := http.ParseTime(expires); err == nil {
			if remaining := t.Sub(now); remaining > 0 {
				return remaining
			}
			return 0
		}
	}
	return defaultTTL
}

func maxAgeOf(cacheControl string) (time.Duration, bool) {
	if cacheControl == "" {
		return 0, false
	}
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		name, value, found := strings.Cut(directive, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(name), "max-age") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		return time.Duration(seconds) * time.Second, true
	}
	return 0, false
}

// hasDirective reports whether cacheControl contains directive
// (case-insensitively, ignoring any "=value" suffix).
func hasDirective(cacheControl, directive string) bool {
	for _, d := range strings.Split(cacheControl, ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(d), "=")
		if strings.EqualFold(strings.TrimSpace(name), directive) {
			return true
		}
	}
	return false
}
