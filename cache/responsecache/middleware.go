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
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rezwanahmedsami/catzilla-sub000/cache"
)

// Logger is the narrow logging surface Middleware needs; rivaas.dev/logging's
// Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Middleware caches whole HTTP responses keyed by a request fingerprint.
// Build one with New and wrap your top-level handler with Wrap.
type Middleware struct {
	cfg    Config
	cache  *cache.SmartCache
	logger Logger
	now    func() time.Time

	varyMu     sync.RWMutex
	varyByPath map[string][]string // path -> extra header names to fold into the key, learned from prior responses' Vary

	group singleflight.Group // coalesces concurrent misses per fingerprint
}

// Option configures a Middleware at construction time.
type Option func(*Middleware)

// WithLogger sets the logger used for cache decisions.
func WithLogger(l Logger) Option {
	return func(m *Middleware) { m.logger = l }
}

// New creates a Middleware backed by sc.
func New(cfg Config, sc *cache.SmartCache, opts ...Option) *Middleware {
	m := &Middleware{
		cfg:        cfg,
		cache:      sc,
		logger:     noopLogger{},
		now:        time.Now,
		varyByPath: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Wrap returns an http.Handler that serves cached responses for eligible
// requests and stores eligible responses from next.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ttl, methods, statusCodes, vary := m.cfg.effective(req.URL.Path)

		if !m.requestEligible(req, methods) {
			next.ServeHTTP(w, req)
			return
		}

		includedHeaders := append(append([]string(nil), orDefault(m.cfg.CacheHeaders, defaultCacheHeaders)...), vary...)
		includedHeaders = append(includedHeaders, m.varyHeadersFor(req.URL.Path)...)

		key := m.key(req, includedHeaders)

		if env, ok := m.lookup(req.Context(), key); ok {
			m.serveHit(w, env)
			return
		}

		// Concurrent misses for the same fingerprint coalesce behind one
		// leader (the same wait-for-leader discipline the smart cache's
		// GetOrBuild applies): the leader runs the handler, followers wait
		// and reuse its stored envelope. A non-storable leader response
		// can't be shared, so each follower falls back to running the
		// handler itself.
		var mine *missOutcome
		v, _, _ := m.group.Do(key, func() (any, error) {
			mine = m.runAndMaybeStore(req, next, key, ttl, statusCodes)
			return mine, nil
		})
		out := v.(*missOutcome)

		switch {
		case out == mine:
			out.rec.flush(w)
		case out.storable:
			m.serveHit(w, out.env)
		default:
			next.ServeHTTP(w, req)
		}
	})
}

// missOutcome is what the coalescing leader produced: its buffered
// response (flushed only to the leader's own client) and, when storable,
// the envelope followers are served.
type missOutcome struct {
	rec      *recorder
	env      Envelope
	storable bool
}

// runAndMaybeStore runs the handler into a recorder and stores the
// response if it passes the storage-side eligibility rules, stamping the
// recorder with the MISS headers either way a stored response calls for.
func (m *Middleware) runAndMaybeStore(req *http.Request, next http.Handler, key string, ttl time.Duration, statusCodes []int) *missOutcome {
	rec := newRecorder()
	next.ServeHTTP(rec, req)

	out := &missOutcome{rec: rec}
	if m.responseStorable(rec.status, rec.header, statusCodes) {
		entryTTL := deriveTTL(rec.header, m.now(), ttl)
		out.env = Envelope{
			StatusCode: rec.status,
			Headers:    rec.header.Clone(),
			Body:       append([]byte(nil), rec.body.Bytes()...),
			MediaType:  rec.header.Get("Content-Type"),
			CachedAt:   m.now(),
		}
		out.storable = true
		m.rememberVary(req.URL.Path, rec.header.Values("Vary"))
		m.store(req.Context(), key, out.env, entryTTL)
		rec.header.Set("x-cache", "MISS")
		rec.header.Set("x-cache-ttl", fmt.Sprintf("%d", int(entryTTL.Seconds())))
	}
	return out
}

// requestEligible applies the request-side eligibility rules: method
// allow-listed, path included/not excluded, no Authorization header
// unless configured, no no-cache/no-store request directive.
func (m *Middleware) requestEligible(req *http.Request, methods []string) bool {
	if !containsFold(methods, req.Method) {
		return false
	}
	if len(m.cfg.IncludePaths) > 0 && !matchesAnyGlob(m.cfg.IncludePaths, req.URL.Path) {
		return false
	}
	if matchesAnyGlob(m.cfg.ExcludePaths, req.URL.Path) {
		return false
	}
	if req.Header.Get("Authorization") != "" && !m.cfg.CacheAuthenticated {
		return false
	}
	cc := req.Header.Get("Cache-Control")
	if hasDirective(cc, "no-cache") || hasDirective(cc, "no-store") {
		return false
	}
	return true
}

// responseStorable applies the storage-side eligibility rules: status
// allow-listed, no no-cache/no-store, no private unless configured, Vary
// isn't "*".
func (m *Middleware) responseStorable(status int, headers http.Header, statusCodes []int) bool {
	if !containsInt(statusCodes, status) {
		return false
	}
	cc := headers.Get("Cache-Control")
	if hasDirective(cc, "no-cache") || hasDirective(cc, "no-store") {
		return false
	}
	if !m.cfg.CachePrivate && hasDirective(cc, "private") {
		return false
	}
	for _, v := range headers.Values("Vary") {
		if strings.TrimSpace(v) == "*" {
			return false
		}
	}
	return true
}

func (m *Middleware) key(req *http.Request, includedHeaders []string) string {
	return cache.GenerateKey(req.Method, req.URL.Path, req.URL.RawQuery, req.Header, cache.KeyOptions{
		IgnoredQueryParams: m.cfg.IgnoreQueryParams,
		IncludedHeaders:    includedHeaders,
	})
}

func (m *Middleware) lookup(ctx context.Context, key string) (Envelope, bool) {
	v, ok := m.cache.Get(ctx, key)
	if !ok {
		return Envelope{}, false
	}
	return envelopeFromCacheValue(v)
}

func (m *Middleware) store(ctx context.Context, key string, env Envelope, ttl time.Duration) {
	if err := m.cache.Set(ctx, key, env.toCacheValue(), ttl); err != nil {
		m.logger.Debug("responsecache: store failed", "key", key, "error", err)
	}
}

func (m *Middleware) serveHit(w http.ResponseWriter, env Envelope) {
	dst := w.Header()
	for name, values := range env.Headers {
		for _, v := range values {
			dst.Add(name, v)
		}
	}
	age := int(m.now().Sub(env.CachedAt).Seconds())
	if age < 0 {
		age = 0
	}
	dst.Set("x-cache", "HIT")
	dst.Set("x-cache-age", fmt.Sprintf("%d", age))
	w.WriteHeader(env.StatusCode)
	_, _ = w.Write(env.Body)
}

func (m *Middleware) varyHeadersFor(path string) []string {
	m.varyMu.RLock()
	defer m.varyMu.RUnlock()
	return m.varyByPath[path]
}

// rememberVary folds a response's own Vary header names into the set
// consulted for future key generation at this path, so two requests
// differing only in a varied header stop sharing a cache entry.
func (m *Middleware) rememberVary(path string, varyValues []string) {
	if len(varyValues) == 0 {
		return
	}
	var names []string
	for _, v := range varyValues {
		for _, name := range strings.Split(v, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" && name != "*" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return
	}

	m.varyMu.Lock()
	defer m.varyMu.Unlock()
	existing := m.varyByPath[path]
	for _, name := range names {
		if !containsFold(existing, name) {
			existing = append(existing, name)
		}
	}
	m.varyByPath[path] = existing
}
