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

package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rezwanahmedsami/catzilla-sub000/catzerr"
	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

// KeyFunc derives the rate-limit key for a request. Returning "" skips
// rate limiting for that request entirely.
type KeyFunc func(c *router.Context) string

type config struct {
	requestsPerSecond float64
	burst             int
	keyFunc           KeyFunc
	skipPaths         []string
	store             TokenBucketStore
	onLimitExceeded   router.HandlerFunc
	now               func() time.Time
}

// Option configures the middleware New builds.
type Option func(*config)

// WithRequestsPerSecond sets the sustained request rate allowed per key.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *config) { c.requestsPerSecond = rps }
}

// WithBurst sets the bucket capacity: how many requests a key may issue
// back-to-back before the sustained rate applies. Defaults to
// RequestsPerSecond.
func WithBurst(burst int) Option {
	return func(c *config) { c.burst = burst }
}

// WithKeyFunc overrides the per-client-IP default key derivation.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *config) { c.keyFunc = fn }
}

// WithSkipPaths excludes exact paths from rate limiting (health checks,
// metrics scrapes).
func WithSkipPaths(paths ...string) Option {
	return func(c *config) { c.skipPaths = append(c.skipPaths, paths...) }
}

// WithStore substitutes the bucket store, e.g. a shared store across
// several middleware instances.
func WithStore(store TokenBucketStore) Option {
	return func(c *config) { c.store = store }
}

// WithOnLimitExceeded overrides the default 429 response. The retry-after
// and X-RateLimit-* headers are already set when the handler runs.
func WithOnLimitExceeded(h router.HandlerFunc) Option {
	return func(c *config) { c.onLimitExceeded = h }
}

// clientIP strips the port from RemoteAddr, falling back to the raw value
// when it isn't host:port shaped.
func clientIP(c *router.Context) string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// New builds the rate-limiting middleware. With no options it allows one
// request per second per client IP with a burst of one.
func New(opts ...Option) router.HandlerFunc {
	cfg := &config{
		requestsPerSecond: 1,
		keyFunc:           clientIP,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.burst <= 0 {
		cfg.burst = int(cfg.requestsPerSecond)
		if cfg.burst < 1 {
			cfg.burst = 1
		}
	}
	if cfg.store == nil {
		cfg.store = NewInMemoryTokenBucketStore(cfg.requestsPerSecond, cfg.burst)
	}

	responder := catzerr.NewResponder()
	limit := strconv.Itoa(cfg.burst)

	return func(c *router.Context) {
		for _, p := range cfg.skipPaths {
			if c.Request.URL.Path == p {
				c.Next()
				return
			}
		}

		key := cfg.keyFunc(c)
		if key == "" {
			c.Next()
			return
		}

		allowed, remaining, resetSeconds := cfg.store.Allow(key, cfg.now())

		h := c.Header()
		h.Set("X-RateLimit-Limit", limit)
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.Itoa(resetSeconds))

		if allowed {
			c.Next()
			return
		}

		h.Set("retry-after", strconv.Itoa(resetSeconds))
		if cfg.onLimitExceeded != nil {
			cfg.onLimitExceeded(c)
			c.Abort()
			return
		}
		err := catzerr.New(catzerr.Authorization, "rate limit exceeded").
			WithStatus(http.StatusTooManyRequests).
			WithCode("rate_limit_exceeded")
		responder.Write(c.Writer, c.Request, err)
		c.Abort()
	}
}
