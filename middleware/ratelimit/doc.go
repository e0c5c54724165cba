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

// Package ratelimit provides token-bucket rate-limiting middleware for
// catzilla routes.
//
// Requests are limited per client IP by default, or per any key derived
// from the request via WithKeyFunc (an authenticated user id, an API key,
// a tenant). Each key gets its own token bucket: WithRequestsPerSecond
// sets the sustained refill rate and WithBurst the bucket capacity, so a
// key may briefly exceed the sustained rate by up to the burst size.
//
//	r.GET("/search", handler, router.WithMiddleware(ratelimit.New(
//	    ratelimit.WithRequestsPerSecond(100),
//	    ratelimit.WithBurst(20),
//	)))
//
// Every rate-limited response carries X-RateLimit-Limit,
// X-RateLimit-Remaining, and X-RateLimit-Reset; requests on a skip path or
// whose key function returns "" pass through without them. A rejected request additionally gets retry-after
// with the seconds until a token next becomes available, and a 429 body
// in the same structured shape every other catzilla failure uses; both
// are replaceable via WithOnLimitExceeded.
package ratelimit
