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

// Package responsecache implements HTTP response-cache middleware: it
// wraps an http.Handler, keys storage on a request fingerprint from the
// cache package's GenerateKey, derives a TTL from Cache-Control/Expires
// (falling back to a configured default), and injects the
// x-cache/x-cache-age/x-cache-ttl headers.
//
// The middleware is applied once at the server level, wrapping whatever
// http.Handler sits beneath it, typically a *router.Router.
package responsecache
