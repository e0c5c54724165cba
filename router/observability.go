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

package router

import (
	"context"
	"net/http"
	"time"
)

// Recorder is the single observability lifecycle hook Router calls around
// every request: metrics, tracing, and access logging all fit behind it,
// unifying the "three pillars" behind one interface rather than three
// separate callback sets. There is no per-request exclusion token, since
// the response-cache middleware already owns path-based opt-out and a
// second mechanism for the same concern would just be redundant
// configuration surface.
type Recorder interface {
	// OnRequestStart is called when ServeHTTP begins, before the request
	// is matched against the trie. It returns the context to use for
	// the remainder of the request, enriched with a trace span if the
	// implementation starts one.
	OnRequestStart(ctx context.Context, req *http.Request) context.Context

	// OnRequestEnd is called after the handler chain (or the 404/405
	// default) has written its response. pattern is always the best
	// available label for
	// cardinality-safe metrics (the path template when matched, a fixed
	// sentinel otherwise).
	OnRequestEnd(ctx context.Context, req *http.Request, pattern string, status int, bytesWritten int, dur time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) OnRequestStart(ctx context.Context, _ *http.Request) context.Context          { return ctx }
func (noopRecorder) OnRequestEnd(context.Context, *http.Request, string, int, int, time.Duration) {}

// WithRecorder installs the observability Recorder used for every request.
// Unset, Router uses a no-op Recorder so ServeHTTP never pays for
// observability it wasn't asked to do.
func WithRecorder(rec Recorder) Option {
	return func(r *Router) { r.recorder = rec }
}
