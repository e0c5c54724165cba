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

// Package executor implements the handler-type classifier and the
// blocking/suspending dispatch split.
//
// A handler registered through [Dispatcher.Wrap] is classified as
// [Blocking] (dispatched to a bounded worker pool, with the pool-wide
// sync timeout applied) or [Suspending] (run in the calling goroutine,
// with the async timeout applied); an unclassifiable handler (a nil
// func value) is [Invalid] and fails at registration time, not at request
// time. [MarkBlocking] is an explicit per-handler declaration: Go has no
// runtime distinction between blocking and suspending functions to
// introspect, so the declaration is the classification.
// The classifier caches its decision per handler identity
// (the function pointer), so repeated dispatches of the same registered
// handler never re-classify.
package executor
