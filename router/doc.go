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

// Package router implements a radix-trie HTTP router with static/dynamic
// segment separation, method-aware 404/405 distinction, and route-group
// composition with prefix inheritance.
//
// Routes are registered with [Router.AddRoute] (or the verb-named
// convenience methods GET/POST/...). Matching is performed with
// [Router.Match], which returns one of three outcomes: a matched route with
// its bound path parameters, a method-not-allowed outcome carrying the full
// set of verbs registered at that path, or a not-found outcome.
//
// Route groups ([RouterGroup]) compose with prefix inheritance; including one
// group into another ([RouterGroup.IncludeGroup]) flattens the included
// group's routes with the full prefix chain preserved, never just the
// outermost prefix.
package router
