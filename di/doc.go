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

// Package di implements a scoped dependency-injection container.
//
// Services are registered with [Container.Register] under a name, a
// factory, a [Scope], and an explicit dependency list. [Container.Resolve]
// walks the declared dependency graph inside a [DIContext] obtained from
// [Container.CreateContext], detecting resolution cycles and caching
// instances according to their scope. A [Container] may have a parent;
// resolution shadows by name, walking child before parent, and singletons
// materialized in an ancestor are shared by every descendant.
//
// A [ScopeManager] holds the process-wide registry of live scope frames
// (request, session, thread) that the container consults when resolving a
// scoped service, with cleanup callbacks run in LIFO order on every exit
// path.
package di
