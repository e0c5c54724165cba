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
	"errors"
	"fmt"
)

// Static errors for better error handling and testing.
// These are wrapped with fmt.Errorf and %w when context is needed.
var (
	// ErrInvalidMethod is what the *InvalidMethodError that AddRoute panics
	// with unwraps to, when method is not one of the fixed enumeration GET,
	// POST, PUT, PATCH, DELETE, OPTIONS, HEAD.
	ErrInvalidMethod = errors.New("router: invalid HTTP method")

	// ErrNotAGroup is not returned by this package: IncludeGroup takes a
	// *RouterGroup and has no error result.
	ErrNotAGroup = errors.New("router: value is not a *RouterGroup")

	// ErrRouteNotFound is returned by GetRoute for unknown route names.
	ErrRouteNotFound = errors.New("router: route not found")

	// ErrRouteNameTaken is returned by SetName when the name already refers
	// to a different route.
	ErrRouteNameTaken = errors.New("router: route name already registered")
)

// InvalidMethodError wraps ErrInvalidMethod with the offending method.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("router: invalid HTTP method %q", e.Method)
}

func (e *InvalidMethodError) Unwrap() error { return ErrInvalidMethod }
