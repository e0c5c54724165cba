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

package di

import (
	"errors"
	"fmt"
)

// Sentinel resolution errors. All are recoverable at the request
// boundary; a handler may catch them and return an error response.
var (
	ErrServiceNotFound    = errors.New("di: service not found")
	ErrCircularDependency = errors.New("di: circular dependency")
	ErrAlreadyRegistered  = errors.New("di: service already registered")
)

// ServiceNotFoundError names the service that could not be resolved in this
// container or any ancestor.
type ServiceNotFoundError struct {
	Name string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("di: service %q not found", e.Name)
}

func (e *ServiceNotFoundError) Unwrap() error { return ErrServiceNotFound }

// CircularDependencyError names the service whose resolution re-entered
// itself, and the chain that led there.
type CircularDependencyError struct {
	Name  string
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("di: circular dependency resolving %q (chain: %v)", e.Name, e.Chain)
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// FactoryFailedError wraps the error a service's factory returned.
type FactoryFailedError struct {
	Name string
	Err  error
}

func (e *FactoryFailedError) Error() string {
	return fmt.Sprintf("di: factory for %q failed: %v", e.Name, e.Err)
}

func (e *FactoryFailedError) Unwrap() error { return e.Err }

// AlreadyRegisteredError names a service registered twice in the same
// container.
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("di: service %q already registered", e.Name)
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }
