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

package catzerr

import (
	"fmt"
	"net/http"
)

// Kind is one of the error taxonomy buckets. It is not a Go error type
// itself; it labels an Error's HTTP-status-deciding family.
type Kind string

const (
	// ClientRequest covers malformed requests, path-not-found,
	// method-not-allowed, unsupported media, body-too-large.
	ClientRequest Kind = "client_request"
	// Validation covers a value failing a declared constraint.
	Validation Kind = "validation"
	// Authorization covers missing/invalid credentials and rate limiting.
	Authorization Kind = "authorization"
	// Dependency covers ServiceNotFound, CircularDependency, FactoryFailed
	// from the di package.
	Dependency Kind = "dependency"
	// Handler covers HandlerTimeout and HandlerCrashed from the executor
	// package.
	Handler Kind = "handler"
	// Cache covers UnserializableValue and TierUnavailable from the cache
	// package; these never reach Error in practice since cache failures
	// never propagate to the handler, but the kind exists for callers that
	// choose to surface one deliberately.
	Cache Kind = "cache"
	// System covers resource exhaustion and I/O failure.
	System Kind = "system"
)

// defaultStatus maps each kind to its default HTTP status: client-caused
// kinds are 4xx, Dependency/Handler/System are 5xx. Validation and
// Authorization are their own 4xx families.
func (k Kind) defaultStatus() int {
	switch k {
	case ClientRequest:
		return http.StatusBadRequest
	case Validation:
		return http.StatusUnprocessableEntity
	case Authorization:
		return http.StatusUnauthorized
	case Dependency, Handler, System:
		return http.StatusInternalServerError
	case Cache:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is the concrete error type every catzilla-produced user-visible
// failure is wrapped in. It implements rivaas.dev/errors' ErrorType
// (HTTPStatus), ErrorDetails (Details), and ErrorCode (Code) interfaces so
// a plain errors.Simple (or errors.RFC9457/JSONAPI) formatter renders it
// without catzilla writing its own JSON encoder.
type Error struct {
	Kind   Kind
	Status int // overrides Kind.defaultStatus() when non-zero
	Detail string
	Field  string
	code   string
	cause  error
}

// New constructs an Error of kind with a human-readable detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs an Error of kind wrapping cause, using cause's message as
// the detail unless detail is non-empty.
func Wrap(kind Kind, cause error, detail string) *Error {
	if detail == "" && cause != nil {
		detail = cause.Error()
	}
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// WithField sets the offending field name rendered in the response body
// and returns e for chaining.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithCode sets the machine-readable error code rendered in the response
// body and returns e for chaining.
func (e *Error) WithCode(code string) *Error {
	e.code = code
	return e
}

// WithStatus overrides the default HTTP status Kind would otherwise
// resolve to, and returns e for chaining.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.defaultStatus()
}

// Details implements rivaas.dev/errors.ErrorDetails.
func (e *Error) Details() any {
	if e.Field == "" {
		return nil
	}
	return map[string]string{"field": e.Field}
}

// Code implements rivaas.dev/errors.ErrorCode.
func (e *Error) Code() string {
	if e.code != "" {
		return e.code
	}
	return string(e.Kind)
}
