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

package executor

import (
	"errors"
	"fmt"
)

// ErrInvalidHandler is returned by the classifier for a handler it cannot
// classify at all (a nil func value), a registration-time failure.
var ErrInvalidHandler = errors.New("executor: invalid handler")

// ErrHandlerTimeout is the sentinel HandlerTimeoutError wraps: the
// sync-timeout (blocking) or async-timeout (suspending) elapsed before
// the handler returned.
var ErrHandlerTimeout = errors.New("executor: handler timeout")

// ErrHandlerCrashed is the sentinel HandlerCrashedError wraps: the
// handler panicked.
var ErrHandlerCrashed = errors.New("executor: handler crashed")

// HandlerTimeoutError names which dispatch kind timed out. It does not
// record the timeout duration.
type HandlerTimeoutError struct {
	Kind Kind
}

func (e *HandlerTimeoutError) Error() string {
	return fmt.Sprintf("executor: %s handler timed out", e.Kind)
}

func (e *HandlerTimeoutError) Unwrap() error { return ErrHandlerTimeout }

// HandlerCrashedError wraps the recovered panic value.
type HandlerCrashedError struct {
	Recovered any
}

func (e *HandlerCrashedError) Error() string {
	return fmt.Sprintf("executor: handler panicked: %v", e.Recovered)
}

func (e *HandlerCrashedError) Unwrap() error { return ErrHandlerCrashed }
