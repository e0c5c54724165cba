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

package cache

import (
	"errors"
	"fmt"
)

// ErrUnserializableValue is returned by Set when v is not one of the
// supported structural types (string, []byte, integer, floating-point,
// boolean, []any of supported, map[string]any of supported, nested to an
// implementation-defined depth).
var ErrUnserializableValue = errors.New("cache: unserializable value")

// ErrTierUnavailable marks a non-fatal failure in the remote or disk tier.
// Get and Set never return it: tier failures are counted in stats and
// reflected in HealthCheck's booleans. It is the sentinel that
// TierUnavailableError unwraps to.
var ErrTierUnavailable = errors.New("cache: tier unavailable")

// UnserializableValueError names the offending key/type pair.
type UnserializableValueError struct {
	Key  string
	Type string
}

func (e *UnserializableValueError) Error() string {
	return fmt.Sprintf("cache: value for key %q has unserializable type %s", e.Key, e.Type)
}

func (e *UnserializableValueError) Unwrap() error { return ErrUnserializableValue }

// TierUnavailableError names which tier failed and carries the underlying
// cause in Err; it unwraps to ErrTierUnavailable.
type TierUnavailableError struct {
	Tier string
	Err  error
}

func (e *TierUnavailableError) Error() string {
	return fmt.Sprintf("cache: %s tier unavailable: %v", e.Tier, e.Err)
}

func (e *TierUnavailableError) Unwrap() error { return ErrTierUnavailable }
