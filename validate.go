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

package catzilla

import (
	"context"

	"rivaas.dev/validation"

	"github.com/rezwanahmedsami/catzilla-sub000/catzerr"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
)

// Validate runs rivaas.dev/validation's struct-tag/JSON-Schema/interface
// validation over v, translating a failure into a catzerr.Error of kind
// Validation so it renders through the same response path as any other
// handler-boundary failure.
func Validate(ctx context.Context, v any, opts ...validation.Option) error {
	if err := validation.Validate(ctx, v, opts...); err != nil {
		return catzerr.Wrap(catzerr.Validation, err, "")
	}
	return nil
}

// ValidatedFactory wraps a di.Factory so that, once built, an instance
// implementing validation.ValidatorInterface is checked before it is handed back
// to the resolver. A failure surfaces as the same kind of error any other
// factory failure does, since the container's resolution path doesn't
// distinguish a constructor's own error from a post-construction
// validation failure.
func ValidatedFactory(factory di.Factory) di.Factory {
	return func(ctx *di.DIContext) (any, error) {
		v, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		if vv, ok := v.(validation.ValidatorInterface); ok {
			if err := vv.Validate(); err != nil {
				return nil, catzerr.Wrap(catzerr.Validation, err, "")
			}
		}
		return v, nil
	}
}
