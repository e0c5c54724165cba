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
	"errors"

	"github.com/rezwanahmedsami/catzilla-sub000/cache"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
)

// FromDI maps a di package error (ServiceNotFound, CircularDependency,
// FactoryFailed) to the Dependency kind. A
// nil or unrecognized error is wrapped as a generic Dependency error rather
// than returning nil, since callers only reach here after Resolve already
// failed.
func FromDI(err error) *Error {
	if err == nil {
		return nil
	}
	var notFound *di.ServiceNotFoundError
	var circular *di.CircularDependencyError
	var factory *di.FactoryFailedError
	switch {
	case errors.As(err, &notFound):
		return Wrap(Dependency, err, "").WithCode("service_not_found")
	case errors.As(err, &circular):
		return Wrap(Dependency, err, "").WithCode("circular_dependency")
	case errors.As(err, &factory):
		return Wrap(Dependency, err, "").WithCode("factory_failed")
	default:
		return Wrap(Dependency, err, "")
	}
}

// FromCache maps a cache package error (UnserializableValue,
// TierUnavailable) to the Cache kind. Callers
// that choose to surface a cache error directly (rather
// than silently degrading, as the cache package itself always does) use
// this to shape it consistently with the rest of the taxonomy.
func FromCache(err error) *Error {
	if err == nil {
		return nil
	}
	var unserializable *cache.UnserializableValueError
	if errors.As(err, &unserializable) {
		return Wrap(Cache, err, "").WithCode("unserializable_value")
	}
	var tierUnavailable *cache.TierUnavailableError
	if errors.As(err, &tierUnavailable) {
		return Wrap(Cache, err, "").WithCode("tier_unavailable")
	}
	return Wrap(Cache, err, "")
}
