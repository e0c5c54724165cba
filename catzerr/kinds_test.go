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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezwanahmedsami/catzilla-sub000/cache"
	"github.com/rezwanahmedsami/catzilla-sub000/di"
)

func TestKindDefaultStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, New(ClientRequest, "bad").HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, New(Validation, "bad field").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, New(Authorization, "no token").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, New(Dependency, "x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, New(Handler, "x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, New(System, "x").HTTPStatus())
}

func TestWithStatusOverride(t *testing.T) {
	e := New(Authorization, "rate limited").WithStatus(http.StatusTooManyRequests)
	assert.Equal(t, http.StatusTooManyRequests, e.HTTPStatus())
}

func TestWithFieldAndCode(t *testing.T) {
	e := New(Validation, "must be an email").WithField("email").WithCode("validation.email")
	assert.Equal(t, "email", e.Field)
	assert.Equal(t, "validation.email", e.Code())
	assert.Equal(t, map[string]string{"field": "email"}, e.Details())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(System, cause, "")
	require.ErrorIs(t, e, cause)
	assert.Equal(t, "system: boom", e.Error())
}

func TestFromDI(t *testing.T) {
	notFound := &di.ServiceNotFoundError{Name: "db"}
	e := FromDI(notFound)
	assert.Equal(t, Dependency, e.Kind)
	assert.Equal(t, "service_not_found", e.Code())
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())

	circular := &di.CircularDependencyError{Name: "A", Chain: []string{"A", "B"}}
	assert.Equal(t, "circular_dependency", FromDI(circular).Code())

	assert.Nil(t, FromDI(nil))
}

func TestFromCache(t *testing.T) {
	unser := &cache.UnserializableValueError{Key: "k", Type: "chan int"}
	e := FromCache(unser)
	assert.Equal(t, Cache, e.Kind)
	assert.Equal(t, "unserializable_value", e.Code())

	tierErr := &cache.TierUnavailableError{Tier: "remote", Err: errors.New("timeout")}
	assert.Equal(t, "tier_unavailable", FromCache(tierErr).Code())

	assert.Nil(t, FromCache(nil))
}

func TestResponderWritesStructuredBody(t *testing.T) {
	r := NewResponder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)

	err := New(Validation, "age must be positive").WithField("age").WithCode("validation.min")
	r.Write(rec, req, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"field":"age"`)
	assert.Contains(t, rec.Body.String(), `"code":"validation.min"`)
}
