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
	"encoding/json"
	"net/http"

	rivaaserrors "rivaas.dev/errors"
)

// Responder renders any error into a structured JSON body
// ({error, detail?, field?, code?}). The HTTP status and Content-Type come
// from rivaas.dev/errors.Simple's Format, which reads the ErrorType/
// ErrorDetails/ErrorCode trio catzerr.Error implements; the body itself is
// assembled and JSON-encoded by Write.
type Responder struct {
	formatter *rivaaserrors.Simple
}

// NewResponder creates a Responder with the default rivaas.dev/errors.Simple
// formatter.
func NewResponder() *Responder {
	return &Responder{formatter: rivaaserrors.NewSimple()}
}

// Write formats err and writes it to w as the handler-boundary response:
// status derived from the error kind (Client* -> 4xx,
// Dependency/Handler/System -> 5xx), with detail/field/code included when
// present. Plain (non-*Error) errors format as a generic 500.
func (r *Responder) Write(w http.ResponseWriter, req *http.Request, err error) {
	resp := r.formatter.Format(req, err)

	body := map[string]any{"error": errorField(err)}
	if ce, ok := unwrapCatzerr(err); ok {
		if ce.Detail != "" {
			body["detail"] = ce.Detail
		}
		if ce.Field != "" {
			body["field"] = ce.Field
		}
		body["code"] = ce.Code()
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorField reports the taxonomy kind string for the §7 "error" member,
// falling back to the raw error message for errors not wrapped in *Error.
func errorField(err error) string {
	if ce, ok := unwrapCatzerr(err); ok {
		return string(ce.Kind)
	}
	return err.Error()
}

func unwrapCatzerr(err error) (*Error, bool) {
	ce, ok := err.(*Error)
	return ce, ok
}
