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

package responsecache

import (
	"encoding/base64"
	"net/http"
	"time"
)

// Envelope is the stored shape of a cached response. CachedAt is set once
// at store time; x-cache/x-cache-age are injected on retrieval and are
// never part of the stored envelope itself.
type Envelope struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	MediaType  string
	CachedAt   time.Time
}

// toCacheValue converts e into the map[string]any shape the cache
// package's supported-value contract accepts (string, bool, number,
// []any, map[string]any; no raw []byte, which the cache's own JSON
// round trip does not preserve byte-for-byte as a distinct type). Body is
// therefore base64-encoded explicitly here, so responsecache owns its own
// wire shape rather than depending on cache's opaque serialization
// preserving []byte identity.
func (e Envelope) toCacheValue() map[string]any {
	headers := make(map[string]any, len(e.Headers))
	for name, values := range e.Headers {
		vals := make([]any, len(values))
		for i, v := range values {
			vals[i] = v
		}
		headers[name] = vals
	}
	return map[string]any{
		"status_code": float64(e.StatusCode),
		"headers":     headers,
		"body":        base64.StdEncoding.EncodeToString(e.Body),
		"media_type":  e.MediaType,
		"cached_at":   e.CachedAt.UTC().Format(time.RFC3339Nano),
	}
}

// envelopeFromCacheValue reconstructs an Envelope from whatever the cache
// returned for a key previously stored by toCacheValue's shape. ok is
// false if v isn't in that shape at all (a key collision with unrelated
// cache content, or a decode failure along the way).
func envelopeFromCacheValue(v any) (Envelope, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Envelope{}, false
	}

	status, ok := m["status_code"].(float64)
	if !ok {
		return Envelope{}, false
	}

	headers := make(http.Header)
	if rawHeaders, ok := m["headers"].(map[string]any); ok {
		for name, rawVals := range rawHeaders {
			vals, ok := rawVals.([]any)
			if !ok {
				continue
			}
			for _, rv := range vals {
				if s, ok := rv.(string); ok {
					headers.Add(name, s)
				}
			}
		}
	}

	bodyStr, _ := m["body"].(string)
	body, err := base64.StdEncoding.DecodeString(bodyStr)
	if err != nil {
		return Envelope{}, false
	}

	mediaType, _ := m["media_type"].(string)

	var cachedAt time.Time
	if s, ok := m["cached_at"].(string); ok {
		cachedAt, _ = time.Parse(time.RFC3339Nano, s)
	}

	return Envelope{
		StatusCode: int(status),
		Headers:    headers,
		Body:       body,
		MediaType:  mediaType,
		CachedAt:   cachedAt,
	}, true
}
