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
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// isSupportedValue reports whether v is one of the supported structural
// types: string, []byte, integer, floating-point, boolean,
// []any/map[string]any of supported values, nested to depth 32 (an
// implementation-defined cutoff guarding against pathological recursion).
func isSupportedValue(v any, depth int) bool {
	if depth > 32 {
		return false
	}
	switch val := v.(type) {
	case nil, string, []byte, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case []any:
		for _, item := range val {
			if !isSupportedValue(item, depth+1) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, item := range val {
			if !isSupportedValue(item, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// serialize encodes v as JSON, the cache's opaque on-the-wire
// representation. deserialize decodes into the dynamic shape JSON yields:
// strings, booleans, float64 values, nil and nested []any/map[string]any
// come back structurally equal, but every integer (and float32) comes back
// as float64 and a []byte comes back as its base64-encoded string.
func serialize(key string, v any) ([]byte, error) {
	if !isSupportedValue(v, 0) {
		return nil, &UnserializableValueError{Key: key, Type: fmt.Sprintf("%T", v)}
	}
	return json.Marshal(v)
}

func deserialize(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// compress brotli-compresses data at level.
func compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(data))
	return io.ReadAll(r)
}
