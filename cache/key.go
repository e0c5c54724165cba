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
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// KeyOptions controls which request facets feed GenerateKey's
// fingerprint.
type KeyOptions struct {
	IgnoredQueryParams []string
	IncludedHeaders    []string // header names are matched case-insensitively
}

// GenerateKey computes a stable cache-key fingerprint from method, path,
// query string, and a header lookup, the way a reverse-proxy cache derives
// a key: a SHA-256 digest over the uppercased method, the exact path, the
// canonicalized query (sorted by key, duplicate values sorted, configured
// params removed), and an inclusion-listed subset of headers
// (lowercase-normalized names, original values), each component
// length-prefixed so no two distinct inputs produce the same byte
// sequence.
func GenerateKey(method, path, rawQuery string, headers map[string][]string, opts KeyOptions) string {
	h := sha256.New()
	writeComponent(h, strings.ToUpper(method))
	writeComponent(h, path)
	writeComponent(h, canonicalQuery(rawQuery, opts.IgnoredQueryParams))
	writeComponent(h, canonicalHeaders(headers, opts.IncludedHeaders))
	return hex.EncodeToString(h.Sum(nil))
}

// writeComponent feeds one key component into h, length-prefixed so that
// e.g. ("ab", "c") and ("a", "bc") never collide.
func writeComponent(h interface{ Write([]byte) (int, error) }, s string) {
	_, _ = h.Write([]byte{byte(len(s) >> 24), byte(len(s) >> 16), byte(len(s) >> 8), byte(len(s))})
	_, _ = h.Write([]byte(s))
}

// canonicalQuery sorts query parameters by key, sorts duplicate values
// within a key, drops any key in ignored, and re-encodes deterministically.
func canonicalQuery(rawQuery string, ignored []string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ""
	}
	ignoredSet := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		ignoredSet[name] = true
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if ignoredSet[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		vals := append([]string(nil), values[k]...)
		sort.Strings(vals)
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(strings.Join(vals, ",")))
	}
	return sb.String()
}

// canonicalHeaders renders the inclusion-listed headers as
// "lower-name:value" pairs sorted by name, skipping headers absent from
// the request. A name listed more than once is rendered once.
func canonicalHeaders(headers map[string][]string, included []string) string {
	lookup := make(map[string][]string, len(headers))
	for name, vals := range headers {
		lookup[strings.ToLower(name)] = vals
	}

	names := make([]string, 0, len(included))
	seen := make(map[string]bool, len(included))
	for _, name := range included {
		name = strings.ToLower(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		vals, ok := lookup[name]
		if !ok {
			continue
		}
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(strings.Join(vals, ","))
	}
	return sb.String()
}
