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

package router

import "sort"

// RouteInfo describes one registered route for introspection: debugging,
// documentation generation, route-table dumps. It is a snapshot; mutating
// it has no effect on the router.
type RouteInfo struct {
	Method      string
	Path        string
	ParamNames  []string
	Tags        []string
	Description string
	Metadata    map[string]any
}

// Routes returns every route currently registered, sorted by method then
// path for stable output. Computed by a direct walk of this router's
// copy-on-write trie snapshot rather than a separate bookkeeping slice;
// the trie itself is already the single source of truth here.
func (r *Router) Routes() []RouteInfo {
	var out []RouteInfo
	collectRoutes(r.loadRoot(), &out)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method == out[j].Method {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func collectRoutes(n *node, out *[]RouteInfo) {
	if n == nil {
		return
	}
	for _, rt := range n.methods {
		*out = append(*out, RouteInfo{
			Method:      rt.Method,
			Path:        rt.PathTemplate,
			ParamNames:  append([]string(nil), rt.ParamNames...),
			Tags:        append([]string(nil), rt.Tags...),
			Description: rt.Description,
			Metadata:    rt.Metadata,
		})
	}
	for _, child := range n.staticChildren {
		collectRoutes(child, out)
	}
	if n.paramChild != nil {
		collectRoutes(n.paramChild.node, out)
	}
	collectRoutes(n.wildcardChild, out)
}
