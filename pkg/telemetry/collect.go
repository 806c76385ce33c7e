// Copyright (c) 2026, Tidevault Authors.  All rights reserved.
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

package telemetry

import "sort"

// PathValue is one collected reading: a dotted path and either a single
// number or an object of numeric fields (for atomic multi-field readings
// such as a position).
type PathValue struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Protocol bookkeeping keys that are part of the SignalK node envelope
// rather than further path segments. Recursion never descends into them.
var bookkeepingKeys = map[string]struct{}{
	"value":     {},
	"timestamp": {},
	"meta":      {},
	"values":    {},
	"source":    {},
	"$source":   {},
	"sentence":  {},
	"pgn":       {},
}

// Collect flattens a telemetry tree into PathValue pairs.
//
// If whitelist is non-empty, only whitelisted top-level sections are
// traversed. At any node whose "value" member is a number, one entry is
// emitted for the node's dotted path. A "value" object whose every member is
// numeric is emitted as a single compact object entry; otherwise its numeric
// members are flattened individually as path.field. Results are ordered by
// the sorted key traversal, so output is deterministic for a given tree.
func Collect(root *Value, whitelist []string) []PathValue {
	if root.Kind() != KindObject {
		return nil
	}

	allowed := make(map[string]struct{}, len(whitelist))
	for _, k := range whitelist {
		allowed[k] = struct{}{}
	}

	var out []PathValue
	for _, key := range root.Keys() {
		if len(allowed) > 0 {
			if _, ok := allowed[key]; !ok {
				continue
			}
		}
		collectNode(root.Get(key), key, &out)
	}
	return out
}

func collectNode(node *Value, path string, out *[]PathValue) {
	if node.Kind() != KindObject {
		return
	}

	if val := node.Get("value"); val != nil {
		if f, ok := val.AsFloat(); ok {
			*out = append(*out, PathValue{Path: path, Value: f})
		} else if val.Kind() == KindObject {
			if fields, ok := val.NumericFields(); ok {
				// Atomic multi-field reading, keep it together.
				*out = append(*out, PathValue{Path: path, Value: fields})
			} else {
				// Mixed object, flatten the numeric members only.
				for _, field := range val.Keys() {
					if f, ok := val.Get(field).AsFloat(); ok {
						*out = append(*out, PathValue{Path: path + "." + field, Value: f})
					}
				}
			}
		}
	}

	for _, key := range node.Keys() {
		if _, skip := bookkeepingKeys[key]; skip {
			continue
		}
		collectNode(node.Get(key), path+"."+key, out)
	}
}

// SortPathValues orders entries by path, with any exact-path duplicates kept
// in their original relative order.
func SortPathValues(values []PathValue) {
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Path < values[j].Path
	})
}
