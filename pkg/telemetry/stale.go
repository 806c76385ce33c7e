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

import (
	"strings"
	"time"
)

// Timestamp layouts accepted from telemetry nodes, tried in order. SignalK
// servers emit RFC 3339 with a Z suffix; some sources use a numeric offset
// without the colon.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
}

// ParseTimestamp parses an ISO-8601 timestamp as found in telemetry nodes,
// normalizing to UTC. Returns false if the string matches no known layout.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FilterStale prunes expired leaf readings from the named top-level sections
// of a telemetry tree, in place, and returns the tree.
//
// A node is expired when it carries a parsable timestamp older than maxAge
// relative to now. Expiry strips only the node's "value" and "timestamp"
// members; sibling metadata survives, so consumers can still show a
// last-known-good shell. Nodes with missing or unparsable timestamps are
// conservatively kept. After stripping, object nodes that became empty are
// dropped, as are arrays whose every element was pruned. Sections not named
// in sections pass through untouched.
//
// A maxAge of zero or below disables filtering entirely.
func FilterStale(root *Value, maxAge time.Duration, sections []string, now time.Time) *Value {
	if maxAge <= 0 || root.Kind() != KindObject {
		return root
	}

	for _, section := range sections {
		child := root.Get(section)
		if child == nil {
			continue
		}
		if !filterNode(child, maxAge, now) {
			root.Delete(section)
		}
	}
	return root
}

// filterNode prunes one subtree and reports whether anything remains worth
// keeping.
func filterNode(node *Value, maxAge time.Duration, now time.Time) bool {
	switch node.Kind() {
	case KindObject:
		if ts, ok := node.Get("timestamp").AsString(); ok {
			if t, parsed := ParseTimestamp(ts); parsed && now.Sub(t) > maxAge {
				node.Delete("value")
				node.Delete("timestamp")
			}
		}
		for _, key := range node.Keys() {
			if !filterNode(node.Get(key), maxAge, now) {
				node.Delete(key)
			}
		}
		return node.Len() > 0
	case KindArray:
		kept := make([]*Value, 0, node.Len())
		for _, item := range node.Items() {
			if filterNode(item, maxAge, now) {
				kept = append(kept, item)
			}
		}
		node.SetItems(kept)
		return len(kept) > 0
	default:
		// Scalars carry no age of their own.
		return true
	}
}
