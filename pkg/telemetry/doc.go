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

// Package telemetry models the vessel telemetry tree returned by a
// SignalK-style server and the pure transformations the archival pipeline
// applies to it.
//
// # Value model
//
// A telemetry blob is an arbitrary JSON tree. Rather than duck-typing
// map[string]any access throughout the pipeline, the tree is decoded into a
// tagged-variant Value (Null | Number | String | Bool | Object | Array) and
// walked with explicit recursion. Leaf readings follow the SignalK node
// shape:
//
//	{"value": 2.5, "timestamp": "2026-02-01T12:30:45Z", "$source": "...", "meta": {...}}
//
// where "value" may itself be an object of numeric fields, e.g. a position:
//
//	{"value": {"latitude": 37.78, "longitude": -122.38}, ...}
//
// # Transformations
//
//   - Collect flattens a tree into {path, value} pairs for snapshot payloads,
//     keeping logically atomic multi-field readings (like position) together.
//   - FilterStale strips expired leaf readings by age while preserving
//     sibling metadata.
//   - ExtractFix pulls the current geographic fix from the navigation
//     subtree; RedactPosition removes it in place when the privacy geofence
//     requires it.
//
// All transformations are pure with respect to process state; FilterStale
// and RedactPosition mutate the tree they are given, which is always the
// cycle-local blob.
package telemetry
