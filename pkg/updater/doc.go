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

// Package updater drives one archival cycle: sync the working copy, fetch
// telemetry, evaluate the geofence and redact, filter stale readings, write
// the latest artifact and the snapshot, maintain both indices, then commit
// and push.
//
// The pipeline is strictly sequential within a cycle and fail-fast: any
// error aborts the current cycle and surfaces to the process boundary, so a
// half-written archive never gets published. In looped mode the loop is
// paced with a rate limiter so a slow cycle does not drift the schedule.
package updater
