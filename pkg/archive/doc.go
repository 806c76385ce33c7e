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

// Package archive persists the telemetry archive directory: immutable
// timestamp-named snapshot files, the bounded-retention position index, the
// privacy-safe snapshot index, and the overwritten latest artifact.
//
// Snapshot filenames encode the UTC cycle timestamp with fixed-width fields
// so that lexicographic order equals chronological order. Within a cycle the
// snapshot file is always written before its index entries, and a malformed
// or missing index file is treated as empty so the archive self-heals.
package archive
