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

// Package track converts archived snapshots into a geographic track for
// chart plotters and log books: GPX 1.1 or CSV/TSV output, split into
// sequences wherever the gap between fixes exceeds a threshold.
//
// Private positions never reach the archive in the first place, so export
// carries no privacy logic of its own.
package track
