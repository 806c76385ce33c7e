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

// Package config loads the archiver configuration (tidevault.yaml): privacy
// exclusion zones, retention windows, the snapshot path whitelist, and the
// git publish policy.
//
// The configuration is an explicit immutable object threaded into component
// constructors; nothing in the pipeline reads package-level mutable state.
// CLI flags and environment variables override file values, and a missing
// file silently yields defaults so a bare checkout works out of the box.
package config
