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

// Package geo implements the privacy geofence used to decide whether a
// vessel position may be archived.
//
// A privacy exclusion zone is a circle on the earth's surface. A position is
// private when its great-circle distance to any zone center is less than or
// equal to the zone radius. The boundary is inclusive: a fix exactly at the
// radius is treated as private.
//
// Zones are immutable configuration; evaluation is a pure function with no
// side effects and runs in O(zones).
package geo
