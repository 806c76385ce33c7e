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

import "time"

// Navigation subtree paths the pipeline reads.
const (
	SectionNavigation        = "navigation"
	PathPosition             = "navigation.position"
	PathSpeedOverGround      = "navigation.speedOverGround"
	PathCourseOverGroundTrue = "navigation.courseOverGroundTrue"
	keyPosition              = "position"
	keySpeedOverGrnd         = "speedOverGround"
	keyCourseOverGrnd        = "courseOverGroundTrue"
)

// Fix is one geographic position reading extracted from a telemetry blob's
// navigation subtree. SpeedOverGround and CourseOverGroundTrue are optional.
type Fix struct {
	Timestamp            time.Time
	Latitude             float64
	Longitude            float64
	SpeedOverGround      *float64
	CourseOverGroundTrue *float64
}

// ExtractFix pulls the current position from the blob's navigation subtree.
// It returns false when no numeric latitude/longitude pair is present. The
// fix timestamp prefers the position node's own timestamp; when that is
// missing or unparsable, now is used.
func ExtractFix(root *Value, now time.Time) (Fix, bool) {
	pos := root.GetPath(SectionNavigation, keyPosition)
	val := pos.Get("value")

	lat, latOK := val.Get("latitude").AsFloat()
	lon, lonOK := val.Get("longitude").AsFloat()
	if !latOK || !lonOK {
		return Fix{}, false
	}

	fix := Fix{Timestamp: now.UTC(), Latitude: lat, Longitude: lon}
	if ts, ok := pos.Get("timestamp").AsString(); ok {
		if t, parsed := ParseTimestamp(ts); parsed {
			fix.Timestamp = t
		}
	}

	nav := root.Get(SectionNavigation)
	if sog, ok := nav.GetPath(keySpeedOverGrnd, "value").AsFloat(); ok {
		fix.SpeedOverGround = &sog
	}
	if cog, ok := nav.GetPath(keyCourseOverGrnd, "value").AsFloat(); ok {
		fix.CourseOverGroundTrue = &cog
	}
	return fix, true
}

// RedactPosition removes the navigation position node from the blob in
// place. Called before any artifact is written when the fix falls inside a
// privacy exclusion zone.
func RedactPosition(root *Value) {
	root.Get(SectionNavigation).Delete(keyPosition)
}
