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

package track

import (
	"sort"
	"time"
)

// Point is one geographic fix recovered from an archived snapshot.
type Point struct {
	Time                 time.Time
	Latitude             float64
	Longitude            float64
	SpeedOverGround      *float64
	CourseOverGroundTrue *float64

	// File is the snapshot the point came from.
	File string
}

// SortPoints orders points chronologically.
func SortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
}

// Clamp keeps only points within [start, end]. A zero bound is open.
func Clamp(points []Point, start, end time.Time) []Point {
	kept := points[:0:0]
	for _, p := range points {
		if !start.IsZero() && p.Time.Before(start) {
			continue
		}
		if !end.IsZero() && p.Time.After(end) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Shift moves every point's time by delta. Handy when the vessel's clock
// was off for part of a passage.
func Shift(points []Point, delta time.Duration) []Point {
	if delta == 0 {
		return points
	}
	shifted := make([]Point, len(points))
	for i, p := range points {
		p.Time = p.Time.Add(delta)
		shifted[i] = p
	}
	return shifted
}

// Sequences splits chronologically sorted points wherever the gap between
// consecutive fixes exceeds maxGap. Each sequence is one continuous leg.
func Sequences(points []Point, maxGap time.Duration) [][]Point {
	if len(points) == 0 {
		return nil
	}

	var out [][]Point
	current := []Point{points[0]}
	for _, p := range points[1:] {
		if p.Time.Sub(current[len(current)-1].Time) > maxGap {
			out = append(out, current)
			current = nil
		}
		current = append(current, p)
	}
	return append(out, current)
}
