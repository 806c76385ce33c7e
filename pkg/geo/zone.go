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

package geo

import "math"

// earthRadiusMetres is the mean earth radius used for haversine distances.
const earthRadiusMetres = 6371000.0

// Zone is a circular privacy exclusion zone. Positions inside it (boundary
// inclusive) are never persisted to any published artifact.
type Zone struct {
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	Latitude     float64 `json:"latitude" yaml:"latitude"`
	Longitude    float64 `json:"longitude" yaml:"longitude"`
	RadiusMetres float64 `json:"radius_metres" yaml:"radius_metres"`
}

// Contains reports whether the given position falls within the zone.
func (z Zone) Contains(lat, lon float64) bool {
	return Distance(z.Latitude, z.Longitude, lat, lon) <= z.RadiusMetres
}

// Zones is the set of configured privacy exclusion zones.
type Zones []Zone

// Private reports whether the given position falls within any zone.
func (zs Zones) Private(lat, lon float64) bool {
	for _, z := range zs {
		if z.Contains(lat, lon) {
			return true
		}
	}
	return false
}

// Distance returns the great-circle (haversine) distance in metres between
// two positions given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMetres * c
}
