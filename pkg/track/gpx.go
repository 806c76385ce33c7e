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
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

type gpxDocument struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Track   gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name,omitempty"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time"`
}

// WriteGPX renders the sequences as one GPX 1.1 track, one track segment
// per sequence.
func WriteGPX(w io.Writer, name string, sequences [][]Point) error {
	doc := gpxDocument{
		Version: "1.1",
		Creator: "tidevault",
		Xmlns:   "http://www.topografix.com/GPX/1/1",
		Track:   gpxTrack{Name: name},
	}
	for _, seq := range sequences {
		seg := gpxSegment{Points: make([]gpxPoint, 0, len(seq))}
		for _, p := range seq {
			seg.Points = append(seg.Points, gpxPoint{
				Lat:  p.Latitude,
				Lon:  p.Longitude,
				Time: p.Time.UTC().Format(time.RFC3339),
			})
		}
		doc.Track.Segments = append(doc.Track.Segments, seg)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write GPX header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to finish GPX: %w", err)
	}
	return nil
}
