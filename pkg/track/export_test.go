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
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidevault/tidevault/pkg/archive"
	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

// writeSnapshot persists a minimal snapshot with an optional position.
func writeSnapshot(t *testing.T, dir string, ts time.Time, withPosition bool, lat, lon float64) {
	t.Helper()

	blobJSON := `{"environment": {"depth": {"value": 4.2}}}`
	if withPosition {
		blobJSON = fmt.Sprintf(`{
			"navigation": {
				"position": {
					"value": {"latitude": %f, "longitude": %f},
					"timestamp": %q
				},
				"speedOverGround": {"value": 2.5}
			}
		}`, lat, lon, ts.UTC().Format("2006-01-02T15:04:05.000000Z"))
	}

	blob, err := telemetry.Parse([]byte(blobJSON))
	require.NoError(t, err)

	var fix *telemetry.Fix
	if f, ok := telemetry.ExtractFix(blob, ts); ok {
		fix = &f
	}

	w := archive.NewWriter(dir, []string{"navigation", "environment"})
	_, _, err = w.Write(blob, fix, false, ts)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)
	writeSnapshot(t, dir, trackStart.Add(time.Minute), true, 37.81, -122.41)
	writeSnapshot(t, dir, trackStart.Add(2*time.Minute), false, 0, 0)

	// Non-snapshot artifacts in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signalk_latest.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positions_index.json"), []byte("{}"), 0o644))

	points, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.True(t, points[0].Time.Equal(trackStart))
	assert.InDelta(t, 37.8, points[0].Latitude, 1e-9)
	assert.InDelta(t, -122.4, points[0].Longitude, 1e-9)
	require.NotNil(t, points[0].SpeedOverGround)
	assert.InDelta(t, 2.5, *points[0].SpeedOverGround, 1e-9)
	assert.True(t, points[1].Time.After(points[0].Time))
}

func TestLoadSkipsMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	name := archive.SnapshotFilename(trackStart)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{broken"), 0o644))
	writeSnapshot(t, dir, trackStart.Add(time.Minute), true, 37.81, -122.41)

	// One unreadable file never loses the rest of the track.
	points, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 37.81, points[0].Latitude, 1e-9)
}

func TestExportGPX(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)
	writeSnapshot(t, dir, trackStart.Add(time.Minute), true, 37.81, -122.41)

	var buf bytes.Buffer
	err := Export(context.Background(), &buf, Options{Dir: dir, Format: FormatGPX, Name: "morning sail"})
	require.NoError(t, err)

	var doc gpxDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "1.1", doc.Version)
	assert.Equal(t, "morning sail", doc.Track.Name)
	require.Len(t, doc.Track.Segments, 1)
	require.Len(t, doc.Track.Segments[0].Points, 2)
	assert.InDelta(t, 37.8, doc.Track.Segments[0].Points[0].Lat, 1e-9)
	assert.Equal(t, "2026-02-01T12:00:00Z", doc.Track.Segments[0].Points[0].Time)
}

func TestExportLatestSequenceOnly(t *testing.T) {
	dir := t.TempDir()
	// Two legs separated by a two-hour gap.
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)
	writeSnapshot(t, dir, trackStart.Add(time.Minute), true, 37.81, -122.41)
	writeSnapshot(t, dir, trackStart.Add(2*time.Hour), true, 37.9, -122.5)

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), &buf, Options{Dir: dir, Format: FormatGPX}))

	var doc gpxDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Track.Segments, 1)
	assert.Len(t, doc.Track.Segments[0].Points, 1)

	// With All set, both legs come through as separate segments.
	buf.Reset()
	require.NoError(t, Export(context.Background(), &buf, Options{Dir: dir, Format: FormatGPX, All: true}))
	doc = gpxDocument{}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Track.Segments, 2)
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), &buf, Options{Dir: dir, Format: FormatCSV}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "2026-02-01T12:00:00Z", rows[1][0])
	assert.Equal(t, "37.8", rows[1][1])
	assert.Equal(t, "2.5", rows[1][3])
}

func TestExportTSV(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)

	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), &buf, Options{Dir: dir, Format: FormatTSV}))

	r := csv.NewReader(&buf)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportClampAndShift(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, trackStart, true, 37.8, -122.4)
	writeSnapshot(t, dir, trackStart.Add(time.Minute), true, 37.81, -122.41)

	var buf bytes.Buffer
	err := Export(context.Background(), &buf, Options{
		Dir:    dir,
		Format: FormatCSV,
		Shift:  time.Hour,
		Start:  trackStart.Add(time.Hour + 30*time.Second),
	})
	require.NoError(t, err)

	rows, readErr := csv.NewReader(&buf).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-02-01T13:01:00Z", rows[1][0])
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Export(context.Background(), &buf, Options{Dir: t.TempDir(), Format: "kml"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfig, errors.CodeOf(err))
}
