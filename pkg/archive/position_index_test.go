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

package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidevault/tidevault/pkg/telemetry"
)

const indexName = "positions_index.json"

func fixAt(ts time.Time) *telemetry.Fix {
	sog := 2.5
	cog := 1.57
	return &telemetry.Fix{
		Timestamp:            ts,
		Latitude:             37.8,
		Longitude:            -122.4,
		SpeedOverGround:      &sog,
		CourseOverGroundTrue: &cog,
	}
}

func writeSnapshotFile(t *testing.T, dir string, ts time.Time) string {
	t.Helper()
	name := SnapshotFilename(ts)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644))
	return name
}

func TestPositionIndexAppend(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, 72*time.Hour)

	file := writeSnapshotFile(t, dir, cycleTime)
	pruned, err := idx.Update(fixAt(cycleTime), false, file, cycleTime)
	require.NoError(t, err)
	assert.Zero(t, pruned)

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-02-01T12:30:15.123456Z", entries[0].Timestamp)
	assert.Equal(t, file, entries[0].File)

	require.Len(t, entries[0].Values, 3)
	assert.Equal(t, telemetry.PathPosition, entries[0].Values[0].Path)
	assert.Equal(t, telemetry.PathSpeedOverGround, entries[0].Values[1].Path)
	assert.Equal(t, telemetry.PathCourseOverGroundTrue, entries[0].Values[2].Path)
}

func TestPositionIndexPrivateCycleTouchesRetention(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, time.Hour)

	old := cycleTime.Add(-2 * time.Hour)
	oldFile := writeSnapshotFile(t, dir, old)
	_, err := idx.Update(fixAt(old), false, oldFile, old)
	require.NoError(t, err)
	require.Len(t, idx.Entries(), 1)

	// A private cycle appends nothing but still advances retention.
	pruned, err := idx.Update(fixAt(cycleTime), true, "", cycleTime)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
	assert.Empty(t, idx.Entries())
	assert.NoFileExists(t, filepath.Join(dir, oldFile))
}

func TestPositionIndexNilFixLeavesIndexUntouched(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, time.Hour)

	old := cycleTime.Add(-2 * time.Hour)
	oldFile := writeSnapshotFile(t, dir, old)
	_, err := idx.Update(fixAt(old), false, oldFile, old)
	require.NoError(t, err)

	pruned, err := idx.Update(nil, false, "", cycleTime)
	require.NoError(t, err)
	assert.Zero(t, pruned)
	assert.Len(t, idx.Entries(), 1)
	assert.FileExists(t, filepath.Join(dir, oldFile))
}

func TestPositionIndexRetention(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, 72*time.Hour)

	times := []time.Time{
		cycleTime.Add(-60 * time.Hour),
		cycleTime.Add(-50 * time.Hour),
		cycleTime,
	}
	for _, ts := range times {
		file := writeSnapshotFile(t, dir, ts)
		_, err := idx.Update(fixAt(ts), false, file, ts)
		require.NoError(t, err)
	}

	// All three are within the window at the last write time.
	require.Len(t, idx.Entries(), 3)

	// Advancing past the window prunes both the entries and the
	// snapshot files behind them.
	later := cycleTime.Add(40 * time.Hour)
	pruned, err := idx.Update(fixAt(later), true, "", later)
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, SnapshotFilename(cycleTime), entries[0].File)

	// Every file still referenced exists on disk.
	for _, e := range entries {
		assert.FileExists(t, filepath.Join(dir, e.File))
	}
	assert.NoFileExists(t, filepath.Join(dir, SnapshotFilename(times[0])))
	assert.NoFileExists(t, filepath.Join(dir, SnapshotFilename(times[1])))
}

func TestPositionIndexDeduplicatesByTimestamp(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, 72*time.Hour)

	file := writeSnapshotFile(t, dir, cycleTime)
	_, err := idx.Update(fixAt(cycleTime), false, file, cycleTime)
	require.NoError(t, err)
	_, err = idx.Update(fixAt(cycleTime), false, file, cycleTime)
	require.NoError(t, err)

	assert.Len(t, idx.Entries(), 1)
}

func TestPositionIndexSortedAscending(t *testing.T) {
	dir := t.TempDir()
	idx := NewPositionIndex(dir, indexName, 72*time.Hour)

	// Appended out of order, read back sorted.
	for _, ts := range []time.Time{cycleTime, cycleTime.Add(-time.Hour), cycleTime.Add(-30 * time.Minute)} {
		file := writeSnapshotFile(t, dir, ts)
		_, err := idx.Update(fixAt(ts), false, file, cycleTime)
		require.NoError(t, err)
	}

	entries := idx.Entries()
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Timestamp, entries[i].Timestamp)
	}
}

func TestPositionIndexSelfHeals(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, indexName), []byte("not json"), 0o644))

	idx := NewPositionIndex(dir, indexName, 72*time.Hour)
	assert.Empty(t, idx.Entries())

	file := writeSnapshotFile(t, dir, cycleTime)
	_, err := idx.Update(fixAt(cycleTime), false, file, cycleTime)
	require.NoError(t, err)
	assert.Len(t, idx.Entries(), 1)
}

func TestPruneSnapshotsIgnoresOtherArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, cycleTime.Add(-10*time.Hour))
	for _, name := range []string{"signalk_latest.json", indexName, "snapshots_index.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644))
	}

	pruned, err := pruneSnapshots(dir, cycleTime)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
	for _, name := range []string{"signalk_latest.json", indexName, "snapshots_index.json"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
