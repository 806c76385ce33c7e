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
)

const snapIndexName = "snapshots_index.json"

func TestSnapshotIndexAppendsEveryCycle(t *testing.T) {
	dir := t.TempDir()
	idx := NewSnapshotIndex(dir, snapIndexName, 30*24*time.Hour)

	// One entry per cycle, private cycles included.
	for i := 0; i < 5; i++ {
		ts := cycleTime.Add(time.Duration(i) * time.Minute)
		require.NoError(t, idx.Update(SnapshotFilename(ts), ts, ts))
	}

	entries := idx.Entries()
	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Timestamp, entries[i].Timestamp)
	}
	assert.Equal(t, SnapshotFilename(cycleTime), entries[0].File)
}

func TestSnapshotIndexSameTimestampSupersedes(t *testing.T) {
	dir := t.TempDir()
	idx := NewSnapshotIndex(dir, snapIndexName, 30*24*time.Hour)

	file := SnapshotFilename(cycleTime)
	require.NoError(t, idx.Update(file, cycleTime, cycleTime))
	require.NoError(t, idx.Update(file, cycleTime, cycleTime.Add(time.Minute)))

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, file, entries[0].File)
}

func TestSnapshotIndexRetention(t *testing.T) {
	dir := t.TempDir()
	idx := NewSnapshotIndex(dir, snapIndexName, 24*time.Hour)

	old := cycleTime.Add(-48 * time.Hour)
	require.NoError(t, idx.Update(SnapshotFilename(old), old, old))
	require.NoError(t, idx.Update(SnapshotFilename(cycleTime), cycleTime, cycleTime))

	entries := idx.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, SnapshotFilename(cycleTime), entries[0].File)
}

func TestSnapshotIndexSelfHeals(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapIndexName), []byte("[{broken"), 0o644))

	idx := NewSnapshotIndex(dir, snapIndexName, 24*time.Hour)
	assert.Empty(t, idx.Entries())

	require.NoError(t, idx.Update(SnapshotFilename(cycleTime), cycleTime, cycleTime))
	assert.Len(t, idx.Entries(), 1)
}

func TestSnapshotIndexIndependentWindow(t *testing.T) {
	dir := t.TempDir()
	snaps := NewSnapshotIndex(dir, snapIndexName, 30*24*time.Hour)
	positions := NewPositionIndex(dir, indexName, 72*time.Hour)

	old := cycleTime.Add(-100 * time.Hour)
	file := writeSnapshotFile(t, dir, old)
	require.NoError(t, snaps.Update(file, old, old))
	_, err := positions.Update(fixAt(old), false, file, old)
	require.NoError(t, err)

	// At cycleTime the position window has lapsed but the snapshot
	// window has not: the entry survives only in the snapshot index.
	require.NoError(t, snaps.Update(SnapshotFilename(cycleTime), cycleTime, cycleTime))
	_, err = positions.Update(fixAt(cycleTime), true, "", cycleTime)
	require.NoError(t, err)

	assert.Len(t, snaps.Entries(), 2)
	assert.Empty(t, positions.Entries())
}
