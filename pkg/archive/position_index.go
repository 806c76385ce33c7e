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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

// PositionEntry is one geographic fix in the position index, referencing the
// snapshot file written in the same cycle.
type PositionEntry struct {
	Timestamp string                `json:"timestamp"`
	File      string                `json:"file"`
	Values    []telemetry.PathValue `json:"values"`
}

type positionDocument struct {
	Positions []PositionEntry `json:"positions"`
}

// PositionIndex maintains the bounded-retention position index file and
// prunes expired snapshot files alongside it, using the same cutoff.
type PositionIndex struct {
	dir    string
	name   string
	window time.Duration
}

// NewPositionIndex creates a PositionIndex for the given archive directory
// and retention window.
func NewPositionIndex(dir, name string, window time.Duration) *PositionIndex {
	return &PositionIndex{dir: dir, name: name, window: window}
}

// Update applies one cycle to the index. A nil fix leaves the index and the
// on-disk snapshots untouched. A private fix appends nothing but still
// prunes and rewrites the index so retention advances. Otherwise the fix is
// appended referencing file, de-duplicated by timestamp, pruned, and the
// index is rewritten sorted ascending. Expired timestamp-named snapshot
// files are deleted with the same cutoff. It returns the number of snapshot
// files removed.
func (x *PositionIndex) Update(fix *telemetry.Fix, private bool, file string, now time.Time) (int, error) {
	if fix == nil {
		return 0, nil
	}

	entries := x.load()

	if !private {
		entry := PositionEntry{
			Timestamp: fix.Timestamp.UTC().Format(TimestampLayout),
			File:      file,
			Values:    fixValues(fix),
		}
		// Equality de-dup: a re-run for the same timestamp supersedes
		// the earlier entry.
		kept := entries[:0]
		for _, e := range entries {
			if e.Timestamp != entry.Timestamp {
				kept = append(kept, e)
			}
		}
		entries = append(kept, entry)
	}

	cutoff := now.Add(-x.window)
	entries = pruneEntries(entries, cutoff)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })

	if err := x.write(entries); err != nil {
		return 0, err
	}

	pruned, err := pruneSnapshots(x.dir, cutoff)
	if err != nil {
		return pruned, err
	}
	return pruned, nil
}

// Entries returns the current index contents sorted ascending.
func (x *PositionIndex) Entries() []PositionEntry {
	entries := x.load()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	return entries
}

// load reads the index, treating a missing or malformed file as empty so
// the pipeline self-heals by rebuilding it incrementally.
func (x *PositionIndex) load() []PositionEntry {
	path := filepath.Join(x.dir, x.name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("unreadable position index, starting empty", "file", x.name, "error", err)
		}
		return nil
	}

	var doc positionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("malformed position index, starting empty", "file", x.name, "error", err)
		return nil
	}
	return doc.Positions
}

func (x *PositionIndex) write(entries []PositionEntry) error {
	if entries == nil {
		entries = []PositionEntry{}
	}
	data, err := json.MarshalIndent(positionDocument{Positions: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal position index: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(x.dir, x.name), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIndex, "failed to write position index", err)
	}
	return nil
}

// fixValues builds the index entry payload: the compact position object
// first, then speed and course when present.
func fixValues(fix *telemetry.Fix) []telemetry.PathValue {
	values := []telemetry.PathValue{{
		Path: telemetry.PathPosition,
		Value: map[string]float64{
			"latitude":  fix.Latitude,
			"longitude": fix.Longitude,
		},
	}}
	if fix.SpeedOverGround != nil {
		values = append(values, telemetry.PathValue{
			Path: telemetry.PathSpeedOverGround, Value: *fix.SpeedOverGround,
		})
	}
	if fix.CourseOverGroundTrue != nil {
		values = append(values, telemetry.PathValue{
			Path: telemetry.PathCourseOverGroundTrue, Value: *fix.CourseOverGroundTrue,
		})
	}
	return values
}

func pruneEntries(entries []PositionEntry, cutoff time.Time) []PositionEntry {
	kept := entries[:0]
	for _, e := range entries {
		ts, ok := telemetry.ParseTimestamp(e.Timestamp)
		if !ok {
			slog.Warn("dropping position index entry with unparsable timestamp", "timestamp", e.Timestamp)
			continue
		}
		if ts.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// pruneSnapshots deletes timestamp-named snapshot files older than cutoff.
// A file disappearing underneath it is not an error.
func pruneSnapshots(dir string, cutoff time.Time) (int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(errors.ErrCodeFilesystem, "failed to read archive directory", err)
	}

	pruned := 0
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ts, ok := SnapshotTime(de.Name())
		if !ok || !ts.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, de.Name())); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return pruned, errors.Wrap(errors.ErrCodeFilesystem, "failed to prune snapshot "+de.Name(), err)
		}
		pruned++
		slog.Debug("pruned expired snapshot", "file", de.Name())
	}
	return pruned, nil
}
