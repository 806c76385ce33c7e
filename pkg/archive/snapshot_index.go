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

// SnapshotEntry is one privacy-safe snapshot reference: timestamp and
// filename only, never position data.
type SnapshotEntry struct {
	Timestamp string `json:"timestamp"`
	File      string `json:"file"`
}

// SnapshotIndex maintains the bounded-retention index of every snapshot
// file, private cycles included. Its retention window is independent of the
// position index and typically longer.
type SnapshotIndex struct {
	dir    string
	name   string
	window time.Duration
}

// NewSnapshotIndex creates a SnapshotIndex for the given archive directory
// and retention window.
func NewSnapshotIndex(dir, name string, window time.Duration) *SnapshotIndex {
	return &SnapshotIndex{dir: dir, name: name, window: window}
}

// Update records file under ts, superseding any earlier entry with the
// identical timestamp, prunes entries older than the window, and rewrites
// the index sorted ascending. Every cycle lands exactly one entry, private
// cycles included.
func (x *SnapshotIndex) Update(file string, ts, now time.Time) error {
	stamp := ts.UTC().Format(TimestampLayout)

	entries := x.load()
	fresh := entries[:0]
	for _, e := range entries {
		if e.Timestamp == stamp {
			continue
		}
		fresh = append(fresh, e)
	}
	entries = append(fresh, SnapshotEntry{Timestamp: stamp, File: file})

	cutoff := now.Add(-x.window)
	kept := entries[:0]
	for _, e := range entries {
		when, ok := telemetry.ParseTimestamp(e.Timestamp)
		if !ok {
			slog.Warn("dropping snapshot index entry with unparsable timestamp", "timestamp", e.Timestamp)
			continue
		}
		if when.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Timestamp < kept[j].Timestamp })

	return x.write(kept)
}

// Entries returns the current index contents sorted ascending.
func (x *SnapshotIndex) Entries() []SnapshotEntry {
	entries := x.load()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	return entries
}

func (x *SnapshotIndex) load() []SnapshotEntry {
	data, err := os.ReadFile(filepath.Join(x.dir, x.name))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("unreadable snapshot index, starting empty", "file", x.name, "error", err)
		}
		return nil
	}

	var entries []SnapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("malformed snapshot index, starting empty", "file", x.name, "error", err)
		return nil
	}
	return entries
}

func (x *SnapshotIndex) write(entries []SnapshotEntry) error {
	if entries == nil {
		entries = []SnapshotEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot index: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(x.dir, x.name), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIndex, "failed to write snapshot index", err)
	}
	return nil
}
