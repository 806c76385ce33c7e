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
	"regexp"
	"time"

	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

const (
	// FilenameLayout formats the UTC cycle timestamp into a snapshot
	// filename stem. Fixed-width fields keep string sort order equal to
	// time order.
	FilenameLayout = "2006-01-02T15-04-05.000000Z"

	// TimestampLayout formats timestamps embedded in archive documents.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"

	// Context identifies the vessel in snapshot delta documents.
	Context = "vessels.self"
)

// snapshotNamePattern matches timestamp-named snapshot artifacts, with or
// without sub-second precision.
var snapshotNamePattern = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}(\.\d+)?Z\.json$`)

// Update is one timestamped batch of readings inside a snapshot document.
type Update struct {
	Timestamp string                `json:"timestamp"`
	Values    []telemetry.PathValue `json:"values"`
}

// Delta is the snapshot document: the SignalK delta shape the dashboard
// already consumes.
type Delta struct {
	Context string   `json:"context"`
	Updates []Update `json:"updates"`
}

// SnapshotFilename derives the snapshot filename for a cycle timestamp.
func SnapshotFilename(ts time.Time) string {
	return ts.UTC().Format(FilenameLayout) + ".json"
}

// SnapshotTime parses a snapshot filename back into its UTC timestamp. It
// returns false for names that are not timestamp-named snapshot artifacts.
func SnapshotTime(name string) (time.Time, bool) {
	if !snapshotNamePattern.MatchString(name) {
		return time.Time{}, false
	}
	stem := name[:len(name)-len(".json")]
	for _, layout := range []string{FilenameLayout, "2006-01-02T15-04-05Z"} {
		if t, err := time.Parse(layout, stem); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Writer persists one immutable snapshot file per cycle.
type Writer struct {
	dir       string
	whitelist []string
}

// NewWriter creates a snapshot Writer for the given archive directory.
func NewWriter(dir string, whitelist []string) *Writer {
	return &Writer{dir: dir, whitelist: whitelist}
}

// Write collects the whitelisted readings from blob and persists them as a
// snapshot file named after ts, returning the filename and the number of
// values written. When fix is non-nil and the cycle is not private, a
// compact position entry leads the values. A snapshot for a different
// timestamp is never overwritten; writing the same timestamp again, as
// happens when the position clock has not advanced between polls,
// supersedes the same-named file.
func (w *Writer) Write(blob *telemetry.Value, fix *telemetry.Fix, private bool, ts time.Time) (string, int, error) {
	values := collectWithoutPosition(blob, w.whitelist)
	telemetry.SortPathValues(values)

	if fix != nil && !private {
		position := telemetry.PathValue{
			Path: telemetry.PathPosition,
			Value: map[string]float64{
				"latitude":  fix.Latitude,
				"longitude": fix.Longitude,
			},
		}
		values = append([]telemetry.PathValue{position}, values...)
	}

	doc := Delta{
		Context: Context,
		Updates: []Update{{
			Timestamp: ts.UTC().Format(TimestampLayout),
			Values:    values,
		}},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeFilesystem, "failed to create archive directory", err)
	}

	name := SnapshotFilename(ts)
	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if !os.IsExist(err) {
			return "", 0, errors.Wrap(errors.ErrCodeFilesystem, "failed to create snapshot "+name, err)
		}
		// Same timestamp, same cycle identity: supersede in place.
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", 0, errors.Wrap(errors.ErrCodeFilesystem, "failed to supersede snapshot "+name, err)
		}
		slog.Debug("superseded snapshot", "file", name, "values", len(values))
		return name, len(values), nil
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeFilesystem, "failed to write snapshot "+name, err)
	}

	slog.Debug("wrote snapshot", "file", name, "values", len(values))
	return name, len(values), nil
}

// collectWithoutPosition collects whitelisted readings, dropping any
// auto-collected position entry so the writer controls its presence and
// placement.
func collectWithoutPosition(blob *telemetry.Value, whitelist []string) []telemetry.PathValue {
	collected := telemetry.Collect(blob, whitelist)
	values := collected[:0:0]
	for _, pv := range collected {
		if pv.Path == telemetry.PathPosition {
			continue
		}
		values = append(values, pv)
	}
	return values
}

// WriteLatest overwrites the latest raw telemetry artifact in dir.
func WriteLatest(dir, name string, blob *telemetry.Value) error {
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal latest artifact: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, "failed to create archive directory", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, "failed to write latest artifact", err)
	}
	return nil
}
