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
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tidevault/tidevault/pkg/archive"
	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

// loadConcurrency bounds parallel snapshot parsing during export.
const loadConcurrency = 8

// Load reads every timestamp-named snapshot in dir and returns the position
// fixes found in them, sorted chronologically. Snapshots without a position
// entry (private cycles) are skipped. Index files and the latest artifact
// are never touched.
func Load(ctx context.Context, dir string) ([]Point, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, "failed to read archive directory", err)
	}

	var mu sync.Mutex
	var points []Point

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if _, ok := archive.SnapshotTime(name); !ok {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, ok, err := loadPoint(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			if ok {
				mu.Lock()
				points = append(points, p)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortPoints(points)
	slog.Debug("loaded track points", "snapshots", len(dirEntries), "points", len(points))
	return points, nil
}

// loadPoint parses one snapshot file. ok is false when the snapshot holds
// no position entry or cannot be parsed; a malformed snapshot is skipped,
// never fatal to the export.
func loadPoint(path string) (Point, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Point{}, false, errors.Wrap(errors.ErrCodeFilesystem, "failed to read snapshot", err)
	}

	var doc archive.Delta
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("skipping malformed snapshot", "file", filepath.Base(path), "error", err)
		return Point{}, false, nil
	}
	if len(doc.Updates) == 0 {
		return Point{}, false, nil
	}

	update := doc.Updates[0]
	ts, ok := telemetry.ParseTimestamp(update.Timestamp)
	if !ok {
		return Point{}, false, nil
	}

	p := Point{Time: ts, File: filepath.Base(path)}
	found := false
	for _, v := range update.Values {
		switch v.Path {
		case telemetry.PathPosition:
			obj, ok := v.Value.(map[string]any)
			if !ok {
				continue
			}
			lat, latOK := obj["latitude"].(float64)
			lon, lonOK := obj["longitude"].(float64)
			if latOK && lonOK {
				p.Latitude = lat
				p.Longitude = lon
				found = true
			}
		case telemetry.PathSpeedOverGround:
			if f, ok := v.Value.(float64); ok {
				p.SpeedOverGround = &f
			}
		case telemetry.PathCourseOverGroundTrue:
			if f, ok := v.Value.(float64); ok {
				p.CourseOverGroundTrue = &f
			}
		}
	}
	return p, found, nil
}
