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

package defaults

import "time"

// Telemetry fetch settings.
const (
	// FetchTimeout is the default total timeout for one telemetry fetch.
	FetchTimeout = 30 * time.Second

	// SignalKURL is the fallback endpoint when neither vessel info nor
	// flags provide one.
	SignalKURL = "http://localhost:3000/signalk/v1/api/vessels/self"
)

// Retention windows bounding the archive.
const (
	// PositionRetention bounds the position index and the set of retained
	// snapshot files.
	PositionRetention = 72 * time.Hour

	// SnapshotIndexRetention bounds the privacy-safe snapshot index. It is
	// deliberately longer than PositionRetention so generic time-series
	// views reach further back than track playback.
	SnapshotIndexRetention = 30 * 24 * time.Hour

	// StaleMaxAge is the default leaf-reading expiry for the stale filter.
	// Zero disables filtering.
	StaleMaxAge = time.Duration(0)
)

// Archive file names and layout.
const (
	// OutputDir is the default archive directory, relative to the working
	// copy root.
	OutputDir = "data/telemetry"

	// LatestFile is the mutable latest-blob artifact inside the archive
	// directory.
	LatestFile = "signalk_latest.json"

	// PositionIndexFile is the position index document name.
	PositionIndexFile = "positions_index.json"

	// SnapshotIndexFile is the snapshot index document name.
	SnapshotIndexFile = "snapshots_index.json"

	// VesselInfoFile is the vessel configuration document, relative to the
	// working copy root.
	VesselInfoFile = "data/vessel/info.json"

	// ConfigFile is the archiver configuration document.
	ConfigFile = "tidevault.yaml"
)

// Publish settings.
const (
	// GitRemote is the default publish remote.
	GitRemote = "origin"

	// GitBranch is the default publish branch.
	GitBranch = "main"

	// GitCommandTimeout bounds any single git invocation.
	GitCommandTimeout = 2 * time.Minute
)

// Update loop settings.
const (
	// Interval zero means one-shot mode; the update command only loops when
	// asked to.
	Interval = time.Duration(0)

	// WatchdogInterval is the systemd watchdog keepalive cadence in looped
	// mode.
	WatchdogInterval = 30 * time.Second
)

// Track export settings.
const (
	// ExportMaxGap is the time gap that splits archived fixes into separate
	// track sequences.
	ExportMaxGap = 10 * time.Minute
)

// Whitelist returns the default top-level telemetry sections included in
// snapshots. A fresh slice is returned so callers can append safely.
func Whitelist() []string {
	return []string{"navigation", "environment"}
}
