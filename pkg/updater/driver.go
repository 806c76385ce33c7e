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

package updater

import (
	"context"
	"log/slog"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tidevault/tidevault/pkg/archive"
	"github.com/tidevault/tidevault/pkg/config"
	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/publisher"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

// Fetcher retrieves the current telemetry blob.
type Fetcher interface {
	Fetch(ctx context.Context) (*telemetry.Value, error)
}

// Driver runs the archival pipeline.
type Driver struct {
	cfg       *config.Config
	fetcher   Fetcher
	pub       publisher.Publisher
	writer    *archive.Writer
	positions *archive.PositionIndex
	snapshots *archive.SnapshotIndex

	// now is the cycle clock, replaceable in tests.
	now func() time.Time
}

// New creates a Driver wired to the given fetcher and publisher.
func New(cfg *config.Config, fetcher Fetcher, pub publisher.Publisher) *Driver {
	return &Driver{
		cfg:     cfg,
		fetcher: fetcher,
		pub:     pub,
		writer:  archive.NewWriter(cfg.OutputDir, cfg.Whitelist),
		positions: archive.NewPositionIndex(
			cfg.OutputDir, defaults.PositionIndexFile, cfg.PositionRetention),
		snapshots: archive.NewSnapshotIndex(
			cfg.OutputDir, defaults.SnapshotIndexFile, cfg.SnapshotIndexRetention),
		now: time.Now,
	}
}

// Cycle runs one archival cycle: sync, fetch, redact, filter, persist,
// index, publish. Any error aborts the cycle; nothing is retried.
func (d *Driver) Cycle(ctx context.Context) (err error) {
	start := d.now()
	log := slog.With("cycle", uuid.NewString())

	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		cyclesTotal.WithLabelValues(status).Inc()
		cycleDuration.Observe(time.Since(start).Seconds())
	}()

	if err := d.pub.Sync(ctx); err != nil {
		return err
	}

	blob, err := d.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	now := d.now().UTC()

	var fix *telemetry.Fix
	private := false
	if f, ok := telemetry.ExtractFix(blob, now); ok {
		fix = &f
		private = d.cfg.PrivacyZones.Private(f.Latitude, f.Longitude)
	}
	if private {
		telemetry.RedactPosition(blob)
		privateCycles.Inc()
		log.Info("position inside privacy zone, redacted")
	}

	if d.cfg.StaleMaxAge > 0 {
		blob = telemetry.FilterStale(blob, d.cfg.StaleMaxAge, d.cfg.Whitelist, now)
	}

	if err := archive.WriteLatest(d.cfg.OutputDir, defaults.LatestFile, blob); err != nil {
		return err
	}

	ts := now
	if fix != nil {
		ts = fix.Timestamp
	}

	file, count, err := d.writer.Write(blob, fix, private, ts)
	if err != nil {
		return err
	}
	lastCycleValues.Set(float64(count))

	pruned, err := d.positions.Update(fix, private, file, now)
	if err != nil {
		return err
	}
	snapshotsPruned.Add(float64(pruned))

	if err := d.snapshots.Update(file, ts, now); err != nil {
		return err
	}

	if err := d.pub.Stage(ctx, d.cfg.OutputDir); err != nil {
		return err
	}
	if err := d.pub.Commit(ctx, now); err != nil {
		return err
	}
	if err := d.pub.Push(ctx); err != nil {
		return err
	}

	log.Info("cycle complete",
		"snapshot", file,
		"values", count,
		"private", private,
		"pruned", pruned,
		"duration", time.Since(start).String())
	return nil
}

// Run executes the pipeline once when interval is zero, or repeatedly on
// the interval until ctx is canceled. A cycle error aborts the loop; the
// process exits non-zero rather than recovering.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return d.Cycle(ctx)
	}

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); ok && err == nil {
		go d.watchdog(ctx)
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Info("update loop stopped")
				return nil
			}
			return err
		}
		if err := d.Cycle(ctx); err != nil {
			return err
		}
	}
}

// watchdog keeps systemd's watchdog fed while the loop is alive.
func (d *Driver) watchdog(ctx context.Context) {
	ticker := time.NewTicker(defaults.WatchdogInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}
