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

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tidevault/tidevault/pkg/config"
	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/publisher"
	"github.com/tidevault/tidevault/pkg/signalk"
	"github.com/tidevault/tidevault/pkg/updater"
	"github.com/tidevault/tidevault/pkg/vessel"
)

func updateCmd() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Fetch telemetry, archive a snapshot, and publish the archive",
		Description: `Run the archival pipeline: fetch the current telemetry document,
apply the geofence privacy policy, write an immutable snapshot plus the
position and snapshot indices, and commit the archive to git.

Runs once by default; with --interval the pipeline repeats until
interrupted.

# Examples

One-shot update pushed to origin/main:
  tidevault update

Continuous archival every five minutes, without pushing:
  tidevault update --interval 5m --no-push

Rewrite the previous commit instead of growing history:
  tidevault update --amend --force-push`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "branch",
				Usage:   "Git branch to publish to",
				Sources: cli.EnvVars("GIT_BRANCH"),
			},
			&cli.StringFlag{
				Name:    "remote",
				Usage:   "Git remote to publish to",
				Sources: cli.EnvVars("GIT_REMOTE"),
			},
			&cli.StringFlag{
				Name:    "signalk-url",
				Usage:   "SignalK vessels/self endpoint (overrides vessel info)",
				Sources: cli.EnvVars("SIGNALK_URL"),
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Archive directory inside the working copy",
				Sources: cli.EnvVars("OUTPUT_DIR"),
			},
			&cli.DurationFlag{
				Name:    "interval",
				Usage:   "Interval between cycles (0 runs once)",
				Sources: cli.EnvVars("UPDATE_INTERVAL"),
			},
			&cli.DurationFlag{
				Name:    "fetch-timeout",
				Usage:   "Timeout for one telemetry fetch",
				Sources: cli.EnvVars("FETCH_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "max-age",
				Usage:   "Expire readings older than this before archiving (0 disables)",
				Sources: cli.EnvVars("STALE_MAX_AGE"),
			},
			&cli.StringFlag{
				Name:    "vessel-info",
				Usage:   "Vessel info document used to build the SignalK endpoint",
				Sources: cli.EnvVars("VESSEL_INFO"),
				Value:   defaults.VesselInfoFile,
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: "Git working copy holding the archive",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:    "use-https",
				Usage:   "Upgrade an http:// endpoint to https://",
				Sources: cli.EnvVars("USE_HTTPS"),
			},
			&cli.BoolFlag{
				Name:  "no-reset",
				Usage: "Skip the fetch + hard reset before writing",
			},
			&cli.BoolFlag{
				Name:  "no-push",
				Usage: "Commit locally without pushing",
			},
			&cli.BoolFlag{
				Name:  "amend",
				Usage: "Amend the previous commit instead of creating a new one",
			},
			&cli.BoolFlag{
				Name:  "force-push",
				Usage: "Force-push the branch (required with --amend)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			applyUpdateFlags(cfg, cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			url, err := resolveEndpoint(cfg, cmd.String("vessel-info"))
			if err != nil {
				return err
			}

			opts := []signalk.Option{signalk.WithTimeout(cfg.FetchTimeout)}
			if cfg.UseHTTPS {
				opts = append(opts, signalk.WithHTTPS())
			}
			client := signalk.New(url, opts...)

			pub, err := publisher.NewGit(cmd.String("repo"), cfg.Publish)
			if err != nil {
				return err
			}

			slog.Info("starting update",
				"url", client.URL(),
				"output", cfg.OutputDir,
				"interval", cfg.Interval.String(),
				"zones", len(cfg.PrivacyZones))

			return updater.New(cfg, client, pub).Run(ctx, cfg.Interval)
		},
	}
}

// applyUpdateFlags overlays explicitly set flags (or their env sources) on
// the file configuration.
func applyUpdateFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("branch") {
		cfg.Publish.Branch = cmd.String("branch")
	}
	if cmd.IsSet("remote") {
		cfg.Publish.Remote = cmd.String("remote")
	}
	if cmd.IsSet("signalk-url") {
		cfg.SignalKURL = cmd.String("signalk-url")
	}
	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}
	if cmd.IsSet("interval") {
		cfg.Interval = cmd.Duration("interval")
	}
	if cmd.IsSet("fetch-timeout") {
		cfg.FetchTimeout = cmd.Duration("fetch-timeout")
	}
	if cmd.IsSet("max-age") {
		cfg.StaleMaxAge = cmd.Duration("max-age")
	}
	if cmd.IsSet("use-https") {
		cfg.UseHTTPS = cmd.Bool("use-https")
	}
	if cmd.Bool("no-reset") {
		cfg.Publish.NoReset = true
	}
	if cmd.Bool("no-push") {
		cfg.Publish.NoPush = true
	}
	if cmd.Bool("amend") {
		cfg.Publish.Amend = true
	}
	if cmd.Bool("force-push") {
		cfg.Publish.ForcePush = true
	}
}

// resolveEndpoint picks the SignalK URL: explicit configuration first, then
// the vessel info document, then the localhost default.
func resolveEndpoint(cfg *config.Config, vesselInfoPath string) (string, error) {
	if cfg.SignalKURL != "" {
		return cfg.SignalKURL, nil
	}

	if _, err := os.Stat(vesselInfoPath); err != nil {
		slog.Debug("no vessel info document, using default endpoint", "path", vesselInfoPath)
		return defaults.SignalKURL, nil
	}

	info, err := vessel.Load(vesselInfoPath)
	if err != nil {
		return "", err
	}
	return info.URL(), nil
}
