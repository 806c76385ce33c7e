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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/logging"
	"github.com/tidevault/tidevault/pkg/version"
)

const name = "tidevault"

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Vessel telemetry snapshot and position archival pipeline",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Archiver configuration file",
				Sources: cli.EnvVars("TIDEVAULT_CONFIG"),
				Value:   defaults.ConfigFile,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version.Version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version.Version,
				"commit", version.Commit,
				"date", version.Date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			updateCmd(),
			exportCmd(),
			vesselCmd(),
		},
	}
}

// Execute runs the CLI. Called by main.main. SIGINT/SIGTERM cancel the
// command context so a looped update shuts down cleanly between cycles.
func Execute() {
	// Local .env is optional; flags and real env still win.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
