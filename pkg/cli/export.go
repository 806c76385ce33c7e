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
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/track"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Convert archived snapshots to a GPX or CSV track",
		Description: `Read the timestamp-named snapshots in the archive directory and write
a geographic track. The track splits into legs wherever the gap between
fixes exceeds --max-gap; by default only the most recent leg is
exported.

# Examples

GPX of the current passage to stdout:
  tidevault export

Everything in the archive as tab-separated values:
  tidevault export --all --format tsv --file track.tsv

One afternoon, with the vessel clock seven hours fast:
  tidevault export --start 2026-02-01 --end 2026-02-02 --adjust -07:00:00`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Archive directory holding the snapshots",
				Sources: cli.EnvVars("OUTPUT_DIR"),
				Value:   defaults.OutputDir,
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Destination file (default stdout)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: gpx, csv, or tsv",
				Value: track.FormatGPX,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Track name embedded in GPX output",
			},
			&cli.DurationFlag{
				Name:  "max-gap",
				Usage: "Gap between fixes that starts a new leg",
				Value: defaults.ExportMaxGap,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every leg, not just the most recent one",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Drop fixes before this time (RFC 3339 or YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Drop fixes after this time (RFC 3339 or YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "adjust",
				Usage: "Shift every fix by [+-]HH:MM:SS",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			start, err := parseTimeArg(cmd.String("start"))
			if err != nil {
				return err
			}
			end, err := parseTimeArg(cmd.String("end"))
			if err != nil {
				return err
			}
			shift, err := parseAdjust(cmd.String("adjust"))
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if path := cmd.String("file"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return track.Export(ctx, w, track.Options{
				Dir:    cmd.String("output"),
				Format: cmd.String("format"),
				Name:   cmd.String("name"),
				MaxGap: cmd.Duration("max-gap"),
				All:    cmd.Bool("all"),
				Start:  start,
				End:    end,
				Shift:  shift,
			})
		},
	}
}
