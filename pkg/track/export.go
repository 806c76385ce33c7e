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
	"fmt"
	"io"
	"time"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/errors"
)

// Supported export formats.
const (
	FormatGPX = "gpx"
	FormatCSV = "csv"
	FormatTSV = "tsv"
)

// Options controls one export run.
type Options struct {
	// Dir is the archive directory holding the snapshots.
	Dir string

	// Format is one of gpx, csv, tsv.
	Format string

	// Name labels the GPX track.
	Name string

	// MaxGap splits the track into sequences; zero uses the default.
	MaxGap time.Duration

	// All exports every sequence. The default is only the most recent
	// one, which is usually the passage still in progress.
	All bool

	// Start and End clamp the exported range; zero bounds are open.
	Start time.Time
	End   time.Time

	// Shift moves every timestamp, for fixing a skewed vessel clock.
	Shift time.Duration
}

// Export loads the archived track and writes it to w in the requested
// format.
func Export(ctx context.Context, w io.Writer, opts Options) error {
	maxGap := opts.MaxGap
	if maxGap <= 0 {
		maxGap = defaults.ExportMaxGap
	}

	points, err := Load(ctx, opts.Dir)
	if err != nil {
		return err
	}
	points = Shift(points, opts.Shift)
	points = Clamp(points, opts.Start, opts.End)

	sequences := Sequences(points, maxGap)
	if !opts.All && len(sequences) > 1 {
		sequences = sequences[len(sequences)-1:]
	}

	switch opts.Format {
	case FormatGPX, "":
		return WriteGPX(w, opts.Name, sequences)
	case FormatCSV, FormatTSV:
		separator := ','
		if opts.Format == FormatTSV {
			separator = '\t'
		}
		var flat []Point
		for _, seq := range sequences {
			flat = append(flat, seq...)
		}
		return WriteCSV(w, separator, flat)
	default:
		return errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("unknown export format %q: use gpx, csv, or tsv", opts.Format))
	}
}
