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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/vessel"
)

func vesselCmd() *cli.Command {
	infoFlag := &cli.StringFlag{
		Name:    "vessel-info",
		Usage:   "Vessel info document",
		Sources: cli.EnvVars("VESSEL_INFO"),
		Value:   defaults.VesselInfoFile,
	}

	return &cli.Command{
		Name:  "vessel",
		Usage: "Vessel info document tooling",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Check the vessel info document",
				Flags: []cli.Flag{infoFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("vessel-info")
					info, err := vessel.Load(path)
					if err != nil {
						return err
					}
					fmt.Printf("%s is valid: %s (MMSI %s), SignalK at %s\n",
						path, info.Name, info.MMSI, info.URL())
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write a default vessel info skeleton",
				Flags: []cli.Flag{infoFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("vessel-info")
					if _, err := os.Stat(path); err == nil {
						return errors.New(errors.ErrCodeConfig,
							fmt.Sprintf("%s already exists, refusing to overwrite", path))
					}
					if err := vessel.Save(vessel.Default(), path); err != nil {
						return err
					}
					fmt.Printf("wrote %s, edit it with your vessel's details\n", path)
					return nil
				},
			},
		},
	}
}
