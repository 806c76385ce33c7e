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

package vessel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/tidevault/tidevault/pkg/errors"
)

// SignalK is the telemetry server address section of the vessel info
// document. Port is a string in the document for historical reasons.
type SignalK struct {
	Host     string `json:"host" validate:"required"`
	Port     string `json:"port" validate:"required,number"`
	Protocol string `json:"protocol,omitempty" validate:"omitempty,oneof=http https"`
}

// Sensors holds sensor calibration settings consumed by the (out of scope)
// sensor publishing scripts. Carried through load/save untouched except for
// validation.
type Sensors struct {
	HeadingCorrectionOffsetRad float64 `json:"heading_correction_offset_rad,omitempty"`
}

// Info is the vessel information document.
type Info struct {
	Name       string  `json:"name" validate:"required"`
	MMSI       string  `json:"mmsi" validate:"required,len=9,numeric"`
	USCGNumber string  `json:"uscg_number,omitempty"`
	HullNumber string  `json:"hull_number,omitempty"`
	SignalK    SignalK `json:"signalk" validate:"required"`
	Sensors    Sensors `json:"sensors,omitempty"`
}

var validate = validator.New()

// Validate checks the document against its struct tags plus the range
// checks tags cannot express.
func (i *Info) Validate() error {
	if err := validate.Struct(i); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "invalid vessel info", err)
	}

	var port int
	if _, err := fmt.Sscanf(i.SignalK.Port, "%d", &port); err != nil || port < 1 || port > 65535 {
		return errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("invalid SignalK port %q: must be 1-65535", i.SignalK.Port))
	}

	// Heading offsets past a full turn are a data-entry mistake.
	if math.Abs(i.Sensors.HeadingCorrectionOffsetRad) > 2*math.Pi {
		return errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("unreasonable heading correction offset %f: should be within ±2π radians",
				i.Sensors.HeadingCorrectionOffsetRad))
	}
	return nil
}

// URL builds the SignalK vessels/self endpoint from the document. Protocol
// defaults to http when absent.
func (i *Info) URL() string {
	protocol := i.SignalK.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s:%s/signalk/v1/api/vessels/self", protocol, i.SignalK.Host, i.SignalK.Port)
}

// Default returns the vessel info skeleton written by `tidevault vessel init`.
func Default() *Info {
	return &Info{
		Name: "S.V. Vessel",
		MMSI: "123456789",
		SignalK: SignalK{
			Host:     "localhost",
			Port:     "3000",
			Protocol: "http",
		},
	}
}

// Load reads and validates a vessel info document.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read vessel info", err)
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "invalid JSON in vessel info", err)
	}

	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &info, nil
}

// Save writes the document, creating parent directories as needed.
func Save(info *Info, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, "failed to create vessel info directory", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vessel info: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, "failed to write vessel info", err)
	}
	return nil
}
