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

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/geo"
)

// Publish holds the git publication policy for the archive working copy.
type Publish struct {
	Remote    string `yaml:"remote"`
	Branch    string `yaml:"branch"`
	Amend     bool   `yaml:"amend"`
	ForcePush bool   `yaml:"force_push"`
	NoReset   bool   `yaml:"no_reset"`
	NoPush    bool   `yaml:"no_push"`
}

// Config is the archiver configuration. Zero values fall back to the
// defaults package via Default/applyDefaults, never at point of use.
type Config struct {
	// SignalKURL overrides the endpoint derived from vessel info.
	SignalKURL string `yaml:"signalk_url"`

	// UseHTTPS upgrades an http:// endpoint to https:// before fetching.
	UseHTTPS bool `yaml:"use_https"`

	// FetchTimeout bounds one telemetry fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// OutputDir is the archive directory inside the working copy.
	OutputDir string `yaml:"output_dir"`

	// Whitelist names the top-level telemetry sections persisted into
	// snapshots.
	Whitelist []string `yaml:"whitelist"`

	// PrivacyZones are the geofence circles whose positions are redacted.
	PrivacyZones geo.Zones `yaml:"privacy_zones"`

	// PositionRetention bounds the position index and retained snapshot
	// files.
	PositionRetention time.Duration `yaml:"position_retention"`

	// SnapshotIndexRetention bounds the privacy-safe snapshot index.
	SnapshotIndexRetention time.Duration `yaml:"snapshot_index_retention"`

	// StaleMaxAge expires leaf readings older than this before archiving.
	// Zero disables the stale filter.
	StaleMaxAge time.Duration `yaml:"stale_max_age"`

	// Interval between update cycles. Zero means one-shot.
	Interval time.Duration `yaml:"interval"`

	Publish Publish `yaml:"publish"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaults.FetchTimeout
	}
	if c.OutputDir == "" {
		c.OutputDir = defaults.OutputDir
	}
	if len(c.Whitelist) == 0 {
		c.Whitelist = defaults.Whitelist()
	}
	if c.PositionRetention == 0 {
		c.PositionRetention = defaults.PositionRetention
	}
	if c.SnapshotIndexRetention == 0 {
		c.SnapshotIndexRetention = defaults.SnapshotIndexRetention
	}
	if c.Publish.Remote == "" {
		c.Publish.Remote = defaults.GitRemote
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = defaults.GitBranch
	}
}

// Load reads the configuration file at path. A missing file is not an
// error: defaults are returned so a bare checkout works. A present but
// malformed file is a configuration error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read config", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "invalid YAML in config", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks cross-field constraints that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.PositionRetention < 0 || c.SnapshotIndexRetention < 0 {
		return errors.New(errors.ErrCodeConfig, "retention windows must not be negative")
	}
	for _, z := range c.PrivacyZones {
		if z.RadiusMetres <= 0 {
			return errors.New(errors.ErrCodeConfig, "privacy zone radius must be positive")
		}
		if z.Latitude < -90 || z.Latitude > 90 || z.Longitude < -180 || z.Longitude > 180 {
			return errors.New(errors.ErrCodeConfig, "privacy zone center out of range")
		}
	}
	return nil
}
