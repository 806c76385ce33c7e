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

package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"rfc3339 zulu", "2026-02-01T11:00:00Z", true},
		{"rfc3339 fractional", "2026-02-01T11:00:00.123456Z", true},
		{"numeric offset with colon", "2026-02-01T11:00:00+02:00", true},
		{"numeric offset without colon", "2026-02-01T11:00:00+0200", true},
		{"garbage", "not-a-timestamp", false},
		{"empty", "", false},
		{"date only", "2026-02-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, time.UTC, ts.Location())
			}
		})
	}
}

func TestFilterStaleStripsExpiredReadings(t *testing.T) {
	blob := mustParse(t, `{
		"environment": {
			"outside": {
				"temperature": {
					"value": 288.15,
					"timestamp": "2026-02-01T09:00:00Z",
					"meta": {"units": "K"}
				},
				"pressure": {
					"value": 101325,
					"timestamp": "2026-02-01T11:59:00Z"
				}
			}
		}
	}`)

	FilterStale(blob, time.Hour, []string{"environment"}, filterNow)

	temp := blob.GetPath("environment", "outside", "temperature")
	require.NotNil(t, temp, "node with surviving meta should not be dropped")
	assert.Nil(t, temp.Get("value"))
	assert.Nil(t, temp.Get("timestamp"))
	units, ok := temp.GetPath("meta", "units").AsString()
	require.True(t, ok)
	assert.Equal(t, "K", units)

	pressure := blob.GetPath("environment", "outside", "pressure")
	require.NotNil(t, pressure)
	_, ok = pressure.Get("value").AsFloat()
	assert.True(t, ok, "fresh reading must be untouched")
}

func TestFilterStaleDropsEmptiedNodes(t *testing.T) {
	blob := mustParse(t, `{
		"environment": {
			"inside": {
				"humidity": {
					"value": 0.6,
					"timestamp": "2026-02-01T08:00:00Z"
				}
			}
		}
	}`)

	FilterStale(blob, time.Hour, []string{"environment"}, filterNow)

	// humidity emptied -> inside emptied -> whole section gone.
	assert.Nil(t, blob.Get("environment"))
}

func TestFilterStaleLeavesOtherSectionsUntouched(t *testing.T) {
	blob := mustParse(t, `{
		"environment": {
			"temperature": {"value": 1, "timestamp": "2026-02-01T08:00:00Z"}
		},
		"electrical": {
			"battery": {"value": 12.1, "timestamp": "2026-02-01T08:00:00Z"}
		}
	}`)

	FilterStale(blob, time.Hour, []string{"environment"}, filterNow)

	assert.Nil(t, blob.Get("environment"))
	_, ok := blob.GetPath("electrical", "battery", "value").AsFloat()
	assert.True(t, ok, "non-target section must pass through untouched")
}

func TestFilterStaleKeepsUnparsableTimestamps(t *testing.T) {
	blob := mustParse(t, `{
		"navigation": {
			"log": {"value": 1234, "timestamp": "yesterday-ish"},
			"trip": {"value": 12}
		}
	}`)

	FilterStale(blob, time.Hour, []string{"navigation"}, filterNow)

	_, ok := blob.GetPath("navigation", "log", "value").AsFloat()
	assert.True(t, ok, "unparsable timestamps are treated as not stale")
	_, ok = blob.GetPath("navigation", "trip", "value").AsFloat()
	assert.True(t, ok, "missing timestamps are treated as not stale")
}

func TestFilterStalePrunesLists(t *testing.T) {
	blob := mustParse(t, `{
		"notifications": {
			"active": [
				{"value": 1, "timestamp": "2026-02-01T08:00:00Z"},
				{"value": 2, "timestamp": "2026-02-01T11:59:00Z"}
			],
			"expired": [
				{"value": 1, "timestamp": "2026-02-01T08:00:00Z"}
			]
		}
	}`)

	FilterStale(blob, time.Hour, []string{"notifications"}, filterNow)

	active := blob.GetPath("notifications", "active")
	require.NotNil(t, active)
	assert.Equal(t, 1, active.Len(), "only the fresh element survives")

	assert.Nil(t, blob.GetPath("notifications", "expired"),
		"a list whose every element was pruned is dropped")
}

func TestFilterStaleDisabled(t *testing.T) {
	doc := `{
		"environment": {
			"temperature": {"value": 1, "timestamp": "2020-01-01T00:00:00Z"}
		}
	}`

	for _, maxAge := range []time.Duration{0, -time.Hour} {
		blob := mustParse(t, doc)
		FilterStale(blob, maxAge, []string{"environment"}, filterNow)
		_, ok := blob.GetPath("environment", "temperature", "value").AsFloat()
		assert.True(t, ok, "maxAge %v must be a no-op", maxAge)
	}
}

func TestFilterStaleIdempotent(t *testing.T) {
	doc := `{
		"environment": {
			"outside": {
				"temperature": {"value": 288.15, "timestamp": "2026-02-01T09:00:00Z", "meta": {"units": "K"}},
				"pressure": {"value": 101325, "timestamp": "2026-02-01T11:59:00Z"}
			},
			"inside": {
				"humidity": {"value": 0.6, "timestamp": "2026-02-01T08:00:00Z"}
			}
		}
	}`

	once := mustParse(t, doc)
	FilterStale(once, time.Hour, []string{"environment"}, filterNow)

	twice := mustParse(t, doc)
	FilterStale(twice, time.Hour, []string{"environment"}, filterNow)
	FilterStale(twice, time.Hour, []string{"environment"}, filterNow)

	assert.Equal(t, once.Any(), twice.Any())
}
