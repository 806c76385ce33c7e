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
	"fmt"
	"strings"
	"time"

	"github.com/tidevault/tidevault/pkg/errors"
)

var timeArgLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimeArg parses a --start/--end argument. Empty input is the zero
// time (an open bound). Times without a zone are read as UTC.
func parseTimeArg(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeArgLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeConfig,
		fmt.Sprintf("invalid time %q: use RFC 3339 or YYYY-MM-DD", s))
}

// parseAdjust parses a clock adjustment of the form [+-]HH:MM:SS.
func parseAdjust(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	negative := false
	body := s
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		body = s[1:]
	case strings.HasPrefix(s, "+"):
		body = s[1:]
	}

	var h, m, sec int
	if _, err := fmt.Sscanf(body, "%d:%d:%d", &h, &m, &sec); err != nil ||
		h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("invalid adjustment %q: use [+-]HH:MM:SS", s))
	}

	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	if negative {
		d = -d
	}
	return d, nil
}
