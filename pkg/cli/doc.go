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

// Package cli implements the tidevault command line interface.
//
// Commands:
//
//	update  - run the archival pipeline once or on an interval
//	export  - convert archived snapshots to a GPX/CSV track
//	vessel  - validate or initialize the vessel info document
//
// Global flags:
//
//	--config       Archiver configuration file (default tidevault.yaml)
//	--log-level    Log level (debug, info, warn, error)
//
// Flag values fall back to environment variables (GIT_BRANCH, SIGNALK_URL,
// OUTPUT_DIR, ...) so cron and systemd units can configure the pipeline
// without long argument lists. A local .env file is loaded first when
// present.
//
// The build version is injected via pkg/version:
//
//	go build -ldflags="-X 'github.com/tidevault/tidevault/pkg/version.Version=1.0.0'"
package cli
