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

package publisher

import (
	"context"
	"time"
)

// Publisher is the version-control surface the update driver needs. Sync
// runs before any local mutation; Stage, Commit, and Push run after all of
// a cycle's files are written.
type Publisher interface {
	// Sync brings the working copy up to the remote tracking branch
	// (fetch + hard reset). A no-op when resets are disabled by policy.
	Sync(ctx context.Context) error

	// Stage adds the given paths to the next commit.
	Stage(ctx context.Context, paths ...string) error

	// Commit records the staged changes, allowing empty commits so an
	// unchanged archive still advances the log. ts becomes part of the
	// commit message.
	Commit(ctx context.Context, ts time.Time) error

	// Push publishes the branch to the remote. A no-op when pushes are
	// disabled by policy.
	Push(ctx context.Context) error
}
