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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/tidevault/tidevault/pkg/config"
	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/errors"
)

// Git publishes the archive by shelling out to the git binary in the
// working copy at Dir.
type Git struct {
	dir    string
	policy config.Publish

	// run executes one git command and returns combined stderr on
	// failure. Tests replace it to record argv sequences.
	run func(ctx context.Context, args ...string) error
}

// NewGit creates a Git publisher for the working copy at dir. It fails
// when the git binary is not on PATH.
func NewGit(dir string, policy config.Publish) (*Git, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVersionControl, "git not found in PATH", err)
	}

	g := &Git{dir: dir, policy: policy}
	g.run = func(ctx context.Context, args ...string) error {
		ctx, cancel := context.WithTimeout(ctx, defaults.GitCommandTimeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, gitPath, args...)
		cmd.Dir = dir

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		slog.Debug("running git", "args", strings.Join(args, " "))
		if err := cmd.Run(); err != nil {
			msg := fmt.Sprintf("git %s failed", args[0])
			if s := strings.TrimSpace(stderr.String()); s != "" {
				msg = fmt.Sprintf("%s: %s", msg, s)
			}
			return errors.Wrap(errors.ErrCodeVersionControl, msg, err)
		}
		return nil
	}
	return g, nil
}

// Sync fetches all remotes and hard-resets the working copy to the remote
// tracking branch, so repeated runs from one long-lived agent never
// diverge. Disabled by the NoReset policy.
func (g *Git) Sync(ctx context.Context) error {
	if g.policy.NoReset {
		slog.Debug("reset disabled, skipping sync")
		return nil
	}
	if err := g.run(ctx, "fetch", "--all"); err != nil {
		return err
	}
	return g.run(ctx, "reset", "--hard", g.policy.Remote+"/"+g.policy.Branch)
}

// Stage adds the given paths to the next commit.
func (g *Git) Stage(ctx context.Context, paths ...string) error {
	args := append([]string{"add"}, paths...)
	return g.run(ctx, args...)
}

// Commit records the staged archive, allowing empty commits. The Amend
// policy rewrites the previous commit instead of creating a new one.
func (g *Git) Commit(ctx context.Context, ts time.Time) error {
	args := []string{"commit", "--allow-empty"}
	if g.policy.Amend {
		args = append(args, "--amend")
	}
	args = append(args, "-m", CommitMessage(ts))
	return g.run(ctx, args...)
}

// Push publishes the branch to the remote. Force is required when the
// Amend policy rewrites history. Disabled by the NoPush policy.
func (g *Git) Push(ctx context.Context) error {
	if g.policy.NoPush {
		slog.Debug("push disabled, skipping")
		return nil
	}
	args := []string{"push"}
	if g.policy.ForcePush {
		args = append(args, "--force")
	}
	args = append(args, g.policy.Remote, g.policy.Branch)
	return g.run(ctx, args...)
}

// CommitMessage formats the commit message for a cycle timestamp.
func CommitMessage(ts time.Time) string {
	return "Auto update " + ts.UTC().Format(time.RFC3339)
}
