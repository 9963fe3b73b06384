// SPDX-License-Identifier: MPL-2.0

package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/kushview/eltool/internal/toolexec"
	"github.com/kushview/eltool/pkg/types"
)

// ExecRepository inspects a repository by running git.
type ExecRepository struct {
	dir    string
	runner toolexec.Runner
	gitCmd string
}

// NewExecRepository returns an ExecRepository for dir. An empty gitCmd
// means "git".
func NewExecRepository(dir string, runner toolexec.Runner, gitCmd string) *ExecRepository {
	if gitCmd == "" {
		gitCmd = "git"
	}
	return &ExecRepository{dir: dir, runner: runner, gitCmd: gitCmd}
}

// IsDirty runs `git status --porcelain`.
func (r *ExecRepository) IsDirty(ctx context.Context) (bool, error) {
	res, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if !res.Success() {
		// Outside a work tree git exits 128.
		return false, fmt.Errorf("%w: git status: %s", ErrNoRepository, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// CommitCount runs `git rev-list --count [since..]HEAD`.
func (r *ExecRepository) CommitCount(ctx context.Context, since string) (types.BuildNumber, error) {
	rng := "HEAD"
	if since != "" {
		rng = since + "..HEAD"
	}
	res, err := r.git(ctx, "rev-list", "--count", rng)
	if err != nil {
		return 0, err
	}
	if !res.Success() {
		if r.unbornHead(ctx) {
			return 0, nil
		}
		return 0, fmt.Errorf("git rev-list --count %s: %s", rng, strings.TrimSpace(res.Stderr))
	}
	return types.ParseBuildNumber(strings.TrimSpace(res.Stdout))
}

// unbornHead reports whether HEAD names no commit yet, as in a freshly
// initialized repository.
func (r *ExecRepository) unbornHead(ctx context.Context) bool {
	res, err := r.git(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil && !res.Success()
}

func (r *ExecRepository) git(ctx context.Context, args ...string) (toolexec.Result, error) {
	cmd, err := toolexec.ToolCommand(r.gitCmd, args...)
	if err != nil {
		return toolexec.Result{}, err
	}
	cmd.Dir = r.dir

	res, err := r.runner.Run(ctx, cmd)
	if toolexec.IsToolNotFound(err) {
		return res, fmt.Errorf("%w: %w", ErrNoRepository, err)
	}
	return res, err
}
