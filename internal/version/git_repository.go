// SPDX-License-Identifier: MPL-2.0

package version

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/kushview/eltool/pkg/types"
)

// GitRepository inspects a repository in-process with go-git.
type GitRepository struct {
	dir string
}

// NewGitRepository returns a GitRepository for dir. Parent directories are
// searched for the .git directory.
func NewGitRepository(dir string) *GitRepository {
	if dir == "" {
		dir = "."
	}
	return &GitRepository{dir: dir}
}

func (r *GitRepository) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(r.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNoRepository, r.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", r.dir, err)
	}
	return repo, nil
}

// IsDirty reports whether the worktree status is not clean.
func (r *GitRepository) IsDirty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	repo, err := r.open()
	if err != nil {
		return false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree.
		return false, fmt.Errorf("%w: %w", ErrNoRepository, err)
	}
	st, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}
	return !st.IsClean(), nil
}

// CommitCount walks the history from HEAD, skipping commits that are also
// reachable from since.
func (r *GitRepository) CommitCount(ctx context.Context, since string) (types.BuildNumber, error) {
	repo, err := r.open()
	if err != nil {
		return 0, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// No commits yet.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve HEAD: %w", err)
	}

	excluded := map[plumbing.Hash]struct{}{}
	if since != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(since))
		if err != nil {
			return 0, fmt.Errorf("resolve revision %q: %w", since, err)
		}
		if err := walk(ctx, repo, *hash, func(c *object.Commit) error {
			excluded[c.Hash] = struct{}{}
			return nil
		}); err != nil {
			return 0, err
		}
	}

	var n types.BuildNumber
	err = walk(ctx, repo, head.Hash(), func(c *object.Commit) error {
		if _, ok := excluded[c.Hash]; !ok {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func walk(ctx context.Context, repo *git.Repository, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return fmt.Errorf("log from %s: %w", from, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if errors.Is(err, storer.ErrStop) {
		return nil
	}
	return err
}
