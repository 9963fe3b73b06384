// SPDX-License-Identifier: MPL-2.0

package version

import (
	"context"
	"errors"

	"github.com/kushview/eltool/pkg/types"
)

// ErrNoRepository is returned by a Repository when the directory is not
// inside a repository or the repository cannot be inspected at all (for
// example because git is not installed).
var ErrNoRepository = errors.New("no repository")

// Repository is the metadata the deriver needs from version control.
type Repository interface {
	// IsDirty reports whether the working tree has uncommitted changes,
	// untracked files included.
	IsDirty(ctx context.Context) (bool, error)
	// CommitCount returns the number of commits reachable from HEAD and not
	// from since. An empty since counts every commit reachable from HEAD.
	CommitCount(ctx context.Context, since string) (types.BuildNumber, error)
}
