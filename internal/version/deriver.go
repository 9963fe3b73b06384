// SPDX-License-Identifier: MPL-2.0

package version

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/semver"
)

const (
	// DefaultBase is used when no base version is configured.
	DefaultBase = "0.0.0"

	dirtyMarker = "-dirty"
)

// ErrInvalidBase is returned when the base is not a semantic version.
var ErrInvalidBase = errors.New("invalid base version")

type (
	// Options controls how a version string is composed:
	//
	//	<Prefix><Base>[<build>][-dirty]<Suffix>
	Options struct {
		Base   string
		Build  bool
		Style  BuildStyle
		Since  string
		Prefix string
		Suffix string
	}

	// Deriver composes version strings from Options and a Repository.
	Deriver struct {
		repo   Repository
		logger *log.Logger
	}
)

// NewDeriver returns a Deriver reading metadata from repo. A nil repo
// behaves as if no repository were present.
func NewDeriver(repo Repository, logger *log.Logger) *Deriver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Deriver{repo: repo, logger: logger}
}

// ValidateBase reports whether base is a semantic version. A leading "v"
// is optional.
func ValidateBase(base string) error {
	v := base
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if base == "" || !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrInvalidBase, base)
	}
	return nil
}

// Validate checks the base and style.
func (o Options) Validate() error {
	if err := ValidateBase(o.Base); err != nil {
		return err
	}
	return o.Style.Validate()
}

// Derive returns the version string for opts. A missing repository is not
// an error: the result is then the base with prefix and suffix only.
func (d *Deriver) Derive(ctx context.Context, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	bare := opts.Prefix + opts.Base + opts.Suffix
	if d.repo == nil {
		return bare, nil
	}

	dirty, err := d.repo.IsDirty(ctx)
	if errors.Is(err, ErrNoRepository) {
		d.logger.Debug("no repository, using base version", "reason", err)
		return bare, nil
	}
	if err != nil {
		return "", err
	}

	core := opts.Base
	if opts.Build {
		n, err := d.repo.CommitCount(ctx, opts.Since)
		if errors.Is(err, ErrNoRepository) {
			d.logger.Debug("no repository, using base version", "reason", err)
			return bare, nil
		}
		if err != nil {
			return "", err
		}
		core = opts.Style.Apply(core, n)
	}

	if dirty && !strings.HasSuffix(core, dirtyMarker) {
		core += dirtyMarker
	}

	d.logger.Debug("derived version", "base", opts.Base, "dirty", dirty, "build", opts.Build, "result", core)
	return opts.Prefix + core + opts.Suffix, nil
}
