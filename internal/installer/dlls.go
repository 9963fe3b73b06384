// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/u-root/u-root/pkg/cp"
)

// DefaultDLLPattern matches every DLL below a source directory.
const DefaultDLLPattern = "**/*.dll"

// ErrInvalidPattern is returned for malformed glob patterns.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// DLLStager copies runtime libraries next to a built executable.
type DLLStager struct {
	logger *log.Logger
}

// NewDLLStager returns a DLLStager logging to logger.
func NewDLLStager(logger *log.Logger) *DLLStager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DLLStager{logger: logger}
}

// Stage copies every file matching pattern below each source directory
// flat into target and returns the staged paths, sorted. When two sources
// provide the same file name the later source wins.
func (s *DLLStager) Stage(ctx context.Context, sources []string, target, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultDLLPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	picked := map[string]string{}
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("source directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("source %s is not a directory", src)
		}

		matches, err := doublestar.Glob(os.DirFS(src), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s in %s: %w", pattern, src, err)
		}
		for _, m := range matches {
			name := filepath.Base(filepath.FromSlash(m))
			full := filepath.Join(src, filepath.FromSlash(m))
			if prev, ok := picked[name]; ok {
				s.logger.Warn("duplicate library, later source wins", "name", name, "previous", prev, "using", full)
			}
			picked[name] = full
		}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create target: %w", err)
	}

	staged := make([]string, 0, len(picked))
	for name, src := range picked {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dst := filepath.Join(target, name)
		if err := cp.Copy(src, dst); err != nil {
			return nil, fmt.Errorf("copy %s: %w", src, err)
		}
		s.logger.Debug("staged", "src", src, "dst", dst)
		staged = append(staged, dst)
	}
	sort.Strings(staged)
	return staged, nil
}
