// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/u-root/u-root/pkg/cp"

	"github.com/kushview/eltool/pkg/platform"
)

const (
	dirMode    fs.FileMode = 0o755
	binaryMode fs.FileMode = 0o755
	fileMode   fs.FileMode = 0o644

	frameworkVersion = "A"
)

type (
	// Builder assembles bundles on disk.
	Builder struct {
		logger *log.Logger
	}

	// Result describes an assembled bundle.
	Result struct {
		// Path is the bundle directory.
		Path string
		// Entries lists created files and links relative to Path.
		Entries []string
	}

	// plan is the full set of filesystem operations for one bundle. It is
	// computed, and every input read, before anything is written.
	plan struct {
		root   string
		dirs   []string
		copies []copyOp
		writes []writeOp
		links  []linkOp
	}

	copyOp struct {
		src, dst string
		mode     fs.FileMode
	}

	writeOp struct {
		path string
		data []byte
	}

	linkOp struct {
		target, path string
	}
)

// NewBuilder returns a Builder that logs progress to logger.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{logger: logger}
}

// Build validates def and assembles the bundle. Nothing is written if
// validation fails.
func (b *Builder) Build(ctx context.Context, def Definition) (*Result, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	def = def.withDefaults()

	p, err := newPlan(def)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Debug("assembling bundle", "type", def.Type, "path", p.root)
	if def.Force {
		if err := os.RemoveAll(p.root); err != nil {
			return nil, fmt.Errorf("remove existing bundle: %w", err)
		}
	}
	if err := p.apply(ctx, b.logger); err != nil {
		return nil, err
	}
	return &Result{Path: p.root, Entries: p.entries()}, nil
}

func newPlan(d Definition) (*plan, error) {
	p := &plan{root: filepath.Join(d.OutDir, d.Name+d.Type.Extension())}

	var err error
	switch d.Type {
	case TypeMacApp, TypeComponent:
		err = p.addMacBundle(d, filepath.Join(p.root, "Contents"), "MacOS")
	case TypeVST3:
		err = p.addVST3(d)
	case TypeFramework:
		err = p.addFramework(d)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// addMacBundle lays out Contents/{<binDir>,Resources,Info.plist,PkgInfo}.
func (p *plan) addMacBundle(d Definition, contents, binDir string) error {
	bin := filepath.Join(contents, binDir)
	res := filepath.Join(contents, "Resources")
	p.dirs = append(p.dirs, bin, res)

	if d.Binary != "" {
		// A generated Info.plist names the executable after the bundle.
		name := filepath.Base(d.Binary)
		if d.Plist == "" {
			name = d.Name
		}
		p.copies = append(p.copies, copyOp{src: d.Binary, dst: filepath.Join(bin, name), mode: binaryMode})
	}

	info, err := infoPlistData(d, d.Binary != "")
	if err != nil {
		return err
	}
	p.writes = append(p.writes,
		writeOp{path: filepath.Join(contents, "Info.plist"), data: info},
		writeOp{path: filepath.Join(contents, "PkgInfo"), data: PkgInfo(d.Type, d.Signature)},
	)
	return p.addResources(d.Resources, res)
}

func (p *plan) addVST3(d Definition) error {
	binDir, err := platform.VST3BinaryDir(d.Platform, d.Arch)
	if err != nil {
		return err
	}
	contents := filepath.Join(p.root, "Contents")
	if d.Platform == platform.Darwin {
		return p.addMacBundle(d, contents, binDir)
	}

	bin := filepath.Join(contents, binDir)
	p.dirs = append(p.dirs, bin)
	if d.Binary != "" {
		p.copies = append(p.copies, copyOp{src: d.Binary, dst: filepath.Join(bin, filepath.Base(d.Binary)), mode: binaryMode})
	}
	if len(d.Resources) > 0 {
		res := filepath.Join(contents, "Resources")
		p.dirs = append(p.dirs, res)
		return p.addResources(d.Resources, res)
	}
	return nil
}

// addFramework lays out a versioned framework:
//
//	<Name>.framework/
//	  Versions/A/<Name>
//	  Versions/A/Resources/Info.plist
//	  Versions/Current -> A
//	  <Name> -> Versions/Current/<Name>
//	  Resources -> Versions/Current/Resources
func (p *plan) addFramework(d Definition) error {
	versions := filepath.Join(p.root, "Versions")
	current := filepath.Join(versions, frameworkVersion)
	res := filepath.Join(current, "Resources")
	p.dirs = append(p.dirs, res)

	if d.Binary != "" {
		p.copies = append(p.copies, copyOp{src: d.Binary, dst: filepath.Join(current, d.Name), mode: binaryMode})
	}

	info, err := infoPlistData(d, d.Binary != "")
	if err != nil {
		return err
	}
	p.writes = append(p.writes, writeOp{path: filepath.Join(res, "Info.plist"), data: info})

	p.links = append(p.links,
		linkOp{target: frameworkVersion, path: filepath.Join(versions, "Current")},
		linkOp{target: filepath.Join("Versions", "Current", "Resources"), path: filepath.Join(p.root, "Resources")},
	)
	if d.Binary != "" {
		p.links = append(p.links, linkOp{target: filepath.Join("Versions", "Current", d.Name), path: filepath.Join(p.root, d.Name)})
	}
	return p.addResources(d.Resources, res)
}

// addResources schedules each resource file, or every file below each
// resource directory, for copying into dst.
func (p *plan) addResources(resources []string, dst string) error {
	for _, src := range resources {
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("%w: resource %s", ErrInputMissing, src)
		}
		target := filepath.Join(dst, filepath.Base(src))
		if !info.IsDir() {
			p.copies = append(p.copies, copyOp{src: src, dst: target, mode: info.Mode().Perm()})
			continue
		}

		err = filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			out := filepath.Join(target, rel)
			if entry.IsDir() {
				p.dirs = append(p.dirs, out)
				return nil
			}
			fi, err := entry.Info()
			if err != nil {
				return err
			}
			p.copies = append(p.copies, copyOp{src: path, dst: out, mode: fi.Mode().Perm()})
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan resource %s: %w", src, err)
		}
	}
	return nil
}

func (p *plan) apply(ctx context.Context, logger *log.Logger) error {
	for _, dir := range p.dirs {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for _, c := range p.copies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(c.dst), dirMode); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(c.dst), err)
		}
		if err := cp.Copy(c.src, c.dst); err != nil {
			return fmt.Errorf("copy %s: %w", c.src, err)
		}
		if err := os.Chmod(c.dst, c.mode); err != nil {
			return fmt.Errorf("chmod %s: %w", c.dst, err)
		}
		logger.Debug("copied", "src", c.src, "dst", c.dst)
	}

	for _, w := range p.writes {
		if err := os.WriteFile(w.path, w.data, fileMode); err != nil {
			return fmt.Errorf("write %s: %w", w.path, err)
		}
	}

	for _, l := range p.links {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("replace %s: %w", l.path, err)
		}
		if err := os.Symlink(l.target, l.path); err != nil {
			return fmt.Errorf("link %s: %w", l.path, err)
		}
	}
	return nil
}

// entries returns created files and links relative to the bundle root.
func (p *plan) entries() []string {
	var out []string
	add := func(path string) {
		if rel, err := filepath.Rel(p.root, path); err == nil {
			out = append(out, filepath.ToSlash(rel))
		}
	}
	for _, c := range p.copies {
		add(c.dst)
	}
	for _, w := range p.writes {
		add(w.path)
	}
	for _, l := range p.links {
		add(l.path)
	}
	return out
}

// PkgInfo returns the 8-byte PkgInfo contents: package type then creator.
func PkgInfo(t Type, signature string) []byte {
	return []byte(t.PackageType() + signature)
}

// infoPlistData returns the caller's plist, patched with identifier and
// version, or a generated one.
func infoPlistData(d Definition, hasBinary bool) ([]byte, error) {
	if d.Plist == "" {
		return generatePlist(d, hasBinary)
	}
	data, err := os.ReadFile(d.Plist)
	if err != nil {
		return nil, fmt.Errorf("read plist: %w", err)
	}
	return patchPlist(data, d.Identifier, d.Version)
}
