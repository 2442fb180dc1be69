package diagfmt

import (
	"path/filepath"

	"buckfmt/internal/source"
)

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	// PathModeAuto prints the FileSet display path, or the basename of a
	// long absolute path.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// autoPathLimit is the longest path PathModeAuto prints in full.
const autoPathLimit = 48

func displayPath(fs *source.FileSet, f *source.File, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if base == "" {
			base = fs.BaseDir()
		}
		if rel, err := source.RelativePath(f.Path, base); err == nil {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		p := f.Path
		if f.Flags&source.FileVirtual == 0 {
			p = fs.DisplayPath(f.ID)
		}
		if len(p) > autoPathLimit && filepath.IsAbs(p) {
			return filepath.Base(p)
		}
		return p
	}
}
