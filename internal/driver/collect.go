package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"buckfmt/internal/project"
)

// CollectBuildFiles expands paths into a sorted, duplicate-free list of
// build files. Directories are walked recursively: only files whose base
// name is a configured build file name are picked up, and skip_dirs are
// never entered. Paths naming a file are taken as given.
func CollectBuildFiles(ctx context.Context, paths []string, cfg project.Config) ([]string, error) {
	c := collector{ctx: ctx, cfg: cfg, seen: make(map[string]bool)}
	for _, p := range paths {
		if err := c.collect(p); err != nil {
			return nil, err
		}
	}
	slices.Sort(c.files)
	return c.files, nil
}

type collector struct {
	ctx   context.Context
	cfg   project.Config
	seen  map[string]bool
	files []string
}

func (c *collector) collect(root string) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(root)
	switch {
	case err != nil:
		return err
	case !info.IsDir():
		c.add(root)
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// корень обходим всегда, даже если он в skip_dirs
			if path != root && c.cfg.IsSkipped(d.Name()) {
				return filepath.SkipDir
			}
			return c.ctx.Err()
		}
		if d.Type().IsRegular() && c.cfg.IsBuildFile(d.Name()) {
			c.add(path)
		}
		return nil
	})
}

func (c *collector) add(path string) {
	path = filepath.Clean(path)
	if !c.seen[path] {
		c.seen[path] = true
		c.files = append(c.files, path)
	}
}
