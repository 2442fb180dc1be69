package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"buckfmt/internal/buckconfig"
)

// ConfigName is the optional formatter config at the project root.
const ConfigName = "buckfmt.toml"

// FindProjectRoot walks up from startDir. The nearest directory holding a
// .buckconfig wins; failing that, the nearest one holding buckfmt.toml.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	fallback := ""
	for {
		found, err := exists(filepath.Join(dir, buckconfig.FileName))
		if err != nil {
			return "", false, err
		}
		if found {
			return dir, true, nil
		}
		if fallback == "" {
			found, err = exists(filepath.Join(dir, ConfigName))
			if err != nil {
				return "", false, err
			}
			if found {
				fallback = dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if fallback != "" {
		return fallback, true, nil
	}
	return "", false, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}
