package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"buckfmt/internal/buckconfig"
)

// ErrNoConfig reports that buckfmt.toml does not exist.
var ErrNoConfig = errors.New("no " + ConfigName)

// Config is the effective formatter configuration of one project.
type Config struct {
	Root      string   // "" when no project root was found
	Keywords  []string // properties whose arrays are sorted
	FileNames []string // build file names to pick up when walking directories
	SkipDirs  []string // directory names never descended into
}

type fileConfig struct {
	Deps struct {
		Keywords []string `toml:"keywords"`
	} `toml:"deps"`
	Files struct {
		Names    []string `toml:"names"`
		SkipDirs []string `toml:"skip_dirs"`
	} `toml:"files"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keywords:  []string{"deps"},
		FileNames: []string{"BUCK", "TARGETS"},
		SkipDirs:  []string{"buck-out", ".git", ".hg"},
	}
}

// LoadFile decodes a buckfmt.toml over the defaults. Keys the config does
// not know are an error, not silently ignored.
func LoadFile(path string) (Config, error) {
	cfg, _, err := loadFile(path)
	return cfg, err
}

func loadFile(path string) (cfg Config, namesSet bool, err error) {
	cfg = Default()
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, false, fmt.Errorf("%s: %w", path, ErrNoConfig)
	}
	if err != nil {
		return cfg, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, false, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("deps", "keywords") {
		cfg.Keywords = clean(fc.Deps.Keywords)
		if len(cfg.Keywords) == 0 {
			return cfg, false, fmt.Errorf("%s: [deps].keywords must not be empty", path)
		}
	}
	if meta.IsDefined("files", "names") {
		cfg.FileNames = clean(fc.Files.Names)
		namesSet = true
	}
	if meta.IsDefined("files", "skip_dirs") {
		cfg.SkipDirs = clean(fc.Files.SkipDirs)
	}
	return cfg, namesSet, nil
}

// Load finds the project root above startDir and reads its configuration.
// Without buckfmt.toml the defaults apply, with the build file name taken
// from .buckconfig [buildfile] when it is set there.
func Load(startDir string) (Config, error) {
	root, ok, err := FindProjectRoot(startDir)
	if err != nil {
		return Default(), err
	}
	if !ok {
		return Default(), nil
	}

	cfg, namesSet, err := loadFile(filepath.Join(root, ConfigName))
	if err != nil && !errors.Is(err, ErrNoConfig) {
		return cfg, err
	}
	cfg.Root = root

	if !namesSet {
		name, err := buckconfig.BuildFileName(root)
		if err != nil {
			return cfg, err
		}
		if name != "" && !slices.Contains(cfg.FileNames, name) {
			cfg.FileNames = append([]string{name}, cfg.FileNames...)
		}
	}
	return cfg, nil
}

// IsBuildFile matches a base name against the configured file names.
func (c Config) IsBuildFile(name string) bool {
	return slices.Contains(c.FileNames, name)
}

// IsSkipped matches a directory base name against skip_dirs.
func (c Config) IsSkipped(name string) bool {
	return slices.Contains(c.SkipDirs, name)
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
