// Package buckconfig reads sections of a project's .buckconfig.
//
// Only the simple `key = value` subset is understood: enough for [alias]
// and [buildfile]. Values are kept as written, minus surrounding spaces.
package buckconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FileName is the config file Buck looks for at the project root.
const FileName = ".buckconfig"

// ReadSection collects `key = value` lines of the first [name] section.
//
// The section starts at a line beginning with "[name]" and ends at the next
// line beginning with '['; nothing after it is read, so a repeated header
// is ignored. Lines starting with '#' and lines without '=' are skipped.
// The line is split at the first '='; later keys overwrite earlier ones.
func ReadSection(r io.Reader, name string) (map[string]string, error) {
	header := "[" + name + "]"
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inSection := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !inSection {
			inSection = strings.HasPrefix(line, header)
			continue
		}
		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			return out, nil
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s section: %w", header, err)
	}
	return out, nil
}

// Aliases maps short names from the [alias] section to build targets.
type Aliases struct {
	targets map[string]string
}

// ParseAliases reads the [alias] section.
func ParseAliases(r io.Reader) (Aliases, error) {
	m, err := ReadSection(r, "alias")
	if err != nil {
		return Aliases{}, err
	}
	return Aliases{targets: m}, nil
}

// LoadAliases parses <projectRoot>/.buckconfig. A missing file yields no
// aliases and no error.
func LoadAliases(projectRoot string) (Aliases, error) {
	f, err := os.Open(filepath.Join(projectRoot, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Aliases{}, nil
	}
	if err != nil {
		return Aliases{}, fmt.Errorf("open %s: %w", FileName, err)
	}
	defer f.Close()
	return ParseAliases(f)
}

// Resolve returns the target an alias stands for.
func (a Aliases) Resolve(name string) (string, bool) {
	target, ok := a.targets[name]
	return target, ok
}

// Names lists the aliases in sorted order.
func (a Aliases) Names() []string {
	names := make([]string, 0, len(a.targets))
	for k := range a.targets {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Len is the number of aliases.
func (a Aliases) Len() int { return len(a.targets) }

// BuildFileName returns [buildfile] name from <projectRoot>/.buckconfig,
// or "" when the file or the key is absent.
func BuildFileName(projectRoot string) (string, error) {
	f, err := os.Open(filepath.Join(projectRoot, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", FileName, err)
	}
	defer f.Close()
	m, err := ReadSection(f, "buildfile")
	if err != nil {
		return "", err
	}
	return m["name"], nil
}
