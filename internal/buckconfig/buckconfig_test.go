package buckconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `[project]
  ignore = buck-out
[alias]
  # comment = //not:used
  app = //apps/main:app
  lib=//libs/core:core
  broken line
  url = //x:y=z
  app = //apps/other:app
[buildfile]
  name = TARGETS
[alias]
  late = //late:late
`

func TestParseAliases(t *testing.T) {
	a, err := ParseAliases(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseAliases: %v", err)
	}
	want := []string{"app", "lib", "url"}
	if diff := cmp.Diff(want, a.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	cases := map[string]string{
		"app": "//apps/other:app", // последнее значение побеждает
		"lib": "//libs/core:core",
		"url": "//x:y=z", // делим по первому '='
	}
	for name, want := range cases {
		got, ok := a.Resolve(name)
		if !ok || got != want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
	if _, ok := a.Resolve("late"); ok {
		t.Fatalf("a second [alias] section must not be read")
	}
}

func TestParseAliasesWithoutSection(t *testing.T) {
	a, err := ParseAliases(strings.NewReader("[project]\nx = y\n"))
	if err != nil {
		t.Fatalf("ParseAliases: %v", err)
	}
	if a.Len() != 0 {
		t.Fatalf("expected no aliases, got %v", a.Names())
	}
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	a, err := LoadAliases(dir)
	if err != nil || a.Len() != 0 {
		t.Fatalf("missing file: %v %v", a.Names(), err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	a, err = LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("got %v", a.Names())
	}
}

func TestBuildFileName(t *testing.T) {
	dir := t.TempDir()
	if name, err := BuildFileName(dir); err != nil || name != "" {
		t.Fatalf("missing file: %q %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	name, err := BuildFileName(dir)
	if err != nil || name != "TARGETS" {
		t.Fatalf("got %q %v", name, err)
	}
}
