package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindProjectRootPrefersBuckconfig(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".buckconfig"), "")
	write(t, filepath.Join(root, "sub", ConfigName), "")
	start := filepath.Join(root, "sub", "deeper")
	if err := os.MkdirAll(start, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindProjectRoot(start)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: %v %v", ok, err)
	}
	if got != root {
		t.Fatalf("root = %q, want %q", got, root)
	}
}

func TestFindProjectRootFallsBackToToml(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ConfigName), "")
	write(t, filepath.Join(root, "pkg", "BUCK"), "")

	got, ok, err := FindProjectRoot(filepath.Join(root, "pkg", "BUCK"))
	if err != nil || !ok || got != root {
		t.Fatalf("got %q %v %v", got, ok, err)
	}
}

func TestLoadDefaultsWithoutConfig(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".buckconfig"), "[alias]\nx = //y:z\n")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Root = root
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestLoadReadsTomlAndBuildfileName(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".buckconfig"), "[buildfile]\n  name = BUCK.v2\n")
	write(t, filepath.Join(root, ConfigName), `
[deps]
keywords = ["deps", "exported_deps", " deps "]

[files]
skip_dirs = ["third-party"]
`)
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"deps", "exported_deps"}, cfg.Keywords); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BUCK.v2", "BUCK", "TARGETS"}, cfg.FileNames); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if !cfg.IsSkipped("third-party") || cfg.IsSkipped("buck-out") {
		t.Fatalf("skip dirs %v", cfg.SkipDirs)
	}
}

func TestExplicitNamesWinOverBuckconfig(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".buckconfig"), "[buildfile]\nname = BUCK.v2\n")
	write(t, filepath.Join(root, ConfigName), "[files]\nnames = [\"BUILD\"]\n")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"BUILD"}, cfg.FileNames); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !cfg.IsBuildFile("BUILD") || cfg.IsBuildFile("BUCK") {
		t.Fatalf("IsBuildFile mismatch")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, ConfigName))
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("missing file: %v", err)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	write(t, unknown, "[deps]\nkeyword = \"deps\"\n")
	if _, err := LoadFile(unknown); err == nil {
		t.Fatalf("unknown keys must be rejected")
	}

	empty := filepath.Join(dir, "empty.toml")
	write(t, empty, "[deps]\nkeywords = []\n")
	if _, err := LoadFile(empty); err == nil {
		t.Fatalf("empty keyword list must be rejected")
	}

	broken := filepath.Join(dir, "broken.toml")
	write(t, broken, "[deps\n")
	if _, err := LoadFile(broken); err == nil {
		t.Fatalf("syntax errors must be reported")
	}
}

func TestCombineDependsOnParts(t *testing.T) {
	c := Sum([]byte("deps = []"))
	a := Combine(c, KeywordsDigest([]string{"deps"}))
	b := Combine(c, KeywordsDigest([]string{"deps", "exported_deps"}))
	if a == b {
		t.Fatalf("keyword sets must change the digest")
	}
	if a != Combine(c, KeywordsDigest([]string{"deps"})) {
		t.Fatalf("digest must be deterministic")
	}
}
