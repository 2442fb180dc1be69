package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("BUCK", []byte("a\nbc\n\nd"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}}, // the '\n' belongs to line 1
		{2, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 3}},
		{5, LineCol{Line: 3, Col: 1}},
		{6, LineCol{Line: 4, Col: 1}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Fatalf("offset %d: got %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("BUCK", []byte("first\nsecond\n")))
	if got := f.Line(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.Line(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.Line(3); got != "" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.Line(9); got != "" {
		t.Fatalf("line 9 = %q", got)
	}
}

func TestLoadStripsBOMAndRestores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BUCK")
	raw := []byte("\xEF\xBB\xBFfoo(\r\n  name = 'x',\r\n)\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected BOM flag, got %b", f.Flags)
	}
	if string(f.Content) != "foo(\r\n  name = 'x',\r\n)\r\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if got := f.Restore(f.Content); string(got) != string(raw) {
		t.Fatalf("Restore = %q, want %q", got, raw)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "BUCK")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := cleanPath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "BUCK")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "nested/BUCK" {
		t.Fatalf("expected relative path, got %q", got)
	}
}

func TestAddRawKeepsLoneCR(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddRaw("BUCK", []byte("a\rb\n")))
	if f.Flags != 0 {
		t.Fatalf("flags = %b, want none", f.Flags)
	}
	if got := f.Restore([]byte("x\n")); string(got) != "x\n" {
		t.Fatalf("Restore changed unflagged content: %q", got)
	}
}

func TestAddRawKeepsMixedLineEndings(t *testing.T) {
	raw := "# a\r\nx = 1\nrule()\n"
	fs := NewFileSet()
	f := fs.Get(fs.AddRaw("BUCK", []byte(raw)))
	if string(f.Content) != raw {
		t.Fatalf("content %q, want %q", f.Content, raw)
	}
	if got := f.Line(1); got != "# a\r" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.Restore(f.Content); string(got) != raw {
		t.Fatalf("Restore = %q", got)
	}
}

func TestAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("./pkg//BUCK", []byte("one"))
	b := fs.AddVirtual("pkg/BUCK", []byte("two"))
	if a == b {
		t.Fatalf("same id for two adds")
	}
	if fs.Get(a).Path != "pkg/BUCK" || string(fs.Get(a).Content) != "one" {
		t.Fatalf("first file = %+v", fs.Get(a))
	}
}
