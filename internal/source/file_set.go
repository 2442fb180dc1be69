package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns the files of one run and resolves spans against them.
// File IDs are never reused: adding the same path twice gives two files.
type FileSet struct {
	files   []File
	baseDir string // "" - текущая директория
}

func NewFileSet() *FileSet { return &FileSet{} }

// NewFileSetWithBase renders paths relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir is the directory display paths are relative to.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores already-normalized content. It panics when the file or the
// set outgrows uint32 offsets.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, newFile(id, cleanPath(path), content, flags))
	return id
}

// AddRaw strips a BOM and records it in the file flags.
func (fs *FileSet) AddRaw(path string, raw []byte) FileID {
	content, flags := normalize(raw)
	return fs.Add(path, content, flags)
}

// AddVirtual adds an in-memory file (stdin, tests) as is.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk and adds it with AddRaw.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return 0, err
	}
	return fs.AddRaw(path, raw), nil
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

// Resolve converts both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

// DisplayPath is the file path relative to BaseDir when it lies inside it.
func (fs *FileSet) DisplayPath(id FileID) string {
	f := fs.Get(id)
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if rel, err := RelativePath(f.Path, fs.BaseDir()); err == nil {
		return rel
	}
	return f.Path
}

// cleanPath gives one slash-separated form for paths in output and diffs.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to baseDir, or the cleaned absolute
// path when path lies outside baseDir.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(absPath), nil
	}
	return cleanPath(rel), nil
}
