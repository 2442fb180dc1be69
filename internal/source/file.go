package source

import (
	"bytes"
	"slices"
	"sort"
)

// FileFlags records where a file came from and what loading changed.
type FileFlags uint8

const (
	// FileVirtual - добавлен из памяти (stdin, тесты), а не с диска.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM - при загрузке срезан UTF-8 BOM.
	FileHadBOM
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is one build file with its BOM stripped. Line endings stay as they
// were on disk: the lexer reads the '\r' of a "\r\n" as blank space.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	newlines []uint32 // offsets of every '\n'
}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	f := File{ID: id, Path: path, Content: content, Flags: flags}
	for i, b := range content {
		if b == '\n' {
			f.newlines = append(f.newlines, uint32(i)) // #nosec G115 -- Add rejects files over 4GiB
		}
	}
	return f
}

// LineCount is the number of lines; a trailing newline opens an empty last line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.newlines)) + 1 // #nosec G115
}

// Position converts a byte offset into a line and column.
func (f *File) Position(off uint32) LineCol {
	// число '\n' строго до off и есть 0-based номер строки
	line := sort.Search(len(f.newlines), func(i int) bool { return f.newlines[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.newlines[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} // #nosec G115
}

// Line returns line n (1-based) without its newline, or "" when n is out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	var start uint32
	if n > 1 {
		start = f.newlines[n-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115
	if int(n-1) < len(f.newlines) {
		end = f.newlines[n-1]
	}
	return string(f.Content[start:end])
}

// Restore puts the BOM back when the file had one.
func (f *File) Restore(content []byte) []byte {
	if f.Flags&FileHadBOM != 0 {
		content = append(slices.Clip(utf8BOM), content...)
	}
	return content
}

// normalize strips a leading BOM. Mixed "\r\n" and "\n" endings are left
// alone so that lines outside the rewritten arrays keep their exact bytes.
func normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		raw = rest
		flags |= FileHadBOM
	}
	return raw, flags
}
