package token

import (
	"fmt"
	"sort"
)

// Position is a resolved source location.
type Position struct {
	Filename string // optional
	Line     int    // 1-based
	Column   int    // 1-based, in bytes
	Offset   int    // 0-based byte offset
}

// String returns "file:line:column" or "line:column" when there is no file.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}

// File maps byte offsets of one source buffer to line and column numbers.
type File struct {
	name  string
	size  int
	lines []int // offset of the first byte of each line
}

// NewFile indexes the line starts of src. Line terminators are LF, CR, CRLF,
// U+2028 and U+2029.
func NewFile(name string, src []byte) *File {
	f := &File{name: name, size: len(src), lines: []int{0}}
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\n':
			f.lines = append(f.lines, i+1)
		case c == '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			f.lines = append(f.lines, i+1)
		case c == 0xE2 && i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xA8 || src[i+2] == 0xA9):
			i += 2
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// Name returns the file name given to NewFile.
func (f *File) Name() string { return f.name }

// Size returns the length of the indexed source.
func (f *File) Size() int { return f.size }

// LineCount returns the number of lines.
func (f *File) LineCount() int { return len(f.lines) }

// Position resolves offset. Offsets past the end clamp to the end.
func (f *File) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > f.size {
		offset = f.size
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	return Position{
		Filename: f.name,
		Line:     i + 1,
		Column:   offset - f.lines[i] + 1,
		Offset:   offset,
	}
}
