// Package document provides line/offset queries over a text file.
//
// Offsets are character (rune) offsets. Lines are 0-based here and are
// surfaced 1-based by callers.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Document is an immutable view of a file's text.
type Document struct {
	path    string
	runes   []rune
	lineIdx []uint32 // rune offset of each line start; lineIdx[0] == 0
}

// New builds a Document from content. Invalid UTF-8 bytes become U+FFFD
// and count as one character.
func New(path string, content []byte) (*Document, error) {
	runes := make([]rune, 0, utf8.RuneCount(content))
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		runes = append(runes, r)
		content = content[size:]
	}
	idx, err := buildLineIndex(runes)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return &Document{path: path, runes: runes, lineIdx: idx}, nil
}

// FromString is New for in-memory text.
func FromString(path, text string) (*Document, error) {
	return New(path, []byte(text))
}

// Load reads path from disk.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return New(path, content)
}

func buildLineIndex(runes []rune) ([]uint32, error) {
	idx := []uint32{0}
	for i, r := range runes {
		if r != '\n' {
			continue
		}
		next, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return nil, fmt.Errorf("document too large: %w", err)
		}
		idx = append(idx, next)
	}
	return idx, nil
}

// Path returns the path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Name returns the base name of the document's path.
func (d *Document) Name() string { return filepath.Base(d.path) }

// Len returns the document length in characters.
func (d *Document) Len() int { return len(d.runes) }

// LineCount returns the number of lines. A trailing newline starts an
// empty last line.
func (d *Document) LineCount() int { return len(d.lineIdx) }

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.runes) {
		return len(d.runes)
	}
	return offset
}

// LineOf returns the 0-based line containing offset. Offsets outside the
// document are clamped.
func (d *Document) LineOf(offset int) int {
	offset = d.clamp(offset)
	// first line start greater than offset, minus one
	return sort.Search(len(d.lineIdx), func(i int) bool {
		return int(d.lineIdx[i]) > offset
	}) - 1
}

// LineBounds returns the start and end offsets of a 0-based line. end
// excludes the line terminator. Out-of-range lines are clamped.
func (d *Document) LineBounds(line int) (start, end int) {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineIdx) {
		line = len(d.lineIdx) - 1
	}
	start = int(d.lineIdx[line])
	if line+1 < len(d.lineIdx) {
		end = int(d.lineIdx[line+1]) - 1
	} else {
		end = len(d.runes)
	}
	if end > start && d.runes[end-1] == '\r' {
		end--
	}
	return start, end
}

// LineText returns the text of a 0-based line without its terminator.
func (d *Document) LineText(line int) string {
	start, end := d.LineBounds(line)
	return string(d.runes[start:end])
}

// Slice returns the text between two offsets.
func (d *Document) Slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if end < start {
		start, end = end, start
	}
	return string(d.runes[start:end])
}

// Offset converts a 1-based line and 1-based column into an offset. A
// column of 0 or less means the start of the line; columns past the end
// of the line stop at the line end.
func (d *Document) Offset(line, col int) int {
	start, end := d.LineBounds(line - 1)
	if line-1 >= len(d.lineIdx) {
		return end
	}
	if col <= 1 {
		return start
	}
	off := start + col - 1
	if off > end {
		return end
	}
	return off
}

// FromUTF16 converts an offset counted in UTF-16 code units into a rune
// offset. An offset that splits a surrogate pair moves past that
// character; offsets past the end stop at Len.
func (d *Document) FromUTF16(units int) int {
	return d.advanceUTF16(0, units)
}

// OffsetUTF16 is Offset with the column counted in UTF-16 code units.
func (d *Document) OffsetUTF16(line, col int) int {
	start, end := d.LineBounds(line - 1)
	if line-1 >= len(d.lineIdx) {
		return end
	}
	if col <= 1 {
		return start
	}
	off := d.advanceUTF16(start, col-1)
	if off > end {
		return end
	}
	return off
}

func (d *Document) advanceUTF16(from, units int) int {
	i := d.clamp(from)
	for units > 0 && i < len(d.runes) {
		units -= utf16.RuneLen(d.runes[i])
		i++
	}
	return i
}
