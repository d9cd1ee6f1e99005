// Package line converts between byte offsets into a module's source text
// and the editor protocol's (line, character) positions. Characters are
// counted in UTF-16 code units, per the protocol convention, so every
// conversion decodes the source rather than counting bytes.
package line

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
)

// LineNumbers is the derived line-start table for one source text.
type LineNumbers struct {
	LineStarts []int
	Length     int

	src string
}

// New builds the table. Line 0 starts at offset 0; a new line starts just
// after every '\n'.
func New(src string) *LineNumbers {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineNumbers{LineStarts: starts, Length: len(src), src: src}
}

// ByteIndex converts a protocol position to a byte offset. Characters
// requested beyond the end of the line clamp to the end of the line.
func (l *LineNumbers) ByteIndex(line, character protocol.UInteger) int {
	if int(line) >= len(l.LineStarts) {
		return l.Length
	}
	start := l.LineStarts[int(line)]
	end := l.lineEnd(int(line))

	remaining := int(character)
	offset := start
	for offset < end && remaining > 0 {
		r, size := utf8.DecodeRuneInString(l.src[offset:])
		units := 1
		if r > 0xFFFF {
			units = 2
		}
		if units > remaining {
			break
		}
		remaining -= units
		offset += size
	}
	return offset
}

// Position converts a byte offset to a protocol position.
func (l *LineNumbers) Position(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > l.Length {
		offset = l.Length
	}

	// Last line start <= offset.
	idx := sort.Search(len(l.LineStarts), func(i int) bool {
		return l.LineStarts[i] > offset
	}) - 1

	start := l.LineStarts[idx]
	character := 0
	for pos := start; pos < offset; {
		r, size := utf8.DecodeRuneInString(l.src[pos:])
		if r > 0xFFFF {
			character += 2
		} else {
			character++
		}
		pos += size
	}
	return protocol.Position{
		Line:      protocol.UInteger(idx),
		Character: protocol.UInteger(character),
	}
}

// SpanToRange converts a byte-offset span to a protocol range.
func (l *LineNumbers) SpanToRange(span ast.Span) protocol.Range {
	return protocol.Range{
		Start: l.Position(span.Start),
		End:   l.Position(span.End),
	}
}

// IsLineStart reports whether the offset begins a line.
func (l *LineNumbers) IsLineStart(offset int) bool {
	idx := sort.SearchInts(l.LineStarts, offset)
	return idx < len(l.LineStarts) && l.LineStarts[idx] == offset
}

// lineEnd is the offset of the line's terminator, or the text's end for
// the final line.
func (l *LineNumbers) lineEnd(line int) int {
	if line+1 < len(l.LineStarts) {
		end := l.LineStarts[line+1] - 1 // before the '\n'
		if end > 0 && end <= l.Length && end-1 >= 0 && l.src[end-1] == '\r' {
			end--
		}
		return end
	}
	return l.Length
}

// Overlaps reports whether any part of either range overlaps the other.
// Range ends are treated as exclusive.
func Overlaps(a, b protocol.Range) bool {
	return within(a.Start, b) || within(a.End, b) || within(b.Start, a) || within(b.End, a)
}

func within(position protocol.Position, r protocol.Range) bool {
	return !positionBefore(position, r.Start) && positionBefore(position, r.End)
}

func positionBefore(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
