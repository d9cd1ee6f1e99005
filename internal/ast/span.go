package ast

// Span is a half-open [Start, End) byte-offset interval into one module's
// source text. Sibling spans never overlap and a parent's span contains
// all of its children's spans.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}
