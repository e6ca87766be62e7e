package token

import "fmt"

// Position is a point in the input query text. Line and Column are
// 1-based as reported in error messages; Offset is the 0-based byte
// offset into the raw SQL string.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether the position was produced by the lexer.
// The zero Position is not valid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String renders the position the way parse errors report it.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Span is the byte range a node covers in the input query, from the
// start of its first token up to (not including) the token after it.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid reports whether both ends of the span were set.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
