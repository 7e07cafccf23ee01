// Package position provides source-position bookkeeping shared by the
// lexer and the AST: a value-typed Position and a code-point-aware view
// over a UTF-8 source string.
package position

import "fmt"

// Position identifies a span of source text. Line and Column are 1-based;
// Offset and Length are counted in code points (runes), not bytes, so that
// positions remain meaningful to editor tooling operating on UTF-8 text
// with multi-byte characters.
type Position struct {
	Line   int
	Column int
	Offset int
	Length int
}

// Zero is the position assigned to an empty source's lone Eof token.
var Zero = Position{Line: 1, Column: 1, Offset: 0, Length: 0}

// End returns the code-point offset one past the end of the span.
func (p Position) End() int {
	return p.Offset + p.Length
}

// Contains reports whether offset (in code points) falls within the span.
func (p Position) Contains(offset int) bool {
	return offset >= p.Offset && offset < p.End()
}

// Extend returns a new Position spanning from p's start to other's end.
// Line/Column are taken from p (the earlier position).
func (p Position) Extend(other Position) Position {
	end := other.End()
	return Position{
		Line:   p.Line,
		Column: p.Column,
		Offset: p.Offset,
		Length: end - p.Offset,
	}
}

// WithLength returns a copy of p with Length replaced.
func (p Position) WithLength(length int) Position {
	p.Length = length
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
