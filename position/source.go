package position

import "unicode/utf8"

// Source is a code-point indexed, read-only view over a UTF-8 source
// string. The lexer advances through it one rune at a time while keeping
// Position.Offset/Length in code-point units as spec.md requires, rather
// than the byte offsets a naive string slice would give.
type Source struct {
	text    string
	runes   []rune
	newline []int // code-point offsets of '\n' characters, ascending
}

// NewSource decodes text into a Source. Decoding happens once, up front,
// so that subsequent indexing by code point is O(1).
func NewSource(text string) *Source {
	runes := make([]rune, 0, len(text))
	newline := make([]int, 0, 16)
	for i, r := range text {
		_ = i
		if r == '\n' {
			newline = append(newline, len(runes))
		}
		runes = append(runes, r)
	}
	return &Source{text: text, runes: runes, newline: newline}
}

// Len returns the number of code points in the source.
func (s *Source) Len() int { return len(s.runes) }

// At returns the rune at code-point offset i, or utf8.RuneError if out of
// range (callers treat that as EOF).
func (s *Source) At(i int) rune {
	if i < 0 || i >= len(s.runes) {
		return utf8.RuneError
	}
	return s.runes[i]
}

// Slice returns the substring spanning code points [start, end).
func (s *Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.runes) {
		end = len(s.runes)
	}
	if start >= end {
		return ""
	}
	return string(s.runes[start:end])
}

// Text returns the full source text.
func (s *Source) Text() string { return s.text }
