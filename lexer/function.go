package lexer

import (
	"strings"

	"github.com/loreline-lang/loreline/token"
)

// scanFunctionLiteral scans a `function name(args) { ... }` or indented
// `function name(args)` block, per spec.md §4.1's "Function literals"
// subsection. The entire construct, from the `function` keyword through
// its final newline, is captured verbatim as FunctionPayload.Code; a
// function whose body is empty (no body lines at all) is marked External.
func (l *Lexer) scanFunctionLiteral() token.Token {
	outerStart := l.pos
	keywordCol := l.startCol

	for range "function" {
		l.advance()
	}

	l.skipInlineSpaces()

	name := ""
	if isIdentifierStart(l.peek()) {
		start := l.pos
		for isIdentifierContinue(l.peek()) {
			l.advance()
		}
		name = l.src.Slice(start, l.pos)
		l.skipInlineSpaces()
	}

	var args []string
	if l.peek() == '(' {
		args = l.scanFunctionArgs()
		l.skipInlineSpaces()
	}

	var external bool
	if l.peek() == '{' {
		l.scanFunctionBraceBody()
	} else {
		external = l.scanFunctionIndentBody(keywordCol)
	}

	// Code captures through the line's trailing newline verbatim, per
	// spec.md §4.1, but the cursor itself is left sitting right before
	// that newline so the ordinary line-break/indentation scan still
	// processes it next — the token's Position therefore does not include
	// it, keeping the flat stream's offset/length invariant intact.
	codeEnd := l.pos
	if l.peek() == '\r' && l.peekAt(1) == '\n' {
		codeEnd = l.pos + 2
	} else if l.peek() == '\n' || l.peek() == '\r' {
		codeEnd = l.pos + 1
	}

	code := l.src.Slice(outerStart, codeEnd)
	pos := l.finishPos(outerStart)

	payload := &token.FunctionPayload{Name: name, Args: args, Code: code, External: external}
	return l.record(token.Token{Kind: token.KFunction, Position: pos, Function: payload})
}

// scanFunctionArgs scans a parenthesized, comma-separated argument list,
// tolerant of nested parens within default-value expressions.
func (l *Lexer) scanFunctionArgs() []string {
	l.advance() // '('
	start := l.pos
	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(start), "unterminated function argument list")
		}
		switch l.peek() {
		case '(':
			depth++
			l.advance()
		case ')':
			depth--
			l.advance()
		case '"':
			l.skipQuotedLiteral()
		default:
			l.advance()
		}
	}
	inner := l.src.Slice(start, l.pos-1)
	return splitTopLevelArgs(inner)
}

// skipQuotedLiteral consumes a `"..."` literal without producing a token,
// used while scanning raw text spans (function argument lists) that must
// not misinterpret `(` / `)` inside string content.
func (l *Lexer) skipQuotedLiteral() {
	l.advance() // opening quote
	for {
		if l.atEOF() || l.peek() == '\n' {
			l.addError(Fatal, l.finishPos(l.pos), "unterminated string literal in function arguments")
		}
		if l.peek() == '\\' {
			l.advance()
			if l.atEOF() {
				l.addError(Fatal, l.finishPos(l.pos), "unterminated string literal in function arguments")
			}
			l.advance()
			continue
		}
		if l.peek() == '"' {
			l.advance()
			return
		}
		l.advance()
	}
}

func splitTopLevelArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	runes := []rune(s)
	for i, r := range runes {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(string(runes[start:i])))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(string(runes[start:])))
	return args
}

// scanFunctionBraceBody consumes a `{ ... }` body, counting nested braces
// and skipping over quoted-string content, without producing any tokens —
// the body is opaque, owned entirely by the external code evaluator
// (spec.md §6).
func (l *Lexer) scanFunctionBraceBody() {
	l.advance() // '{'
	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(l.pos), "unterminated function body")
		}
		switch l.peek() {
		case '{':
			depth++
			l.advance()
		case '}':
			depth--
			l.advance()
		case '"':
			l.skipQuotedLiteral()
		case '\n':
			l.line++
			l.col = 0
			l.advance()
		default:
			l.advance()
		}
	}
}

// scanFunctionIndentBody consumes an indentation-delimited body: the first
// non-blank following line establishes the required indentation (which
// must exceed keywordCol), and the body ends at the first line whose
// indentation is not greater than keywordCol. The cursor is left at the
// end of the last body line (or of the header when there is none), before
// its newline. Reports whether no body lines were found at all (an
// external/native function declaration).
func (l *Lexer) scanFunctionIndentBody(keywordCol int) bool {
	sawBody := false
	endPos, endLine, endCol := l.pos, l.line, l.col
	for {
		if l.peek() != '\n' && l.peek() != '\r' {
			l.pos, l.line, l.col = endPos, endLine, endCol
			return !sawBody
		}
		r := l.advance()
		if r == '\r' && l.peek() == '\n' {
			l.advance()
		}
		l.line++
		l.col = 1

		width, consumed := l.measureLeadingWhitespace(l.pos)
		after := l.pos + consumed

		if isBlankAt(l.src.At(after)) {
			// Blank line: keep scanning, it may belong to the body or to
			// trailing whitespace after it; tentatively consume and retry.
			l.pos = after
			l.col += consumed
			continue
		}

		if width <= keywordCol {
			l.pos, l.line, l.col = endPos, endLine, endCol
			return !sawBody
		}

		sawBody = true
		l.pos = after
		l.col += consumed
		for !l.atEOF() && l.peek() != '\n' && l.peek() != '\r' {
			l.advance()
		}
		endPos, endLine, endCol = l.pos, l.line, l.col
	}
}
