package lexer

import (
	"strconv"
	"strings"

	"github.com/loreline-lang/loreline/token"
)

// symbolTable lists every punctuation/operator spelling, longest first so
// a greedy scan never mistakes e.g. "->" for "-" followed by ">".
var symbolTable = []struct {
	text string
	kind token.Kind
}{
	{"->", token.KArrow},
	{"+=", token.KPlusAssign},
	{"-=", token.KMinusAssign},
	{"*=", token.KMultiplyAssign},
	{"/=", token.KDivideAssign},
	{"==", token.KEquals},
	{"!=", token.KNotEquals},
	{">=", token.KGreaterEq},
	{"<=", token.KLessEq},
	{"&&", token.KAnd},
	{"||", token.KOr},
	{"{", token.KLBrace},
	{"}", token.KRBrace},
	{"(", token.KLParen},
	{")", token.KRParen},
	{"[", token.KLBracket},
	{"]", token.KRBracket},
	{":", token.KColon},
	{",", token.KComma},
	{".", token.KDot},
	{"=", token.KAssign},
	{"+", token.KPlus},
	{"-", token.KMinus},
	{"*", token.KMultiply},
	{"/", token.KDivide},
	{"%", token.KModulo},
	{">", token.KGreater},
	{"<", token.KLess},
	{"!", token.KNot},
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

// scanCore scans exactly one token of the conventional expression grammar:
// an operator/punctuation symbol, an identifier/keyword, or a numeric
// literal. Called once unquoted-string recognition has been ruled out.
func (l *Lexer) scanCore() token.Token {
	r := l.peek()

	switch {
	case isIdentifierStart(r):
		return l.scanIdentifier()
	case isDigit(r):
		return l.scanNumber()
	}

	for _, sym := range symbolTable {
		if l.matchesLiteralAhead(sym.text) {
			start := l.pos
			for range sym.text {
				l.advance()
			}
			tok := token.Token{Kind: sym.kind, Position: l.finishPos(start)}
			// single '&' / '|' are recoverable, folded into && / ||.
			return l.record(tok)
		}
	}

	if r == '&' || r == '|' {
		start := l.pos
		l.advance()
		pos := l.finishPos(start)
		kind := token.KAnd
		if r == '|' {
			kind = token.KOr
		}
		l.addError(Recoverable, pos, "single '%c' treated as '%c%c'", r, r, r)
		return l.record(token.Token{Kind: kind, Position: pos})
	}

	start := l.pos
	bad := l.advance()
	pos := l.finishPos(start)
	l.addError(Fatal, pos, "unexpected character %q", bad)
	return token.Token{} // unreachable: addError panics on Fatal
}

func (l *Lexer) matchesLiteralAhead(lit string) bool {
	for i, want := range lit {
		if l.peekAt(i) != want {
			return false
		}
	}
	return true
}

// scanIdentifier scans an identifier, classifying it as a keyword token
// when its spelling matches the reserved-word table.
func (l *Lexer) scanIdentifier() token.Token {
	start := l.pos
	for isIdentifierContinue(l.peek()) {
		l.advance()
	}
	text := l.src.Slice(start, l.pos)
	pos := l.finishPos(start)

	if kind, ok := token.Keywords[text]; ok {
		tok := token.Token{Kind: kind, Position: pos}
		switch kind {
		case token.KBoolean:
			tok.BoolValue = text == "true"
		case token.KAnd, token.KOr:
			tok.Word = true
		}
		return l.record(tok)
	}

	return l.record(token.Token{Kind: token.KIdentifier, Position: pos, Text: text})
}

// scanNumber scans an integer or decimal literal. No exponent and no sign
// inside the literal, per spec.md §4.1.
func (l *Lexer) scanNumber() token.Token {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	text := l.src.Slice(start, l.pos)
	pos := l.finishPos(start)
	val, _ := strconv.ParseFloat(text, 64)
	return l.record(token.Token{Kind: token.KNumber, Position: pos, NumberValue: val})
}

// scanLineComment scans a `//` comment to end of line.
func (l *Lexer) scanLineComment() token.Token {
	start := l.pos
	l.advance()
	l.advance()
	contentStart := l.pos
	for !l.atEOF() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	content := l.src.Slice(contentStart, l.pos)
	pos := l.finishPos(start)
	return l.record(token.Token{Kind: token.KCommentLine, Position: pos, Text: content})
}

// scanBlockComment scans a `/* ... */` comment, nestable, and fatal if
// unterminated.
func (l *Lexer) scanBlockComment() token.Token {
	start := l.pos
	l.advance()
	l.advance()
	contentStart := l.pos
	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(start), "unterminated block comment")
		}
		if l.peek() == '/' && l.peekAt(1) == '*' {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		if l.peek() == '\n' {
			l.line++
			l.col = 0
		}
		l.advance()
	}
	contentEnd := l.pos - 2
	content := l.src.Slice(contentStart, contentEnd)
	pos := l.finishPos(start)
	return l.record(token.Token{Kind: token.KCommentBlock, Position: pos, Text: strings.TrimSpace(content)})
}
