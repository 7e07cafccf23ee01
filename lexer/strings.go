package lexer

import (
	"github.com/loreline-lang/loreline/token"
)

// scanQuotedString scans a `"..."` literal, including escapes, `$ident…`
// and `${ … }` interpolations, and `<tag>`/`</tag>` attachments (the
// latter only when the enclosing block class is Beat).
func (l *Lexer) scanQuotedString() token.Token {
	outerStart := l.pos
	allowTags := l.parentBlockClass().parentKind() == ParentBeat

	l.advance() // opening quote
	textStart := l.pos

	var attachments []token.Attachment

	for {
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(outerStart), "unterminated string literal")
		}
		r := l.peek()
		switch {
		case r == '"':
			goto done
		case r == '\n' || r == '\r':
			l.addError(Fatal, l.finishPos(outerStart), "newline not allowed in string literal")
		case r == '\\':
			l.advance()
			if l.atEOF() {
				l.addError(Fatal, l.finishPos(outerStart), "unterminated string literal")
			}
			l.advance() // the escaped character, kept verbatim
		case r == '$' && allowsInterpolationStart(l.peekAt(1)):
			att := l.scanInterpolationAt(textStart, false)
			attachments = append(attachments, att)
		case r == '$' && l.peekAt(1) == '{':
			att := l.scanInterpolationAt(textStart, true)
			attachments = append(attachments, att)
		case r == '$':
			l.addError(Recoverable, l.finishPos(l.pos), "'$' without a valid identifier or '{' following")
			l.advance()
		case r == '<' && allowTags:
			tag := l.scanTagAt(textStart)
			attachments = append(attachments, tag)
		default:
			l.advance()
		}
	}

done:
	text := l.src.Slice(textStart, l.pos)
	l.advance() // closing quote

	token.SortAttachments(attachments)

	pos := l.finishPos(outerStart)
	payload := &token.StringPayload{Quoting: token.DoubleQuoted, Text: text, Attachments: attachments}
	return l.record(token.Token{Kind: token.KString, Position: pos, String: payload})
}

func allowsInterpolationStart(r rune) bool {
	return isIdentifierStart(r)
}

// scanInterpolationAt scans either a simple `$ident(.ident|[expr]|(args))*`
// chain or a braced `${ … }` expression, re-lexing its contents in a
// strict expression context (spec.md §4.1).
func (l *Lexer) scanInterpolationAt(textStart int, braced bool) token.Interpolation {
	offsetStart := l.pos
	l.strict.push(Strict)
	defer l.strict.pop()

	var subTokens []token.Token
	if braced {
		l.advance() // '$'
		l.advance() // '{'
		subTokens = l.withSink(func() {
			l.scanBracedInterpolationBody()
		})
	} else {
		l.advance() // '$'
		subTokens = l.withSink(func() {
			l.scanSimpleInterpolationChain()
		})
	}

	length := l.pos - offsetStart
	return token.Interpolation{
		Simple:       !braced,
		InsideTag:    false,
		SubTokens:    subTokens,
		OffsetInText: offsetStart - textStart,
		LengthInText: length,
	}
}

// scanBracedInterpolationBody scans tokens until the matching unescaped
// '}' at brace-depth zero, without emitting that closing brace as a token.
func (l *Lexer) scanBracedInterpolationBody() {
	depth := 1
	for {
		l.skipInlineSpaces()
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(l.pos), "unterminated '${ … }' interpolation")
		}
		switch l.peek() {
		case '\n', '\r':
			l.addError(Fatal, l.finishPos(l.pos), "newline not allowed inside '${ … }' interpolation")
		case '}':
			depth--
			if depth == 0 {
				l.advance()
				return
			}
			l.scanCore()
		case '"':
			l.scanQuotedString()
		default:
			if l.matchesLiteralAhead("{") {
				depth++
			}
			l.scanCore()
		}
	}
}

// scanSimpleInterpolationChain scans `ident (.ident | [expr…] | (args…))*`.
func (l *Lexer) scanSimpleInterpolationChain() {
	l.scanIdentifier()
	for {
		switch {
		case l.peek() == '.' && isIdentifierStart(l.peekAt(1)):
			l.scanCore() // Dot
			l.scanIdentifier()
		case l.peek() == '[':
			l.scanCore() // LBracket, pushes strict/bracket
			l.scanBalancedUntil(token.KRBracket)
		case l.peek() == '(':
			l.scanCore() // LParen
			l.scanBalancedUntil(token.KRParen)
		default:
			return
		}
	}
}

// scanBalancedUntil consumes tokens until it records one of closeKind at
// the matching nesting depth (both the interior content and the closer
// itself are recorded as ordinary tokens).
func (l *Lexer) scanBalancedUntil(closeKind token.Kind) {
	depth := 1
	for depth > 0 {
		l.skipInlineSpaces()
		if l.atEOF() {
			l.addError(Fatal, l.finishPos(l.pos), "unterminated interpolation expression")
		}
		if l.peek() == '"' {
			l.scanQuotedString()
			continue
		}
		tok := l.scanCore()
		switch tok.Kind {
		case token.KLBracket, token.KLParen:
			depth++
		case token.KRBracket, token.KRParen:
			depth--
		}
	}
}

func (l *Lexer) skipInlineSpaces() {
	for l.peek() == ' ' || l.peek() == '\t' {
		l.advance()
	}
}

// scanTagAt scans a `<ident…>` or `</ident>` markup attachment.
func (l *Lexer) scanTagAt(textStart int) token.Tag {
	start := l.pos
	l.advance() // '<'
	closing := false
	if l.peek() == '/' {
		closing = true
		l.advance()
	}
	if !isIdentifierStart(l.peek()) {
		l.addError(Fatal, l.finishPos(start), "unexpected '<' inside string literal")
	}
	for isIdentifierContinue(l.peek()) {
		l.advance()
	}
	for l.peek() != '>' {
		if l.atEOF() || l.peek() == '\n' || l.peek() == '"' {
			l.addError(Fatal, l.finishPos(start), "unterminated tag in string literal")
		}
		l.advance()
	}
	l.advance() // '>'
	return token.Tag{
		Closing:      closing,
		OffsetInText: start - textStart,
		LengthInText: l.pos - start,
	}
}
