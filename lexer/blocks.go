package lexer

import "github.com/loreline-lang/loreline/token"

// afterEmit updates next/blocks/strict in response to tok, per spec.md
// §4.1's "Block context tracking" rules. Called for every token, including
// the synthetic structural ones.
func (l *Lexer) afterEmit(tok token.Token) {
	switch tok.Kind {
	case token.KwState:
		l.next = StateIndent
	case token.KwBeat:
		l.next = BeatIndent
	case token.KwCharacter:
		l.next = CharacterIndent
	case token.KwChoice:
		l.next = ChoiceIndent

	case token.KLBrace:
		l.blocks.push(l.next.braceSibling())
		l.next = PlainBrace
	case token.KIndent:
		l.blocks.push(l.next.indentSibling())
		l.next = PlainBrace

	case token.KLBracket:
		l.blocks.push(Bracket)
		if l.isCallablePosition() {
			l.strict.push(Strict)
		} else {
			l.strict.push(Loose)
		}
	case token.KLParen:
		if l.isCallablePosition() {
			l.strict.push(Strict)
		} else {
			l.strict.push(Inherit)
		}

	case token.KRBrace, token.KUnindent:
		l.blocks.pop()
	case token.KRBracket:
		l.blocks.pop()
		l.strict.pop()
	case token.KRParen:
		l.strict.pop()
	}
}

// isCallablePosition reports whether the token preceding the one about to
// be pushed (an opening [ or ( ) sits in a callable position: a bare
// identifier or a closing paren/bracket, per spec.md §4.1's core-expression
// tokenization rules.
func (l *Lexer) isCallablePosition() bool {
	if !l.hasSignificant {
		return false
	}
	switch l.lastSignificant {
	case token.KIdentifier, token.KRParen, token.KRBracket:
		return true
	}
	return false
}

// parentBlockClass is the gating primitive unquoted.go relies on.
func (l *Lexer) parentBlockClass() blockClass {
	return l.blocks.parentBlockClass()
}
