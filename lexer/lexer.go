// Package lexer implements the hand-written, context-sensitive scanner
// described by spec.md §4.1: a conventional expression grammar, context-
// gated unquoted string literals, and indentation-sensitive blocking, all
// emitted as a single flat token stream.
package lexer

import (
	"github.com/loreline-lang/loreline/config"
	"github.com/loreline-lang/loreline/logx"
	"github.com/loreline-lang/loreline/position"
	"github.com/loreline-lang/loreline/token"
)

// Lexer is a stateful scanner over a single in-memory source string. It is
// not safe for concurrent use; create one Lexer per source.
type Lexer struct {
	src *position.Source
	cfg *config.LexerConfig
	log logx.Logger

	pos            int
	line, col      int
	startLine      int
	startCol       int

	emitted          []token.Token
	lastLineBreakIdx int

	blocks blockStack
	next   blockClass
	strict strictStack

	indentStack    []int
	pendingIndents []token.Token

	lastSignificant token.Kind
	hasSignificant  bool

	// sink, when non-nil, redirects record() into a sub-token collector
	// instead of the main stream — used while lexing an interpolation's
	// contents, which belong to the enclosing String token's payload, not
	// the flat top-level stream (see strings.go).
	sink *[]token.Token

	errorsList []*LexerError
	eofEmitted bool
}

// New creates a Lexer over text. cfg may be nil, in which case
// config.DefaultLexerConfig() is used.
func New(text string, cfg *config.LexerConfig) *Lexer {
	l := &Lexer{
		src:             position.NewSource(text),
		cfg:             cfg.Normalize(),
		log:             logx.Get("lexer"),
		line:            1,
		col:             1,
		startLine:       1,
		startCol:        1,
		indentStack:     []int{0},
		lastLineBreakIdx: -1,
		next:            PlainBrace,
	}
	return l
}

// Errors returns the recoverable errors accumulated so far.
func (l *Lexer) Errors() []*LexerError {
	return l.errorsList
}

// Tokenize runs the lexer to completion and returns the full token stream,
// which ends with exactly one Eof token when no fatal error occurs. A
// fatal error aborts the scan and is returned as the second value, along
// with the tokens emitted before it (no Eof); recoverable errors are
// available afterwards via Errors().
func (l *Lexer) Tokenize() (tokens []token.Token, fatal *LexerError) {
	defer func() {
		if r := recover(); r != nil {
			if fu, ok := r.(fatalUnwind); ok {
				fatal = fu.err
				tokens = l.emitted
				return
			}
			panic(r)
		}
	}()

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.KEof {
			break
		}
	}
	return tokens, nil
}

// NextToken returns the next token in the stream, advancing lexer state.
// Once Eof has been returned, subsequent calls keep returning Eof.
func (l *Lexer) NextToken() token.Token {
	if l.eofEmitted {
		return l.eofToken()
	}

	if len(l.pendingIndents) > 0 {
		tok := l.pendingIndents[0]
		l.pendingIndents = l.pendingIndents[1:]
		return l.record(tok)
	}

	l.skipSpacesAndTabs()

	if l.atEOF() {
		return l.finishAtEOF()
	}

	r := l.peek()
	if r == '\n' || r == '\r' {
		return l.scanLineBreakAndQueueIndentation()
	}

	return l.scanToken()
}

func (l *Lexer) finishAtEOF() token.Token {
	// Unwind any still-open indentation before Eof, per spec.md §3's
	// invariant that every Indent has a matching Unindent before Eof.
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.pendingIndents = append(l.pendingIndents, l.makeZeroWidthToken(token.KUnindent))
	}
	if len(l.pendingIndents) > 0 {
		tok := l.pendingIndents[0]
		l.pendingIndents = l.pendingIndents[1:]
		return l.record(tok)
	}
	return l.eofToken()
}

func (l *Lexer) eofToken() token.Token {
	l.eofEmitted = true
	pos := position.Position{Line: l.line, Column: l.col, Offset: l.pos, Length: 0}
	return token.Token{Kind: token.KEof, Position: pos}
}

// scanToken scans exactly one non-structural token starting at l.pos,
// dispatching to quoted strings, comments, function literals, unquoted
// strings, or the core expression scanner.
func (l *Lexer) scanToken() token.Token {
	r := l.peek()

	switch {
	case r == '"':
		return l.scanQuotedString()
	case r == '/' && l.peekAt(1) == '/':
		return l.scanLineComment()
	case r == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment()
	case l.matchesWordAhead("function"):
		return l.scanFunctionLiteral()
	}

	if l.isUnquotedCandidate() {
		if tok, ok := l.scanUnquotedString(); ok {
			return tok
		}
	}

	return l.scanCore()
}

// --- cursor primitives -----------------------------------------------

func (l *Lexer) atEOF() bool {
	return l.pos >= l.src.Len()
}

func (l *Lexer) peek() rune {
	return l.src.At(l.pos)
}

func (l *Lexer) peekAt(offset int) rune {
	return l.src.At(l.pos + offset)
}

// advance consumes and returns the rune at l.pos, updating line/col. It
// does not itself special-case newlines; callers handling \n do their own
// line/col bookkeeping via scanLineBreakAndQueueIndentation.
func (l *Lexer) advance() rune {
	r := l.src.At(l.pos)
	l.pos++
	l.col++
	return r
}

func (l *Lexer) startPos() position.Position {
	return position.Position{Line: l.startLine, Column: l.startCol, Offset: l.pos, Length: 0}
}

func (l *Lexer) markStart() {
	l.startLine = l.line
	l.startCol = l.col
}

// finishPos builds the final Position for a token whose content runs from
// offset startOffset (captured when markStart was called) to the current
// l.pos.
func (l *Lexer) finishPos(startOffset int) position.Position {
	return position.Position{
		Line:   l.startLine,
		Column: l.startCol,
		Offset: startOffset,
		Length: l.pos - startOffset,
	}
}

func (l *Lexer) makeZeroWidthToken(k token.Kind) token.Token {
	return token.Token{Kind: k, Position: position.Position{Line: l.line, Column: l.col, Offset: l.pos, Length: 0}}
}

func (l *Lexer) skipSpacesAndTabs() {
	for {
		r := l.peek()
		if r == ' ' || r == '\t' {
			l.advance()
			continue
		}
		break
	}
	l.markStart()
}

// matchesWordAhead reports whether the given keyword spelling begins at
// l.pos and is not itself a prefix of a longer identifier.
func (l *Lexer) matchesWordAhead(word string) bool {
	for i, want := range word {
		if l.peekAt(i) != want {
			return false
		}
	}
	next := l.peekAt(len([]rune(word)))
	return !isIdentifierContinue(next)
}

// record appends tok to the look-back window, updates block/strict
// tracking, and returns tok.
func (l *Lexer) record(tok token.Token) token.Token {
	if l.sink != nil {
		*l.sink = append(*l.sink, tok)
	} else {
		l.emitted = append(l.emitted, tok)
		if tok.Kind == token.KLineBreak {
			l.lastLineBreakIdx = len(l.emitted) - 1
		}
	}
	l.afterEmit(tok)
	if !tok.IsComment() && tok.Kind != token.KLineBreak && tok.Kind != token.KIndent && tok.Kind != token.KUnindent {
		l.lastSignificant = tok.Kind
		l.hasSignificant = true
	}
	return tok
}

// withSink runs fn with record() redirected into a fresh collector and
// returns the tokens it collected.
func (l *Lexer) withSink(fn func()) []token.Token {
	var collected []token.Token
	prev := l.sink
	l.sink = &collected
	fn()
	l.sink = prev
	return collected
}

// currentLineTokens returns the tokens emitted since the last LineBreak
// (exclusive), bounding the look-back window unquoted-string recognition
// needs, per spec.md §9's "look-back windows" design note.
func (l *Lexer) currentLineTokens() []token.Token {
	return l.emitted[l.lastLineBreakIdx+1:]
}

func (l *Lexer) addError(sev Severity, pos position.Position, format string, args ...any) {
	e := newLexerError(pos, sev, format, args...)
	if sev == Fatal {
		panic(fatalUnwind{err: e})
	}
	l.errorsList = append(l.errorsList, e)
}
