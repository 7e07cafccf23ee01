package lexer

import (
	"strings"

	"github.com/loreline-lang/loreline/position"
	"github.com/loreline-lang/loreline/token"
)

// positionFrom builds a Position for a token that started at
// (startLine, startCol, startOffset) and spans length code points.
func positionFrom(startLine, startCol, startOffset, length int) position.Position {
	return position.Position{Line: startLine, Column: startCol, Offset: startOffset, Length: length}
}

// isUnquotedCandidate implements spec.md §4.1's four admission gates for
// unquoted strings, evaluated at the current cursor position before any
// characters are consumed.
func (l *Lexer) isUnquotedCandidate() bool {
	if l.strict.topEffective() == Strict {
		return false
	}

	r := l.peek()
	if isDelimiterRune(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	if r == '/' && (l.peekAt(1) == '/' || l.peekAt(1) == '*') {
		return false
	}

	pk := l.parentBlockClass().parentKind()
	if pk == ParentOther {
		return false
	}

	insideBracket := l.insideBracketTop()
	followsAssign := l.lastOnLineIsAssignOp()
	afterLabel := l.isAfterLabelOnCurrentLine()
	isValue := pk == ParentState || pk == ParentCharacter || insideBracket || followsAssign

	if isValue {
		if l.lookaheadStartsCall() || l.lookaheadStartsLabel() {
			return false
		}
		if insideBracket {
			return l.isAtBracketValuePosition()
		}
		return afterLabel || followsAssign
	}

	if l.isDeclarationNamePosition() {
		return false
	}
	if l.lookaheadStartsLabel() {
		return false
	}
	if l.lookaheadStartsCall() {
		return false
	}
	if l.lookaheadStartsFieldAccess() {
		return false
	}
	if l.lookaheadStartsAssign() {
		return false
	}
	if l.matchesWordAhead("if") {
		return false
	}
	if l.lookaheadStartsBeatInsertion() {
		return false
	}
	if !afterLabel && l.matchesLiteralAhead("->") {
		return false
	}
	if name, ok := l.peekIdentifier(0); ok && token.IsReservedWord(name) {
		switch name {
		case "null", "true", "false", "and", "or":
			// allowed to lead narrative text
		default:
			return false
		}
	}
	return true
}

func isDelimiterRune(r rune) bool {
	switch r {
	case '{', '}', '[', ']', '"', ':':
		return true
	}
	return false
}

// --- look-back helpers --------------------------------------------------

func (l *Lexer) insideBracketTop() bool {
	top, ok := l.blocks.top()
	return ok && top == Bracket
}

func (l *Lexer) lastOnLineIsAssignOp() bool {
	line := l.currentLineTokens()
	if len(line) == 0 {
		return false
	}
	return line[len(line)-1].IsAssignOp()
}

// isAfterLabelOnCurrentLine reports whether the last two tokens on the
// current line are Identifier, Colon — i.e. this position directly
// follows a dialogue/field label.
func (l *Lexer) isAfterLabelOnCurrentLine() bool {
	line := l.currentLineTokens()
	if len(line) < 2 {
		return false
	}
	last := line[len(line)-1]
	prev := line[len(line)-2]
	return last.Kind == token.KColon && prev.Kind == token.KIdentifier
}

// isAtBracketValuePosition reports whether, inside a `[...]`, the current
// position immediately follows `[` or `,`, or is the first thing on its
// line.
func (l *Lexer) isAtBracketValuePosition() bool {
	line := l.currentLineTokens()
	if len(line) == 0 {
		return true
	}
	last := line[len(line)-1]
	return last.Kind == token.KLBracket || last.Kind == token.KComma
}

// --- raw look-ahead helpers (no tokens consumed) ------------------------

// peekIdentifier reports the identifier spelling starting at offset, if
// any, without consuming input.
func (l *Lexer) peekIdentifier(offset int) (string, bool) {
	if !isIdentifierStart(l.peekAt(offset)) {
		return "", false
	}
	var b strings.Builder
	i := offset
	for isIdentifierContinue(l.peekAt(i)) {
		b.WriteRune(l.peekAt(i))
		i++
	}
	return b.String(), true
}

func (l *Lexer) skipInlineSpacesFrom(offset int) int {
	for l.peekAt(offset) == ' ' || l.peekAt(offset) == '\t' {
		offset++
	}
	return offset
}

// isDeclarationNamePosition reports whether the current position is a bare
// name reference rather than narrative text: a `beat Name` / `character
// Name` header's name, a `-> Target` transition's target, or a `+ Name`
// beat-insertion's target. In each case the preceding token on the current
// line is the keyword/symbol that introduces the name, and — unlike a
// reserved word — the name itself isn't otherwise excluded by the
// statement-position rules below, so without this gate it would be
// misread as unquoted narrative text.
func (l *Lexer) isDeclarationNamePosition() bool {
	line := l.currentLineTokens()
	if len(line) == 0 {
		return false
	}
	switch line[len(line)-1].Kind {
	case token.KwBeat, token.KwCharacter, token.KArrow, token.KPlus:
		return true
	}
	return false
}

func (l *Lexer) lookaheadStartsLabel() bool {
	name, ok := l.peekIdentifier(0)
	if !ok {
		return false
	}
	return l.peekAt(len([]rune(name))) == ':'
}

func (l *Lexer) lookaheadStartsCall() bool {
	name, ok := l.peekIdentifier(0)
	if !ok {
		return false
	}
	return l.peekAt(len([]rune(name))) == '('
}

func (l *Lexer) lookaheadStartsFieldAccess() bool {
	name, ok := l.peekIdentifier(0)
	if !ok {
		return false
	}
	return l.peekAt(len([]rune(name))) == '.'
}

func (l *Lexer) lookaheadStartsAssign() bool {
	name, ok := l.peekIdentifier(0)
	if !ok {
		return false
	}
	i := l.skipInlineSpacesFrom(len([]rune(name)))
	for _, sym := range []string{"+=", "-=", "*=", "/=", "="} {
		match := true
		for j, want := range sym {
			if l.peekAt(i+j) != want {
				match = false
				break
			}
		}
		if match {
			// Exclude "==" from being read as "=" followed by "=".
			if sym == "=" && l.peekAt(i+1) == '=' {
				return false
			}
			return true
		}
	}
	return false
}

func (l *Lexer) lookaheadStartsBeatInsertion() bool {
	if l.peek() != '+' {
		return false
	}
	i := l.skipInlineSpacesFrom(1)
	return i > 1 && isIdentifierStart(l.peekAt(i))
}

// isUnquotedEscape reports whether X (the character after a backslash) is
// one of the escapes unquoted text recognizes verbatim: \=, \{, \<, plus
// the shared \n \t \r \\ escapes (spec.md §4.4's safety predicate lists
// exactly this set).
func isUnquotedEscape(r rune) bool {
	switch r {
	case '=', '{', '<', 'n', 't', 'r', '\\':
		return true
	}
	return false
}

// --- scanning ------------------------------------------------------------

// scanUnquotedString scans an unquoted string starting at the current
// position, including paragraph continuation and multiline dialogue, and
// returns (token, true) on success or (zero, false) if — after scanning —
// the result doesn't satisfy the acceptance predicate, in which case the
// cursor is restored and the caller should fall back to scanCore.
func (l *Lexer) scanUnquotedString() (token.Token, bool) {
	outerPos, outerLine, outerCol := l.pos, l.line, l.col
	outerStartLine, outerStartCol := l.startLine, l.startCol

	pk := l.parentBlockClass().parentKind()
	insideBracket := l.insideBracketTop()
	isValue := pk == ParentState || pk == ParentCharacter || insideBracket || l.lastOnLineIsAssignOp()
	afterLabel := l.isAfterLabelOnCurrentLine()
	inChoiceRoot := l.parentBlockClass().braceSibling() == ChoiceBrace

	firstLineStartCol := l.col
	text, atts, hitNewline := l.scanOneUnquotedLine(isValue)

	if afterLabel && !isValue && strings.TrimSpace(stripTagMarkup(text)) == "" && hitNewline {
		text, atts = l.scanMultilineDialogue(text, atts)
	} else if !isValue && !afterLabel && !inChoiceRoot && hitNewline {
		text, atts = l.scanParagraphContinuation(text, atts, firstLineStartCol)
	}

	trimmed := rightTrimSpace(text)
	if !isAcceptableUnquotedPayload(trimmed) {
		l.pos, l.line, l.col = outerPos, outerLine, outerCol
		l.startLine, l.startCol = outerStartLine, outerStartCol
		return token.Token{}, false
	}

	pos := positionFrom(outerStartLine, outerStartCol, outerPos, l.pos-outerPos)
	payload := &token.StringPayload{Quoting: token.Unquoted, Text: trimmed, Attachments: atts}
	return l.record(token.Token{Kind: token.KString, Position: pos, String: payload}), true
}

// scanOneUnquotedLine scans text on the current physical line only, up to
// a break condition, and reports whether it stopped because of a line
// terminator (as opposed to `{`, a comment, a transition, or — in value
// position — `, ] }`).
func (l *Lexer) scanOneUnquotedLine(isValue bool) (string, []token.Attachment, bool) {
	textStart := l.pos
	allowTags := l.parentBlockClass().parentKind() == ParentBeat
	var atts []token.Attachment

	for {
		if l.atEOF() {
			return l.src.Slice(textStart, l.pos), atts, false
		}
		r := l.peek()
		switch {
		case r == '\n' || r == '\r':
			return l.src.Slice(textStart, l.pos), atts, true
		case r == '{':
			return l.src.Slice(textStart, l.pos), atts, false
		case r == '/' && l.peekAt(1) == '/':
			return l.src.Slice(textStart, l.pos), atts, false
		case r == '\\' && isUnquotedEscape(l.peekAt(1)):
			l.advance()
			l.advance()
		case l.matchesLiteralAhead("->"):
			return l.src.Slice(textStart, l.pos), atts, false
		case r == ' ' && l.matchesTrailingIfGuardAhead():
			return l.src.Slice(textStart, l.pos), atts, false
		case isValue && (r == ',' || r == ']' || r == '}'):
			return l.src.Slice(textStart, l.pos), atts, false
		case r == '$' && allowsInterpolationStart(l.peekAt(1)):
			atts = append(atts, l.scanInterpolationAt(textStart, false))
		case r == '$' && l.peekAt(1) == '{':
			atts = append(atts, l.scanInterpolationAt(textStart, true))
		case r == '<' && allowTags:
			atts = append(atts, l.scanTagAt(textStart))
		default:
			l.advance()
		}
	}
}

// matchesTrailingIfGuardAhead reports whether, at a space character, the
// remainder of the run is ` if ` followed by something expression-shaped —
// the trailing guard on a choice option or dialogue line, e.g.
// `"Go north" if ready -> North`.
func (l *Lexer) matchesTrailingIfGuardAhead() bool {
	if l.peek() != ' ' {
		return false
	}
	i := 1
	for l.peekAt(i) == ' ' {
		i++
	}
	if l.peekAt(i) != 'i' || l.peekAt(i+1) != 'f' {
		return false
	}
	after := l.peekAt(i + 2)
	return after == ' ' || after == '\t'
}

// scanParagraphContinuation implements spec.md §4.1's paragraph
// continuation: subsequent lines at the same starting column, that would
// themselves lex as unquoted text, are concatenated with a newline.
func (l *Lexer) scanParagraphContinuation(text string, atts []token.Attachment, startCol int) (string, []token.Attachment) {
	for {
		snapPos, snapLine, snapCol := l.pos, l.line, l.col
		if !l.consumeLineBreakChars() {
			return text, atts
		}
		l.skipBlankLinesAndComments()

		if l.atEOF() || l.col != startCol || !l.isUnquotedCandidate() {
			l.pos, l.line, l.col = snapPos, snapLine, snapCol
			return text, atts
		}

		base := len([]rune(text)) + 1
		more, moreAtts, hitNewline := l.scanOneUnquotedLine(false)
		text = text + "\n" + more
		for _, a := range moreAtts {
			atts = append(atts, offsetAttachment(a, base))
		}
		if !hitNewline {
			return text, atts
		}
	}
}

// scanMultilineDialogue implements spec.md §4.1's multiline dialogue:
// once a label's first line contains only tags/whitespace, subsequent
// lines at a fixed indentation (greater than the label's column) continue
// the same string.
func (l *Lexer) scanMultilineDialogue(text string, atts []token.Attachment) (string, []token.Attachment) {
	labelCol := l.currentLineLabelColumn()
	required := -1

	for {
		snapPos, snapLine, snapCol := l.pos, l.line, l.col
		if !l.consumeLineBreakChars() {
			return text, atts
		}
		width, consumed := l.measureLeadingWhitespace(l.pos)

		if isBlankAt(l.src.At(l.pos + consumed)) {
			l.pos, l.line, l.col = snapPos, snapLine, snapCol
			return text, atts
		}

		if required == -1 {
			if width <= labelCol {
				l.pos, l.line, l.col = snapPos, snapLine, snapCol
				return text, atts
			}
			required = width
		} else if width != required {
			l.pos, l.line, l.col = snapPos, snapLine, snapCol
			return text, atts
		}

		l.pos += consumed
		l.col += consumed

		base := len([]rune(text)) + 1
		more, moreAtts, hitNewline := l.scanOneUnquotedLine(false)
		text = text + "\n" + more
		for _, a := range moreAtts {
			atts = append(atts, offsetAttachment(a, base))
		}
		if !hitNewline {
			return text, atts
		}
	}
}

func (l *Lexer) currentLineLabelColumn() int {
	line := l.currentLineTokens()
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].Kind == token.KIdentifier {
			return line[i].Position.Column
		}
	}
	return 0
}

func (l *Lexer) consumeLineBreakChars() bool {
	if l.atEOF() {
		return false
	}
	r := l.peek()
	if r != '\n' && r != '\r' {
		return false
	}
	l.advance()
	if r == '\r' && l.peek() == '\n' {
		l.advance()
	}
	l.line++
	l.col = 1
	return true
}

func (l *Lexer) skipBlankLinesAndComments() {
	for {
		start := l.pos
		width, consumed := l.measureLeadingWhitespace(l.pos)
		_ = width
		l.pos += consumed
		l.col += consumed
		if l.peek() == '/' && l.peekAt(1) == '/' {
			for !l.atEOF() && l.peek() != '\n' && l.peek() != '\r' {
				l.advance()
			}
		}
		if l.consumeLineBreakChars() {
			continue
		}
		if l.pos == start {
			return
		}
		return
	}
}

func isBlankAt(r rune) bool {
	return r == '\n' || r == '\r' || r == 0xFFFD
}

func offsetAttachment(a token.Attachment, delta int) token.Attachment {
	switch v := a.(type) {
	case token.Interpolation:
		v.OffsetInText += delta
		return v
	case token.Tag:
		v.OffsetInText += delta
		return v
	default:
		return a
	}
}

func stripTagMarkup(text string) string {
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func rightTrimSpace(s string) string {
	return strings.TrimRight(s, " \t")
}

func isAcceptableUnquotedPayload(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	switch s {
	case "null", "true", "false":
		return false
	}
	return !looksLikeNumber(s)
}

func looksLikeNumber(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !seenDot && i > 0:
			seenDot = true
		default:
			return false
		}
	}
	return true
}
