package lexer

import (
	"github.com/loreline-lang/loreline/position"
	"github.com/loreline-lang/loreline/token"
)

// scanLineBreakAndQueueIndentation consumes one newline (\n, \r, or \r\n),
// emits the LineBreak token for it, and — unless the following line is
// blank — queues the Indent/Unindent tokens implied by the next
// content-bearing line's leading whitespace. Blank lines keep the
// indentation of the previous non-empty line (spec.md §4.1).
func (l *Lexer) scanLineBreakAndQueueIndentation() token.Token {
	pos := l.startPos()
	pos.Length = 1

	r := l.advance()
	if r == '\r' && l.peek() == '\n' {
		l.advance()
		pos.Length = 2
	}
	l.line++
	l.col = 1

	lb := token.Token{Kind: token.KLineBreak, Position: pos}
	tok := l.record(lb)

	l.queueIndentationAfterLineBreak()

	return tok
}

// queueIndentationAfterLineBreak looks ahead past any run of blank lines
// to the next content-bearing line (or EOF), measuring its indentation and
// comparing it against indentStack's top. Each blank line skipped along
// the way contributes its own LineBreak to pendingIndents so the overall
// token count stays accurate.
func (l *Lexer) queueIndentationAfterLineBreak() {
	for {
		width, consumed := l.measureLeadingWhitespace(l.pos)
		after := l.pos + consumed

		switch l.src.At(after) {
		case '\n', '\r':
			// Blank line: consume its whitespace and its own line break,
			// queuing the LineBreak but not touching indentStack.
			l.pos = after
			l.col += consumed
			nl := l.consumeLineBreakAsPending()
			l.pendingIndents = append(l.pendingIndents, nl)
			continue
		default:
			if after >= l.src.Len() {
				// Trailing whitespace at EOF with no more content; leave
				// indentStack alone, finishAtEOF will unwind it.
				l.pos = after
				l.col += consumed
				l.markStart()
				return
			}
			l.pos = after
			l.col += consumed
			l.markStart()
			l.applyIndentationWidth(width)
			return
		}
	}
}

// measureLeadingWhitespace returns the indentation width (tabs counted as
// cfg.TabWidth columns, spaces as 1) and the number of code points
// consumed, starting at offset.
func (l *Lexer) measureLeadingWhitespace(offset int) (width int, consumed int) {
	for {
		r := l.src.At(offset + consumed)
		switch r {
		case ' ':
			width++
			consumed++
		case '\t':
			width += l.cfg.TabWidth
			consumed++
		default:
			return width, consumed
		}
	}
}

// consumeLineBreakAsPending consumes a \n/\r/\r\n at the current position
// (already advanced past leading whitespace) and returns it as a
// zero-extra LineBreak token, without going through record (callers queue
// it directly).
func (l *Lexer) consumeLineBreakAsPending() token.Token {
	startLine, startCol, startOffset := l.line, l.col, l.pos
	r := l.advance()
	length := 1
	if r == '\r' && l.peek() == '\n' {
		l.advance()
		length = 2
	}
	l.line++
	l.col = 1
	return token.Token{
		Kind:     token.KLineBreak,
		Position: position.Position{Line: startLine, Column: startCol, Offset: startOffset, Length: length},
	}
}

// applyIndentationWidth compares width against indentStack's top and
// queues Indent/Unindent tokens to reconcile, per spec.md §4.1:
//   - strictly greater: push width, queue one Indent.
//   - strictly less: pop until top == width; if no exact match is found,
//     stop popping once the remaining top is itself less than width
//     (mismatched dedents are tolerated without error).
func (l *Lexer) applyIndentationWidth(width int) {
	top := l.indentStack[len(l.indentStack)-1]

	if width > top {
		l.indentStack = append(l.indentStack, width)
		l.pendingIndents = append(l.pendingIndents, l.makeZeroWidthToken(token.KIndent))
		return
	}

	for width < top {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.pendingIndents = append(l.pendingIndents, l.makeZeroWidthToken(token.KUnindent))
		if len(l.indentStack) == 0 {
			l.indentStack = []int{0}
			break
		}
		top = l.indentStack[len(l.indentStack)-1]
		if top < width {
			// Mismatched dedent: the new width sits strictly between two
			// stack levels. Tolerate it without error, per spec.md §4.1.
			break
		}
	}
}
