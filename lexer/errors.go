package lexer

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/loreline-lang/loreline/position"
)

// Severity distinguishes errors the lexer can recover from (scanning
// continues) from ones that abort the current pass.
type Severity int

const (
	Recoverable Severity = iota
	Fatal
)

// LexerError is a single problem encountered while scanning, with enough
// position information for a caller to print "file:line:column: message".
// Internally it wraps a juju/errors chain so embedders can use
// errors.Cause/errors.ErrorStack on it.
type LexerError struct {
	Message  string
	Position position.Position
	Severity Severity

	cause error
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// Cause implements the juju/errors causer interface.
func (e *LexerError) Cause() error {
	if e.cause != nil {
		return e.cause
	}
	return e
}

func newLexerError(pos position.Position, sev Severity, format string, args ...any) *LexerError {
	msg := fmt.Sprintf(format, args...)
	return &LexerError{
		Message:  msg,
		Position: pos,
		Severity: sev,
		cause:    errors.Errorf("lexer: %s", msg),
	}
}

// fatalUnwind is the panic payload used to unwind the scan on a fatal
// error, caught only at the top of Lex. It is never exposed to callers.
type fatalUnwind struct {
	err *LexerError
}
