// Package astutil implements the style transforms and localization
// helpers spec.md §4.4/§4.5 define over an already-built ast.Script:
// quote style, block style, operator style, condition style,
// function-body re-indentation, and the source-preserving localization
// key workflow. All mutate their input in place.
package astutil

import (
	"strings"

	"github.com/juju/errors"
	"github.com/loreline-lang/loreline/ast"
	"github.com/loreline-lang/loreline/token"
)

// unquotedEscapeSafe is the set of characters a `\X` escape is meaningful
// for outside a quoted string; any other `\X` is unquoted-only noise that
// AddQuotes strips rather than carries into the quoted form.
func unquotedEscapeSafe(x rune) bool {
	switch x {
	case 'n', 't', 'r', '\\', '<':
		return true
	}
	return false
}

// AddQuotes flips every Unquoted string literal reachable from n to
// DoubleQuoted, rewriting its raw parts: unquoted-only escapes (`\=`,
// `\{`, and any `\X` for X outside {n,t,r,\,<}) are stripped back to the
// bare character, then `"` is escaped as `\"`.
func AddQuotes(n ast.Node) {
	ast.Visit(n, func(node ast.Node, _ ast.Node) bool {
		if lit, ok := node.(*ast.StringLiteral); ok && lit.Quoting == token.Unquoted {
			convertToQuoted(lit)
		}
		return true
	})
}

func convertToQuoted(lit *ast.StringLiteral) {
	for _, p := range lit.Parts {
		if raw, ok := p.(*ast.RawPart); ok {
			raw.Text = quoteRawText(raw.Text)
		}
	}
	lit.Quoting = token.DoubleQuoted
}

func quoteRawText(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '=' || next == '{' {
				b.WriteRune(next)
				i++
				continue
			}
			if !unquotedEscapeSafe(next) {
				if next == '"' {
					b.WriteString(`\"`)
				} else {
					b.WriteRune(next)
				}
				i++
				continue
			}
			b.WriteRune(r)
			b.WriteRune(next)
			i++
			continue
		}
		if r == '"' {
			b.WriteString(`\"`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RemoveQuotes flips a DoubleQuoted literal back to Unquoted, unescaping
// `\"` to `"`. It is the caller's responsibility to have checked
// CanSafelyRemoveQuotes first; RemoveQuotes itself returns an error if the
// literal would not round-trip safely as unquoted text.
func RemoveQuotes(lit *ast.StringLiteral) error {
	if lit.Quoting != token.DoubleQuoted {
		return nil
	}
	if !CanSafelyRemoveQuotes(lit) {
		return errors.Errorf("string literal cannot be safely unquoted: %s", concatenatedRawText(lit))
	}
	for _, p := range lit.Parts {
		if raw, ok := p.(*ast.RawPart); ok {
			raw.Text = strings.ReplaceAll(raw.Text, `\"`, `"`)
		}
	}
	lit.Quoting = token.Unquoted
	return nil
}

// CanSafelyRemoveQuotes implements spec.md §4.4's safety predicate: the
// concatenated raw text must contain no newline or `{`, and must not
// start with a delimiter, a comment opener, a transition, a beat
// insertion, a reserved block keyword, a label, a bare literal keyword, a
// numeric literal, or a compound-assignment operator — any of which would
// change meaning once the surrounding quotes are gone.
func CanSafelyRemoveQuotes(lit *ast.StringLiteral) bool {
	text := concatenatedRawText(lit)
	if strings.ContainsAny(text, "\n\r{") {
		return false
	}
	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" {
		return false
	}
	if strings.ContainsRune("([{}])=:", rune(trimmed[0])) {
		return false
	}
	for _, prefix := range []string{"//", "/*", "->"} {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}
	for _, op := range []string{"+=", "-=", "*=", "/="} {
		if strings.HasPrefix(trimmed, op) {
			return false
		}
	}
	if strings.HasPrefix(trimmed, "+ ") {
		return false
	}
	if startsWithKeywordAndSpace(trimmed) {
		return false
	}
	if startsWithLabel(trimmed) {
		return false
	}
	switch trimmed {
	case "null", "true", "false":
		return false
	}
	if looksNumeric(trimmed) {
		return false
	}
	return true
}

func concatenatedRawText(lit *ast.StringLiteral) string {
	var b strings.Builder
	for _, p := range lit.Parts {
		if raw, ok := p.(*ast.RawPart); ok {
			b.WriteString(raw.Text)
		}
	}
	return b.String()
}

var reservedBlockKeywords = []string{"import", "state", "beat", "character", "choice", "if", "else", "new"}

func startsWithKeywordAndSpace(s string) bool {
	for _, kw := range reservedBlockKeywords {
		if strings.HasPrefix(s, kw) {
			rest := s[len(kw):]
			if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
				return true
			}
		}
	}
	return false
}

func startsWithLabel(s string) bool {
	i := 0
	if i >= len(s) || !isIdentStart(s[i]) {
		return false
	}
	for i < len(s) && isIdentCont(s[i]) {
		i++
	}
	return i < len(s) && s[i] == ':'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.' && !seenDot && i > 0:
			seenDot = true
		default:
			return false
		}
	}
	return true
}
