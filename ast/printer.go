package ast

// Printer is the external collaborator astutil depends on: a renderer
// capable of turning a StringLiteral back into source text. spec.md §4.6
// defines only this contract; the actual implementation (quote/escape
// rendering, interpolation re-emission) lives outside this module.
type Printer interface {
	// PrintStringLiteralAsReference renders str exactly as it would
	// appear in source: quotes preserved, escapes preserved.
	PrintStringLiteralAsReference(str *StringLiteral) string

	// PrintStringLiteralAsText renders only the user-visible textual
	// content, with interpolation placeholders preserved.
	PrintStringLiteralAsText(str *StringLiteral) string
}
