package lexer

import (
	"testing"

	"github.com/loreline-lang/loreline/token"
)

// TestTokenizeParagraphContinuation checks that two narrative lines at the
// same starting column, with no intervening label, are merged into one
// unquoted string joined by "\n".
func TestTokenizeParagraphContinuation(t *testing.T) {
	source := "beat Start\n    First line\n    Second line\n"
	tokens, fatal := New(source, nil).Tokenize()
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	assertKinds(t, kindsOf(tokens), []token.Kind{
		token.KwBeat,
		token.KIdentifier,
		token.KLineBreak,
		token.KIndent,
		token.KString,
		token.KLineBreak,
		token.KUnindent,
		token.KEof,
	})
	str := tokens[4].String
	if str == nil || str.Text != "First line\nSecond line" {
		t.Fatalf("unexpected paragraph text: %+v", str)
	}
}

// TestTokenizeMultilineDialogue checks that a label whose first line
// strips to empty (here, tag markup only) continues across subsequent
// lines indented past the label's column. scanMultilineDialogue consumes
// those continuation lines itself, bypassing the normal indentStack
// machinery entirely, so no Indent/Unindent pair appears for them.
func TestTokenizeMultilineDialogue(t *testing.T) {
	source := "beat Start\n    Narrator: <x>\n        First line\n        Second line\n"
	tokens, fatal := New(source, nil).Tokenize()
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	assertKinds(t, kindsOf(tokens), []token.Kind{
		token.KwBeat,
		token.KIdentifier,
		token.KLineBreak,
		token.KIndent,
		token.KIdentifier,
		token.KColon,
		token.KString,
		token.KLineBreak,
		token.KUnindent,
		token.KEof,
	})
	str := tokens[6].String
	if str == nil || str.Text != "<x>\nFirst line\nSecond line" {
		t.Fatalf("unexpected dialogue text: %+v", str)
	}
}

// TestTokenizeStateFieldUnquotedValue checks that a state block's field
// values, gated as isValue via ParentState, accept a bare unquoted value
// and stop at the closing brace rather than absorbing it as text.
func TestTokenizeStateFieldUnquotedValue(t *testing.T) {
	source := "state {\n    name: Alice\n}"
	tokens, fatal := New(source, nil).Tokenize()
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	assertKinds(t, kindsOf(tokens), []token.Kind{
		token.KwState,
		token.KLBrace,
		token.KLineBreak,
		token.KIndent,
		token.KIdentifier,
		token.KColon,
		token.KString,
		token.KLineBreak,
		token.KUnindent,
		token.KRBrace,
		token.KEof,
	})
	str := tokens[6].String
	if str == nil || str.Quoting != token.Unquoted || str.Text != "Alice" {
		t.Fatalf("unexpected field value: %+v", str)
	}
}

// TestTokenizeBeatInsertion checks that `+ Name` both excludes the '+'
// itself from unquoted candidacy (lookaheadStartsBeatInsertion) and, via
// isDeclarationNamePosition, correctly tokenizes the name that follows as
// an Identifier rather than absorbing it into narrative text.
func TestTokenizeBeatInsertion(t *testing.T) {
	source := "beat Start\n    + Aside\n"
	tokens, fatal := New(source, nil).Tokenize()
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	assertKinds(t, kindsOf(tokens), []token.Kind{
		token.KwBeat,
		token.KIdentifier,
		token.KLineBreak,
		token.KIndent,
		token.KPlus,
		token.KIdentifier,
		token.KLineBreak,
		token.KUnindent,
		token.KEof,
	})
	if tokens[5].Text != "Aside" {
		t.Fatalf("beat insertion target: got %q, want Aside", tokens[5].Text)
	}
}

// TestTokenizeCharacterDeclName checks the `character Name { ... }` header,
// confirming isDeclarationNamePosition also covers KwCharacter.
func TestTokenizeCharacterDeclName(t *testing.T) {
	source := "character Narrator {\n    name: \"The Narrator\"\n}"
	tokens, fatal := New(source, nil).Tokenize()
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	assertKinds(t, kindsOf(tokens), []token.Kind{
		token.KwCharacter,
		token.KIdentifier,
		token.KLBrace,
		token.KLineBreak,
		token.KIndent,
		token.KIdentifier,
		token.KColon,
		token.KString,
		token.KLineBreak,
		token.KUnindent,
		token.KRBrace,
		token.KEof,
	})
	if tokens[1].Text != "Narrator" {
		t.Fatalf("character name: got %q, want Narrator", tokens[1].Text)
	}
}
