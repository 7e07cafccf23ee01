// Package token defines the closed set of lexical token kinds the lexer
// emits, their payloads, and the handful of capability predicates the
// parser (an external collaborator) relies on.
package token

import "github.com/loreline-lang/loreline/position"

// Quoting distinguishes a string literal's surface form.
type Quoting int

const (
	Unquoted Quoting = iota
	DoubleQuoted
)

func (q Quoting) String() string {
	if q == DoubleQuoted {
		return "DoubleQuoted"
	}
	return "Unquoted"
}

// Attachment is either an Interpolation or a Tag embedded in a string's
// literal textual form. Offsets index into that literal form, not the
// original source.
type Attachment interface {
	attachmentOffset() int
	isAttachment()
}

// Interpolation is a `$ident…` or `${ … }` embedded expression.
type Interpolation struct {
	Simple     bool // true for `$ident(.ident|[expr]|(args))*`, false for `${ … }`
	InsideTag  bool // true when this interpolation appears inside a <tag ...> attribute
	SubTokens  []Token
	OffsetInText int
	LengthInText int
}

func (i Interpolation) attachmentOffset() int { return i.OffsetInText }
func (Interpolation) isAttachment()           {}

// Tag is a `<ident…>` or `</ident>` markup attachment inside a string.
type Tag struct {
	Closing      bool
	OffsetInText int
	LengthInText int
}

func (t Tag) attachmentOffset() int { return t.OffsetInText }
func (Tag) isAttachment()           {}

// SortAttachments orders attachments by their offset in the literal text,
// as spec.md §4.1 requires before a string token is finalized.
func SortAttachments(atts []Attachment) {
	for i := 1; i < len(atts); i++ {
		for j := i; j > 0 && atts[j-1].attachmentOffset() > atts[j].attachmentOffset(); j-- {
			atts[j-1], atts[j] = atts[j], atts[j-1]
		}
	}
}

// StringPayload is the payload of a KString token.
type StringPayload struct {
	Quoting     Quoting
	Text        string
	Attachments []Attachment
}

// FunctionPayload is the payload of a KFunction token.
type FunctionPayload struct {
	Name     string // empty for anonymous function literals
	Args     []string
	Code     string // verbatim source, from `function` through the final newline
	External bool   // true when the function has no body lines
}

// Token is a single element of the lexer's output stream: a Kind, a
// Position, and — for the kinds that carry one — a payload.
type Token struct {
	Kind     Kind
	Position position.Position

	// Text holds the literal spelling for Identifier, CommentLine,
	// CommentBlock tokens.
	Text string

	// NumberValue is populated for KNumber tokens.
	NumberValue float64

	// BoolValue is populated for KBoolean tokens.
	BoolValue bool

	// Word is populated for KAnd/KOr tokens: true when the source spelled
	// the operator as the word form ("and"/"or"), false for the symbol
	// form ("&&"/"||"). Both forms emit the same Kind; this is the only
	// place the surface spelling survives.
	Word bool

	// String is populated for KString tokens.
	String *StringPayload

	// Function is populated for KFunction tokens.
	Function *FunctionPayload
}

// IsComment reports whether t is a CommentLine or CommentBlock token.
func (t Token) IsComment() bool {
	return t.Kind == KCommentLine || t.Kind == KCommentBlock
}

// IsIdentifier reports whether t is a bare identifier (not a keyword).
func (t Token) IsIdentifier() bool {
	return t.Kind == KIdentifier
}

// IsAssignOp reports whether t is one of the assignment operators.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case KAssign, KPlusAssign, KMinusAssign, KMultiplyAssign, KDivideAssign:
		return true
	}
	return false
}

// IsBlockStart reports whether t introduces a block-bearing construct:
// state, beat, character, choice, or if.
func (t Token) IsBlockStart() bool {
	switch t.Kind {
	case KwState, KwBeat, KwCharacter, KwChoice, KwIf:
		return true
	}
	return false
}

// DebugString renders t in a short human-readable form for debugging.
func (t Token) DebugString() string {
	switch t.Kind {
	case KIdentifier, KCommentLine, KCommentBlock:
		return t.Kind.String() + "(" + t.Text + ")"
	case KNumber:
		return "Number"
	case KBoolean:
		return "Boolean"
	case KString:
		if t.String != nil {
			return "String(" + t.String.Quoting.String() + "," + t.String.Text + ")"
		}
		return "String"
	default:
		return t.Kind.String()
	}
}
