package ast

import (
	"github.com/loreline-lang/loreline/position"
	"github.com/loreline-lang/loreline/token"
)

// Script is the root node: an ordered body of top-level declarations plus
// the resolved subtrees of its imports.
type Script struct {
	Base
	Body    []Node
	Imports []*Import
}

// children returns Body followed by Imports: Each's traversal needs every
// Import reachable from its own children() chain so that descending into
// a resolved import's subtree falls naturally out of the generic Visit
// recursion (see Import.children).
func (s *Script) children() []Node {
	out := make([]Node, 0, len(s.Body)+len(s.Imports))
	out = append(out, s.Body...)
	for _, im := range s.Imports {
		out = append(out, im)
	}
	return out
}

// Import is a path string literal that, once resolved, links to the
// imported Script. Resolved is nil until an ImportResolver completes it.
type Import struct {
	Base
	Path     *StringLiteral
	Resolved *Script
}

// children returns Path plus, once set, Resolved itself — the latter is
// what lets a plain Visit descend into an imported script's own subtree.
// EachExcludingImported stops at the Import node itself precisely to
// avoid that descent.
func (im *Import) children() []Node {
	out := make([]Node, 0, 2)
	if im.Path != nil {
		out = append(out, im.Path)
	}
	if im.Resolved != nil {
		out = append(out, im.Resolved)
	}
	return out
}

// StateDecl declares a (possibly temporary) object of fields.
type StateDecl struct {
	Base
	Temporary bool
	Style     BlockStyle
	Fields    []*ObjectField
}

func (n *StateDecl) children() []Node { return objectFieldNodes(n.Fields) }

// CharacterDecl declares a named object of fields.
type CharacterDecl struct {
	Base
	Name    string
	NamePos position.Position
	Style   BlockStyle
	Fields  []*ObjectField
}

func (n *CharacterDecl) children() []Node { return objectFieldNodes(n.Fields) }

// BeatDecl declares a named, ordered body of statements.
type BeatDecl struct {
	Base
	Name    string
	NamePos position.Position
	Style   BlockStyle
	Body    []Node
}

func (n *BeatDecl) children() []Node { return n.Body }

// FunctionDecl holds a function literal's raw, uninterpreted body.
type FunctionDecl struct {
	Base
	Name     string // empty for anonymous
	Args     []string
	Code     string
	External bool
}

func (n *FunctionDecl) children() []Node { return nil }

// TextStatement is narration: a bare string on its own line.
type TextStatement struct {
	Base
	Content *StringLiteral
}

func (n *TextStatement) children() []Node { return stringLiteralNode(n.Content) }

// DialogueStatement is `Character: text`.
type DialogueStatement struct {
	Base
	Character    string
	CharacterPos position.Position
	Content      *StringLiteral
}

func (n *DialogueStatement) children() []Node { return stringLiteralNode(n.Content) }

// ChoiceStatement is an ordered list of options.
type ChoiceStatement struct {
	Base
	Style   BlockStyle
	Options []*ChoiceOption
}

func (n *ChoiceStatement) children() []Node {
	out := make([]Node, 0, len(n.Options))
	for _, o := range n.Options {
		out = append(out, o)
	}
	return out
}

// ChoiceOption is one option of a ChoiceStatement: its display text, an
// optional guard condition, and its body.
type ChoiceOption struct {
	Base
	Text           *StringLiteral
	Condition      Node // nil if unguarded
	ConditionStyle ConditionStyle
	Body           []Node
	Style          BlockStyle
}

func (n *ChoiceOption) children() []Node {
	out := make([]Node, 0, len(n.Body)+2)
	if n.Text != nil {
		out = append(out, n.Text)
	}
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	out = append(out, n.Body...)
	return out
}

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	Base
	Condition      Node
	ConditionStyle ConditionStyle
	Then           *Block
	Else           *Block // nil if no else branch

	ElseLeadingComments  []Comment
	ElseTrailingComments []Comment
}

func (n *IfStatement) children() []Node {
	out := make([]Node, 0, 3)
	if n.Condition != nil {
		out = append(out, n.Condition)
	}
	if n.Then != nil {
		out = append(out, n.Then)
	}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

// Block is a bare statement list with its own brace/indent style.
type Block struct {
	Base
	Style BlockStyle
	Body  []Node
}

func (n *Block) children() []Node { return n.Body }

// Transition is `-> Target`; Target is resolved by name, never by
// back-edge (spec.md §3's invariant).
type Transition struct {
	Base
	Target    string
	TargetPos position.Position
}

func (n *Transition) children() []Node { return nil }

// StringLiteral is an ordered sequence of StringPart, whose concatenated
// spans equal the literal's own span.
type StringLiteral struct {
	Base
	Quoting token.Quoting
	Parts   []StringPart
}

func (n *StringLiteral) children() []Node {
	var out []Node
	for _, p := range n.Parts {
		if e, ok := p.(*ExprPart); ok && e.Expr != nil {
			out = append(out, e.Expr)
		}
		if t, ok := p.(*TagPart); ok && t.Content != nil {
			out = append(out, t.Content)
		}
	}
	return out
}

// StringPart is one element of a StringLiteral's Parts: RawPart,
// ExprPart, or TagPart.
type StringPart interface {
	isStringPart()
}

// RawPart is a verbatim span of text, escape sequences preserved exactly
// as written in its quoting context.
type RawPart struct {
	Text string
}

func (*RawPart) isStringPart() {}

// ExprPart is an interpolated expression (`$ident…` or `${ … }`).
type ExprPart struct {
	Expr Node
}

func (*ExprPart) isStringPart() {}

// TagPart is a `<ident>` / `</ident>` markup attachment; Content is the
// (possibly empty) StringLiteral it wraps when paired during parsing.
type TagPart struct {
	Closing bool
	Name    string
	Content *StringLiteral
}

func (*TagPart) isStringPart() {}

// Literal is a scalar or collection literal: Number, Boolean, Null,
// Array, or Object(style).
type Literal struct {
	Base
	Kind        LiteralKind
	NumberValue float64
	BoolValue   bool
	Elements    []Node         // Kind == LiteralArray
	Fields      []*ObjectField // Kind == LiteralObject
	Style       BlockStyle     // Kind == LiteralObject
}

func (n *Literal) children() []Node {
	switch n.Kind {
	case LiteralArray:
		return n.Elements
	case LiteralObject:
		return objectFieldNodes(n.Fields)
	default:
		return nil
	}
}

// ObjectField is a single `name: value` entry of a State/Character/Object
// literal.
type ObjectField struct {
	Base
	Name    string
	NamePos position.Position
	Value   Node
}

func (n *ObjectField) children() []Node { return singleNode(n.Value) }

// Access is a bare identifier or, when Target is non-nil, a field access
// `target.Name`.
type Access struct {
	Base
	Name   string
	Target Node // nil for a bare identifier
}

func (n *Access) children() []Node { return singleNode(n.Target) }

// ArrayAccess is `target[index]`.
type ArrayAccess struct {
	Base
	Target Node
	Index  Node
}

func (n *ArrayAccess) children() []Node {
	out := make([]Node, 0, 2)
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Index != nil {
		out = append(out, n.Index)
	}
	return out
}

// Call is `target(args…)`.
type Call struct {
	Base
	Target Node
	Args   []Node
}

func (n *Call) children() []Node {
	out := make([]Node, 0, len(n.Args)+1)
	if n.Target != nil {
		out = append(out, n.Target)
	}
	out = append(out, n.Args...)
	return out
}

// Binary is a two-operand expression: arithmetic, comparison, or logical.
type Binary struct {
	Base
	Op    token.Kind
	Left  Node
	Right Node

	// Word is meaningful only when Op is token.KAnd/token.KOr: true for
	// the word spelling ("and"/"or"), false for the symbol spelling
	// ("&&"/"||"). astutil's operator-style transform flips it.
	Word bool
}

func (n *Binary) children() []Node {
	out := make([]Node, 0, 2)
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// Unary is a single-operand expression, e.g. `!cond` or `-x`.
type Unary struct {
	Base
	Op      token.Kind
	Operand Node
}

func (n *Unary) children() []Node { return singleNode(n.Operand) }

// Assign is `target op= value` (plain or compound assignment).
type Assign struct {
	Base
	Op     token.Kind
	Target Node
	Value  Node
}

func (n *Assign) children() []Node {
	out := make([]Node, 0, 2)
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// --- shared helpers --------------------------------------------------

func singleNode(n Node) []Node {
	if n == nil {
		return nil
	}
	return []Node{n}
}

// stringLiteralNode wraps a concrete *StringLiteral as a []Node, guarding
// against the nil-concrete-pointer-in-non-nil-interface pitfall a plain
// Node-typed nil check would miss.
func stringLiteralNode(s *StringLiteral) []Node {
	if s == nil {
		return nil
	}
	return []Node{s}
}

func objectFieldNodes(fields []*ObjectField) []Node {
	out := make([]Node, 0, len(fields))
	for _, f := range fields {
		out = append(out, f)
	}
	return out
}
