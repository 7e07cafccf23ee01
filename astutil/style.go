package astutil

import (
	"github.com/loreline-lang/loreline/ast"
	"github.com/loreline-lang/loreline/token"
)

// ToBraceStyle flips the Style field of every State/Character/Beat/
// Choice/ChoiceOption/Block/object-Literal node reachable from n to
// Braces.
func ToBraceStyle(n ast.Node) { setBlockStyle(n, ast.Braces) }

// ToPlainStyle is ToBraceStyle's inverse, flipping every Style field to
// Plain (indentation-delimited).
func ToPlainStyle(n ast.Node) { setBlockStyle(n, ast.Plain) }

func setBlockStyle(n ast.Node, style ast.BlockStyle) {
	ast.Visit(n, func(node ast.Node, _ ast.Node) bool {
		switch t := node.(type) {
		case *ast.StateDecl:
			t.Style = style
		case *ast.CharacterDecl:
			t.Style = style
		case *ast.BeatDecl:
			t.Style = style
		case *ast.ChoiceStatement:
			t.Style = style
		case *ast.ChoiceOption:
			t.Style = style
		case *ast.Block:
			t.Style = style
		case *ast.Literal:
			if t.Kind == ast.LiteralObject {
				t.Style = style
			}
		}
		return true
	})
}

// OperatorStyle is the surface spelling astutil's operator-style
// transform flips between: WordOperators ("and"/"or") and
// SymbolOperators ("&&"/"||").
type OperatorStyle int

const (
	SymbolOperators OperatorStyle = iota
	WordOperators
)

// SetOperatorStyle flips every `&&`/`and` and `||`/`or` Binary node
// reachable from n to the requested surface spelling.
func SetOperatorStyle(n ast.Node, style OperatorStyle) {
	ast.Visit(n, func(node ast.Node, _ ast.Node) bool {
		if b, ok := node.(*ast.Binary); ok && (b.Op == token.KAnd || b.Op == token.KOr) {
			b.Word = style == WordOperators
		}
		return true
	})
}

// SetConditionStyle flips the ConditionStyle of every IfStatement and
// guarded ChoiceOption reachable from n.
func SetConditionStyle(n ast.Node, style ast.ConditionStyle) {
	ast.Visit(n, func(node ast.Node, _ ast.Node) bool {
		switch t := node.(type) {
		case *ast.IfStatement:
			t.ConditionStyle = style
		case *ast.ChoiceOption:
			if t.Condition != nil {
				t.ConditionStyle = style
			}
		}
		return true
	})
}

// ReindentFunctionBody replaces each leading occurrence of oldIndent with
// newIndent on every line of every non-external FunctionDecl's Code
// reachable from n. External declarations (no body) are left untouched.
func ReindentFunctionBody(n ast.Node, oldIndent, newIndent string) {
	ast.Visit(n, func(node ast.Node, _ ast.Node) bool {
		fn, ok := node.(*ast.FunctionDecl)
		if !ok || fn.External || oldIndent == "" {
			return true
		}
		fn.Code = reindentLines(fn.Code, oldIndent, newIndent)
		return true
	})
}

func reindentLines(code, oldIndent, newIndent string) string {
	lines := splitKeepingTerminators(code)
	for i, line := range lines {
		body, term := splitTerminator(line)
		for hasLeadingIndent(body, oldIndent) {
			body = newIndent + body[len(oldIndent):]
			break // only the single leading occurrence, per spec.md §4.4
		}
		lines[i] = body + term
	}
	out := ""
	for _, l := range lines {
		out += l
	}
	return out
}

func hasLeadingIndent(s, indent string) bool {
	return len(s) >= len(indent) && s[:len(indent)] == indent
}

// splitKeepingTerminators splits s into lines, each retaining its
// trailing \n/\r\n so re-joining reproduces s exactly modulo the
// requested indent substitution.
func splitKeepingTerminators(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitTerminator(line string) (body, term string) {
	if len(line) >= 2 && line[len(line)-2] == '\r' && line[len(line)-1] == '\n' {
		return line[:len(line)-2], line[len(line)-2:]
	}
	if len(line) >= 1 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, ""
}
