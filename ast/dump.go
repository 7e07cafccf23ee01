package ast

import (
	"strings"

	"github.com/kr/pretty"
)

// Dump renders n and its subtree as a human-readable, indented tree —
// a debug aid for tests and embedding tools, not the (external) printer
// spec.md §4.6 defines for emitting source text.
func Dump(n Node) string {
	return pretty.Sprint(n)
}

// DumpDiff renders the field-level differences between two subtrees,
// useful in tests asserting that an astutil transform produced the
// expected shape.
func DumpDiff(a, b Node) string {
	return strings.Join(pretty.Diff(a, b), "\n")
}
