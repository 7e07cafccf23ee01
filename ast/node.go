// Package ast defines the Loreline abstract syntax tree: the node model a
// parser (an external collaborator, out of scope here) builds, and the
// traversal/identity machinery the rest of the toolchain depends on.
//
// Nodes are created once by the parser and afterwards mutated only through
// the designated style/raw-text setters in astutil — traversal itself is
// read-only.
package ast

import "github.com/loreline-lang/loreline/position"

// NodeID is a process-unique, monotonically allocated node identity.
// Reused IDs are forbidden; the counter's lifecycle is process-wide.
type NodeID uint64

// IDAllocator hands out NodeIDs. The package-level default is a process
// counter; tests that need isolation can construct their own via
// NewAllocator.
type IDAllocator interface {
	Next() NodeID
}

// counterAllocator is the default process-wide IDAllocator.
type counterAllocator struct {
	n uint64
}

func (c *counterAllocator) Next() NodeID {
	c.n++
	return NodeID(c.n)
}

// defaultAllocator backs the package-level NewNodeID helper. It is never
// reset, per spec.md §4.3.
var defaultAllocator = &counterAllocator{}

// NewNodeID allocates the next NodeID from the process-wide counter.
func NewNodeID() NodeID {
	return defaultAllocator.Next()
}

// NewAllocator returns a fresh, independent IDAllocator — used by tests
// that want deterministic, isolated node numbering instead of sharing the
// process-wide counter.
func NewAllocator() IDAllocator {
	return &counterAllocator{}
}

// Comment is a `//`, `/* */`, or `#key` comment attached to exactly one
// node. Comments are not children and never appear in Visit traversals;
// use EachComment to reach them.
type Comment struct {
	Text      string
	Multiline bool
	// IsHash is true when the comment's content begins with `#` followed
	// by an identifier-like key — a localization anchor (spec.md §4.5).
	IsHash bool
	Key    string // populated when IsHash is true
	Pos    position.Position
}

// Base is embedded by every concrete node type and supplies the identity,
// position, and comment-attachment fields spec.md §3 requires of all
// nodes.
type Base struct {
	ID       NodeID
	Position position.Position

	LeadingComments  []Comment
	TrailingComments []Comment
}

// NodeID returns the node's identity. Embedding types inherit this, so it
// also satisfies the Node interface below.
func (b *Base) NodeID() NodeID { return b.ID }

// Pos returns the node's source position.
func (b *Base) Pos() position.Position { return b.Position }

// Comments returns the leading and trailing comments attached to this
// node, in source order within each group.
func (b *Base) Comments() (leading, trailing []Comment) {
	return b.LeadingComments, b.TrailingComments
}

// Node is the interface every AST node satisfies, sufficient to drive
// generic traversal and identity bookkeeping without a type switch.
type Node interface {
	NodeID() NodeID
	Pos() position.Position
	Comments() (leading, trailing []Comment)
	// children returns this node's direct children in source order, for
	// Visit's internal recursion. Unexported: callers outside the package
	// use Visit/EachExcludingImported/EachComment instead of walking
	// children directly.
	children() []Node
}
