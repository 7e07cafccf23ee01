package ast

// Visitor is called once per node in source order, alongside its parent
// (nil for the root). Returning false skips that node's children — used,
// for example, to skip an imported Script's subtree.
type Visitor func(n Node, parent Node) (descend bool)

// Visit walks n and all of its descendants in source order, invoking v
// for each. It is the uniform traversal protocol spec.md §4.3 requires;
// Script.Each and Script.EachExcludingImported are built on it.
func Visit(n Node, v Visitor) {
	visit(n, nil, v)
}

func visit(n Node, parent Node, v Visitor) {
	if n == nil {
		return
	}
	if !v(n, parent) {
		return
	}
	for _, c := range n.children() {
		visit(c, n, v)
	}
}

// Each walks the script's own body and every resolved import's subtree.
func (s *Script) Each(v Visitor) {
	Visit(s, v)
}

// EachExcludingImported walks the script's own body and visits each Import
// node itself, but never descends into an Import's children (its Path or
// its Resolved subtree).
func (s *Script) EachExcludingImported(v Visitor) {
	visit(s, nil, func(n Node, parent Node) bool {
		if imp, ok := n.(*Import); ok {
			v(n, parent)
			_ = imp
			return false
		}
		return v(n, parent)
	})
}

// CommentVisitor is called once per comment attachment, alongside the
// node it is attached to and whether it was a leading or trailing
// comment.
type CommentVisitor func(owner Node, c Comment, trailing bool)

// EachComment visits every comment attached anywhere in the tree rooted
// at n, in Visit's pre-order: for each node, its leading then trailing
// comments (then, for an IfStatement, its else-branch comments) before
// any comment of its children. Comments are not nodes and never appear
// via Visit; this is the only way to reach them.
func EachComment(n Node, v CommentVisitor) {
	Visit(n, func(node Node, parent Node) bool {
		leading, trailing := node.Comments()
		for _, c := range leading {
			v(node, c, false)
		}
		for _, c := range trailing {
			v(node, c, true)
		}
		if ifs, ok := node.(*IfStatement); ok {
			for _, c := range ifs.ElseLeadingComments {
				v(node, c, false)
			}
			for _, c := range ifs.ElseTrailingComments {
				v(node, c, true)
			}
		}
		return true
	})
}
