package ast

import "testing"

// buildScript returns a small script: one character, one beat containing a
// dialogue line and a nested if/transition, and an import with an
// unresolved subtree.
func buildScript() *Script {
	alloc := NewAllocator()
	id := func() NodeID { return alloc.Next() }

	dialogue := &DialogueStatement{
		Base:      Base{ID: id()},
		Character: "Narrator",
		Content:   &StringLiteral{Base: Base{ID: id()}, Parts: []StringPart{&RawPart{Text: "Hi"}}},
	}
	transition := &Transition{Base: Base{ID: id()}, Target: "End"}
	ifStmt := &IfStatement{
		Base:      Base{ID: id()},
		Condition: &Access{Base: Base{ID: id()}, Name: "ready"},
		Then:      &Block{Base: Base{ID: id()}, Body: []Node{transition}},
	}
	beat := &BeatDecl{
		Base: Base{ID: id()},
		Name: "Start",
		Body: []Node{dialogue, ifStmt},
	}
	char := &CharacterDecl{Base: Base{ID: id()}, Name: "Narrator"}
	imp := &Import{
		Base: Base{ID: id()},
		Path: &StringLiteral{Base: Base{ID: id()}, Parts: []StringPart{&RawPart{Text: "other.lor"}}},
	}

	return &Script{
		Base:    Base{ID: id()},
		Body:    []Node{char, beat},
		Imports: []*Import{imp},
	}
}

func TestVisitOrderAndParents(t *testing.T) {
	script := buildScript()

	var order []Node
	parents := map[Node]Node{}
	Visit(script, func(n Node, parent Node) bool {
		order = append(order, n)
		parents[n] = parent
		return true
	})

	if len(order) == 0 || order[0] != Node(script) {
		t.Fatalf("expected root visited first, got %v", order)
	}
	if parents[script] != nil {
		t.Fatalf("root should have a nil parent")
	}

	char := script.Body[0].(*CharacterDecl)
	beat := script.Body[1].(*BeatDecl)
	if parents[char] != Node(script) {
		t.Fatalf("character's parent should be the script")
	}
	if parents[beat] != Node(script) {
		t.Fatalf("beat's parent should be the script")
	}

	dialogue := beat.Body[0].(*DialogueStatement)
	if parents[dialogue] != Node(beat) {
		t.Fatalf("dialogue's parent should be the beat")
	}

	ifStmt := beat.Body[1].(*IfStatement)
	transition := ifStmt.Then.Body[0].(*Transition)
	if parents[transition] != Node(ifStmt.Then) {
		t.Fatalf("transition's parent should be the if's Then block")
	}
}

func TestVisitDescendsIntoResolvedImports(t *testing.T) {
	script := buildScript()
	resolvedBeat := &BeatDecl{Name: "Other"}
	resolved := &Script{Body: []Node{resolvedBeat}}
	script.Imports[0].Resolved = resolved

	var sawResolvedBeat bool
	script.Each(func(n Node, parent Node) bool {
		if n == Node(resolvedBeat) {
			sawResolvedBeat = true
		}
		return true
	})
	if !sawResolvedBeat {
		t.Fatalf("Each should descend into a resolved import's subtree")
	}
}

func TestEachExcludingImportedSkipsImportSubtree(t *testing.T) {
	script := buildScript()
	resolvedBeat := &BeatDecl{Name: "Other"}
	resolved := &Script{Body: []Node{resolvedBeat}}
	script.Imports[0].Resolved = resolved

	var sawResolvedBeat, sawImportItself bool
	script.EachExcludingImported(func(n Node, parent Node) bool {
		if n == Node(resolvedBeat) {
			sawResolvedBeat = true
		}
		if n == Node(script.Imports[0]) {
			sawImportItself = true
		}
		return true
	})
	if sawResolvedBeat {
		t.Fatalf("EachExcludingImported must not descend into Imports[i].Resolved")
	}
	if !sawImportItself {
		t.Fatalf("EachExcludingImported must still visit the Import node itself")
	}
}

func TestVisitReturningFalseSkipsChildren(t *testing.T) {
	script := buildScript()
	beat := script.Body[1].(*BeatDecl)

	var sawDialogue bool
	Visit(script, func(n Node, parent Node) bool {
		if n == Node(beat) {
			return false
		}
		if n == Node(beat.Body[0]) {
			sawDialogue = true
		}
		return true
	})
	if sawDialogue {
		t.Fatalf("returning false for beat should skip its children")
	}
}

func TestEachCommentVisitsLeadingTrailingAndElse(t *testing.T) {
	leading := Comment{Text: "leading"}
	trailing := Comment{Text: "trailing"}
	elseLeading := Comment{Text: "else-leading"}
	elseTrailing := Comment{Text: "else-trailing"}

	ifStmt := &IfStatement{
		Condition:            &Access{Name: "x"},
		Then:                 &Block{},
		Else:                 &Block{},
		ElseLeadingComments:  []Comment{elseLeading},
		ElseTrailingComments: []Comment{elseTrailing},
	}
	ifStmt.LeadingComments = []Comment{leading}
	ifStmt.TrailingComments = []Comment{trailing}

	var seen []string
	EachComment(ifStmt, func(owner Node, c Comment, isTrailing bool) {
		seen = append(seen, c.Text)
	})

	want := map[string]bool{"leading": true, "trailing": true, "else-leading": true, "else-trailing": true}
	if len(seen) != len(want) {
		t.Fatalf("expected %d comments, got %v", len(want), seen)
	}
	for _, s := range seen {
		if !want[s] {
			t.Fatalf("unexpected comment %q in %v", s, seen)
		}
	}
}
