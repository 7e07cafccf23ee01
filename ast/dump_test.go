package ast

import (
	"strings"
	"testing"
)

func TestDumpIncludesFieldValues(t *testing.T) {
	beat := &BeatDecl{Base: Base{ID: 7}, Name: "Start"}
	out := Dump(beat)
	if !strings.Contains(out, "Start") {
		t.Fatalf("expected Dump output to mention the beat's Name, got %q", out)
	}
}

func TestDumpDiffReportsChangedField(t *testing.T) {
	a := &BeatDecl{Base: Base{ID: 1}, Name: "Start"}
	b := &BeatDecl{Base: Base{ID: 1}, Name: "Renamed"}

	diff := DumpDiff(a, b)
	if diff == "" {
		t.Fatalf("expected a non-empty diff for differing Name fields")
	}
	if !strings.Contains(diff, "Start") || !strings.Contains(diff, "Renamed") {
		t.Fatalf("expected diff to mention both old and new Name, got %q", diff)
	}
}

func TestDumpDiffEmptyForIdenticalNodes(t *testing.T) {
	a := &BeatDecl{Base: Base{ID: 1}, Name: "Start"}
	b := &BeatDecl{Base: Base{ID: 1}, Name: "Start"}

	diff := DumpDiff(a, b)
	if diff != "" {
		t.Fatalf("expected an empty diff for identical nodes, got %q", diff)
	}
}
