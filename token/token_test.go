package token

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KwBeat: "beat",
		KAnd:   "and",
		KArrow: "->",
		KEof:   "Eof",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsReservedWord(t *testing.T) {
	if !IsReservedWord("beat") {
		t.Error("beat should be reserved")
	}
	if IsReservedWord("Alice") {
		t.Error("Alice should not be reserved")
	}
}

func TestPredicates(t *testing.T) {
	assign := Token{Kind: KPlusAssign}
	if !assign.IsAssignOp() {
		t.Error("KPlusAssign should be an assign op")
	}
	ident := Token{Kind: KIdentifier, Text: "x"}
	if !ident.IsIdentifier() {
		t.Error("expected identifier")
	}
	if ident.IsAssignOp() {
		t.Error("identifier is not an assign op")
	}
	blockStart := Token{Kind: KwChoice}
	if !blockStart.IsBlockStart() {
		t.Error("choice should be a block start")
	}
	comment := Token{Kind: KCommentLine, Text: "hi"}
	if !comment.IsComment() {
		t.Error("expected comment")
	}
}

func TestSortAttachments(t *testing.T) {
	atts := []Attachment{
		Tag{OffsetInText: 10},
		Interpolation{OffsetInText: 2},
		Tag{OffsetInText: 5},
	}
	SortAttachments(atts)
	offsets := make([]int, len(atts))
	for i, a := range atts {
		offsets[i] = a.attachmentOffset()
	}
	want := []int{2, 5, 10}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", offsets, want)
		}
	}
}
