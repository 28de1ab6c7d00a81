package workspace

import "testing"

func TestActionRow_InsertFront(t *testing.T) {
	r := &ActionRow{}
	r.Append(&Action{Marker: "x", Label: "second"})
	r.InsertFront(&Action{Marker: "y", Label: "first"})

	got := r.Actions()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Label != "first" || got[1].Label != "second" {
		t.Errorf("order = [%q %q], want [first second]", got[0].Label, got[1].Label)
	}
}

func TestActionRow_InsertFrontEmpty(t *testing.T) {
	r := &ActionRow{}
	r.InsertFront(&Action{Marker: "x", Label: "only"})
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
}

func TestActionRow_RemoveMarked(t *testing.T) {
	r := &ActionRow{}
	r.Append(&Action{Marker: "mine", Label: "a"})
	r.Append(&Action{Marker: "theirs", Label: "b"})
	r.Append(&Action{Marker: "mine", Label: "c"})

	if removed := r.RemoveMarked("mine"); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	got := r.Actions()
	if len(got) != 1 || got[0].Label != "b" {
		t.Errorf("remaining = %v, want only %q", got, "b")
	}
	if removed := r.RemoveMarked("mine"); removed != 0 {
		t.Errorf("second remove = %d, want 0", removed)
	}
}

func TestActionRow_Marked(t *testing.T) {
	r := &ActionRow{}
	r.Append(&Action{Marker: "mine", Label: "a"})
	r.Append(&Action{Marker: "theirs", Label: "b"})

	marked := r.Marked("mine")
	if len(marked) != 1 || marked[0].Label != "a" {
		t.Errorf("Marked(mine) = %v, want [a]", marked)
	}
}

func TestActionRow_NilSafe(t *testing.T) {
	var r *ActionRow
	if r.Len() != 0 {
		t.Error("nil row Len should be 0")
	}
	if r.Actions() != nil {
		t.Error("nil row Actions should be nil")
	}
	if r.RemoveMarked("x") != 0 {
		t.Error("nil row RemoveMarked should be 0")
	}
	r.InsertFront(&Action{}) // must not panic
	r.Append(&Action{})
}
