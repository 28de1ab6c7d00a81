package workspace

import "testing"

func TestNew_StartsWithWelcome(t *testing.T) {
	w := New()
	panes := w.Panes()
	if len(panes) != 1 {
		t.Fatalf("New() has %d panes, want 1", len(panes))
	}
	if panes[0].Kind != KindWelcome {
		t.Errorf("startup pane kind = %v, want %v", panes[0].Kind, KindWelcome)
	}
	if panes[0].ActionRow() != nil {
		t.Error("welcome pane should have no action row")
	}
}

func TestOpenNote_ReplacesWelcome(t *testing.T) {
	w := New()
	p := w.OpenNote("notes/foo.md", "foo")

	if got := len(w.Panes()); got != 1 {
		t.Fatalf("pane count = %d, want 1", got)
	}
	if w.Active() != p {
		t.Error("opened pane should be active")
	}
	if p.Kind != KindDocument {
		t.Errorf("pane kind = %v, want %v", p.Kind, KindDocument)
	}
	if p.ActionRow() == nil {
		t.Error("document pane should have an action row")
	}
}

func TestOpenNote_RetargetsActiveDocument(t *testing.T) {
	w := New()
	first := w.OpenNote("a.md", "a")
	first.Scroll = 12
	second := w.OpenNote("b.md", "b")

	if second.ID != first.ID {
		t.Error("opening over a document pane should reuse the pane")
	}
	if second.Path != "b.md" {
		t.Errorf("pane path = %q, want %q", second.Path, "b.md")
	}
	if second.Scroll != 0 {
		t.Errorf("scroll after retarget = %d, want 0", second.Scroll)
	}
	if got := len(w.Panes()); got != 1 {
		t.Errorf("pane count = %d, want 1", got)
	}
}

func TestOpenSplit_AppendsAndFocuses(t *testing.T) {
	w := New()
	w.OpenNote("a.md", "a")
	p := w.OpenSplit("b.md", "b")

	if got := len(w.Panes()); got != 2 {
		t.Fatalf("pane count = %d, want 2", got)
	}
	if w.Active() != p {
		t.Error("split pane should be active")
	}
	if w.ActiveIndex() != 1 {
		t.Errorf("active index = %d, want 1", w.ActiveIndex())
	}
}

func TestClosePane_LastBringsWelcomeBack(t *testing.T) {
	w := New()
	p := w.OpenNote("a.md", "a")
	w.ClosePane(p.ID)

	panes := w.Panes()
	if len(panes) != 1 {
		t.Fatalf("pane count = %d, want 1", len(panes))
	}
	if panes[0].Kind != KindWelcome {
		t.Errorf("remaining pane kind = %v, want %v", panes[0].Kind, KindWelcome)
	}
}

func TestClosePane_AdjustsActiveIndex(t *testing.T) {
	w := New()
	a := w.OpenNote("a.md", "a")
	w.OpenSplit("b.md", "b")
	c := w.OpenSplit("c.md", "c")

	// Closing a pane left of the active one shifts the index down.
	w.ClosePane(a.ID)
	if w.Active() != c {
		t.Errorf("active pane = %q, want %q", w.Active().Path, c.Path)
	}

	// Closing the active rightmost pane falls back to the previous one.
	w.ClosePane(c.ID)
	if got := w.Active().Path; got != "b.md" {
		t.Errorf("active pane = %q, want %q", got, "b.md")
	}
}

func TestFocusNext_Wraps(t *testing.T) {
	w := New()
	w.OpenNote("a.md", "a")
	w.OpenSplit("b.md", "b")

	w.FocusNext()
	if got := w.Active().Path; got != "a.md" {
		t.Errorf("after FocusNext active = %q, want %q", got, "a.md")
	}
	w.FocusPrev()
	if got := w.Active().Path; got != "b.md" {
		t.Errorf("after FocusPrev active = %q, want %q", got, "b.md")
	}
}

func TestOnActiveChange_FiresAndCancels(t *testing.T) {
	w := New()
	fired := 0
	cancel := w.OnActiveChange(func() { fired++ })

	w.OpenNote("a.md", "a")
	if fired != 1 {
		t.Errorf("after OpenNote fired = %d, want 1", fired)
	}
	w.OpenSplit("b.md", "b")
	w.FocusNext()
	if fired != 3 {
		t.Errorf("after split+focus fired = %d, want 3", fired)
	}

	cancel()
	w.CloseActive()
	if fired != 3 {
		t.Errorf("after cancel fired = %d, want 3", fired)
	}
}

func TestSetActive_IgnoresOutOfRange(t *testing.T) {
	w := New()
	w.OpenNote("a.md", "a")
	fired := 0
	w.OnActiveChange(func() { fired++ })

	w.SetActive(-1)
	w.SetActive(5)
	w.SetActive(0) // already active
	if fired != 0 {
		t.Errorf("no-op SetActive fired %d notifications, want 0", fired)
	}
}

func TestRootFlags(t *testing.T) {
	w := New()
	if w.HasRootFlag(FlagContentHidden) {
		t.Error("fresh workspace should have no flags")
	}
	w.SetRootFlag(FlagContentHidden, true)
	if !w.HasRootFlag(FlagContentHidden) {
		t.Error("flag should be set")
	}
	w.SetRootFlag(FlagContentHidden, true) // idempotent
	w.SetRootFlag(FlagContentHidden, false)
	if w.HasRootFlag(FlagContentHidden) {
		t.Error("flag should be cleared")
	}
}
