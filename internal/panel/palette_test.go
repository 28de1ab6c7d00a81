package panel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liduchuan/content-visible/internal/theme"
)

func testPalette() Palette {
	th := theme.Get("catppuccin")
	p := NewPalette(&th)
	p.Show([]PaletteItem{
		{ID: "toggle-content-visibility", Name: "Toggle content visibility"},
		{ID: "open-daily-note", Name: "Open daily note"},
		{ID: "format-note", Name: "Format note"},
	})
	return p
}

func TestPalette_FilterByName(t *testing.T) {
	p := testPalette()

	p.filter("daily")
	if len(p.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(p.items))
	}
	if p.items[0].ID != "open-daily-note" {
		t.Errorf("item = %q, want %q", p.items[0].ID, "open-daily-note")
	}
}

func TestPalette_FilterByID(t *testing.T) {
	p := testPalette()

	p.filter("visibility")
	if len(p.items) != 1 || p.items[0].ID != "toggle-content-visibility" {
		t.Fatalf("filter by id: got %v", p.items)
	}

	// Empty query restores the full set.
	p.filter("")
	if len(p.items) != 3 {
		t.Errorf("expected 3 items after clearing filter, got %d", len(p.items))
	}
}

func TestPalette_EnterSendsResult(t *testing.T) {
	p := testPalette()

	down := tea.KeyMsg{Type: tea.KeyDown}
	p, _ = p.Update(down)

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	p, cmd := p.Update(enter)
	if cmd == nil {
		t.Fatal("expected a result cmd")
	}

	msg, ok := cmd().(PaletteResultMsg)
	if !ok {
		t.Fatalf("expected PaletteResultMsg, got %T", cmd())
	}
	if msg.ID != "open-daily-note" {
		t.Errorf("result = %q, want %q", msg.ID, "open-daily-note")
	}
	if p.Visible() {
		t.Error("palette should hide after selection")
	}
}

func TestPalette_EscCloses(t *testing.T) {
	p := testPalette()

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	p, cmd := p.Update(esc)
	if cmd == nil {
		t.Fatal("expected a close cmd")
	}
	if _, ok := cmd().(PaletteClosedMsg); !ok {
		t.Fatalf("expected PaletteClosedMsg, got %T", cmd())
	}
	if p.Visible() {
		t.Error("palette should hide on esc")
	}
}
