package panel

import (
	"strings"
	"testing"

	"github.com/liduchuan/content-visible/internal/theme"
)

func TestStatus_ErrorOverridesFile(t *testing.T) {
	th := theme.Get("catppuccin")
	s := NewStatus("/vault", &th)
	s.SetWidth(80)
	s.SetFile("notes/a.md")

	if !strings.Contains(s.View(), "notes/a.md") {
		t.Error("status should show the open file")
	}

	s.SetError("boom")
	view := s.View()
	if !strings.Contains(view, "boom") {
		t.Error("status should show the error")
	}
	if strings.Contains(view, "notes/a.md") {
		t.Error("error should replace the file section")
	}

	s.ClearError()
	if !strings.Contains(s.View(), "notes/a.md") {
		t.Error("file section should come back after ClearError")
	}
}

func TestStatus_ItemsRightAligned(t *testing.T) {
	th := theme.Get("catppuccin")
	s := NewStatus("/vault", &th)
	s.SetWidth(60)
	s.SetItems([]string{"👁️ Visible"})

	view := s.View()
	if !strings.Contains(view, "👁️ Visible") {
		t.Errorf("status missing item text: %q", view)
	}

	// Item text sits after the file section.
	if strings.Index(view, "Visible") < strings.Index(view, "/vault") {
		t.Error("items should render on the right side")
	}

	s.SetItems(nil)
	if strings.Contains(s.View(), "Visible") {
		t.Error("cleared items should not render")
	}
}

func TestStatus_EmptyFileFallsBackToVault(t *testing.T) {
	th := theme.Get("catppuccin")
	s := NewStatus("/home/u/notes", &th)
	s.SetWidth(80)

	if !strings.Contains(s.View(), "/home/u/notes") {
		t.Error("status should fall back to the vault path")
	}
}
