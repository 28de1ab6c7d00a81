package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liduchuan/content-visible/internal/theme"
)

// Status is the status bar at the bottom. The left side shows the open
// note (or the vault path), errors override it, and the right side holds
// extension-owned items in registration order.
type Status struct {
	width    int
	vaultDir string
	file     string
	errMsg   string
	items    []string
	theme    *theme.Theme
}

func NewStatus(vaultDir string, th *theme.Theme) Status {
	return Status{
		vaultDir: vaultDir,
		theme:    th,
	}
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetFile(file string) {
	s.file = file
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

// SetItems replaces the right-aligned item texts.
func (s *Status) SetItems(items []string) {
	s.items = items
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	th := s.theme

	bgStyle := lipgloss.NewStyle().
		Background(th.StatusBg)

	var left string
	if s.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.Error).
			Padding(0, 1)
		left = errStyle.Render(s.errMsg)
	} else {
		file := s.file
		if file == "" {
			file = s.vaultDir
		}
		fileStyle := lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.StatusFg).
			Padding(0, 1)
		left = fileStyle.Render(file)
	}

	right := ""
	if len(s.items) > 0 {
		itemStyle := lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.StatusFg).
			Padding(0, 1)
		parts := make([]string, len(s.items))
		for i, item := range s.items {
			parts[i] = itemStyle.Render(item)
		}
		right = strings.Join(parts, "")
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
