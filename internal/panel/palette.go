package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liduchuan/content-visible/internal/theme"
)

// PaletteItem is one invocable command shown in the palette.
type PaletteItem struct {
	ID   string
	Name string
}

// PaletteResultMsg is sent when a command is chosen.
type PaletteResultMsg struct {
	ID string
}

// PaletteClosedMsg is sent when the palette is dismissed.
type PaletteClosedMsg struct{}

// Palette is the command palette overlay. Unlike the finder it filters a
// fixed item set handed to Show; no search callback is involved.
type Palette struct {
	input   textinput.Model
	all     []PaletteItem
	items   []PaletteItem
	cursor  int
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewPalette(th *theme.Theme) Palette {
	ti := textinput.New()
	ti.Placeholder = "Run command..."
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	return Palette{
		input: ti,
		theme: th,
	}
}

func (p *Palette) Show(items []PaletteItem) {
	p.visible = true
	p.all = items
	p.items = items
	p.cursor = 0
	p.input.SetValue("")
	p.input.Focus()
}

func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Visible() bool {
	return p.visible
}

func (p *Palette) filter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		p.items = p.all
		p.cursor = 0
		return
	}

	var matched []PaletteItem
	for _, item := range p.all {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.ID), query) {
			matched = append(matched, item)
		}
	}
	p.items = matched
	p.cursor = 0
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			return p, func() tea.Msg { return PaletteClosedMsg{} }

		case "enter":
			if p.cursor < len(p.items) {
				item := p.items[p.cursor]
				p.visible = false
				return p, func() tea.Msg {
					return PaletteResultMsg{ID: item.ID}
				}
			}
			return p, nil

		case "up", "ctrl+p", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "down", "ctrl+n", "ctrl+j":
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	prevValue := p.input.Value()
	p.input, cmd = p.input.Update(msg)

	if p.input.Value() != prevValue {
		p.filter(p.input.Value())
	}

	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	th := p.theme

	width := p.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	var lines []string
	lines = append(lines, titleStyle.Render("Commands"))
	lines = append(lines, p.input.View())
	lines = append(lines, "")

	maxResults := p.height/2 - 4
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > len(p.items) {
		maxResults = len(p.items)
	}

	if len(p.items) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim)
		lines = append(lines, dim.Render("No matching commands"))
	} else {
		for i := 0; i < maxResults; i++ {
			item := p.items[i]
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(th.Text)

			if i == p.cursor {
				prefix = "> "
				style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
			}

			line := prefix + item.Name
			if lipgloss.Width(line) > innerWidth {
				line = line[:innerWidth-3] + "..."
			}

			lines = append(lines, style.Render(line))
		}

		if len(p.items) > maxResults {
			dim := lipgloss.NewStyle().Foreground(th.Dim)
			lines = append(lines, dim.Render(fmt.Sprintf("  ... and %d more", len(p.items)-maxResults)))
		}
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (p *Palette) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width/2 - 8
}
