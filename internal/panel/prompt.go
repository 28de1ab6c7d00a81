package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liduchuan/content-visible/internal/theme"
)

// PromptResultMsg is sent when the prompt is confirmed.
type PromptResultMsg struct {
	Value string
}

// PromptCancelledMsg is sent when the prompt is dismissed.
type PromptCancelledMsg struct{}

// Prompt is a centered overlay text input dialog. The app decides when to
// hide it, so a rejected value can keep the prompt open with an error.
type Prompt struct {
	input   textinput.Model
	title   string
	errMsg  string
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewPrompt(th *theme.Theme) Prompt {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return Prompt{input: ti, theme: th}
}

func (p *Prompt) Show(title, placeholder string) {
	p.visible = true
	p.title = title
	p.errMsg = ""
	p.input.Placeholder = placeholder
	p.input.SetValue("")
	p.input.Focus()
}

// ShowConfirm asks a yes/no question. Only the literal answer "yes"
// confirms; anything else counts as a no.
func (p *Prompt) ShowConfirm(question string) {
	p.Show(question, "type yes to confirm")
}

// SetError shows a validation message under the input and keeps the
// prompt open.
func (p *Prompt) SetError(msg string) {
	p.errMsg = msg
}

func (p *Prompt) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p Prompt) Visible() bool {
	return p.visible
}

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				p.visible = false
				return p, func() tea.Msg { return PromptCancelledMsg{} }
			}
			// Stay visible; the app hides the prompt once the value
			// passes validation.
			return p, func() tea.Msg { return PromptResultMsg{Value: value} }

		case "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	prevValue := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prevValue {
		p.errMsg = ""
	}
	return p, cmd
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}

	width := p.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	th := p.theme

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	dimStyle := lipgloss.NewStyle().
		Foreground(th.Dim)

	var lines []string
	lines = append(lines, titleStyle.Render(p.title))
	lines = append(lines, p.input.View())
	if p.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(th.Error)
		lines = append(lines, errStyle.Render(p.errMsg))
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("Enter to confirm, Esc to cancel"))

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (p *Prompt) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width/2 - 8
}
