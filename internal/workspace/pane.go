package workspace

import "github.com/google/uuid"

// Kind classifies what a pane shows.
type Kind int

const (
	// KindDocument renders a markdown note body.
	KindDocument Kind = iota
	// KindOutline shows the heading tree and linked mentions of a note.
	KindOutline
	// KindWelcome is the splash shown while nothing is open. It has no
	// header action row.
	KindWelcome
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindOutline:
		return "outline"
	case KindWelcome:
		return "welcome"
	}
	return "unknown"
}

// Pane is one workspace column. ID is stable for the pane's lifetime even
// when the pane is retargeted to another note.
type Pane struct {
	ID    string
	Kind  Kind
	Path  string // vault-relative note path; empty for welcome panes
	Title string

	// Scroll is the first visible body line, clamped by the renderer.
	Scroll int

	actions *ActionRow
}

func newPane(kind Kind, path, title string) *Pane {
	p := &Pane{
		ID:    uuid.NewString(),
		Kind:  kind,
		Path:  path,
		Title: title,
	}
	if kind != KindWelcome {
		p.actions = &ActionRow{}
	}
	return p
}

// ActionRow returns the pane's header action row, or nil when the pane has
// no header (welcome panes).
func (p *Pane) ActionRow() *ActionRow {
	return p.actions
}
