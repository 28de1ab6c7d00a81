package visibility

import (
	"fmt"

	"github.com/liduchuan/content-visible/internal/extension"
	"github.com/liduchuan/content-visible/internal/workspace"
)

const (
	// Marker tags this extension's header actions, both for removal on
	// rescan and for duplicate detection.
	Marker = "content-visible"

	// CommandID is the user-invocable toggle command.
	CommandID   = "toggle-content-visibility"
	commandName = "Toggle content visibility"

	statusVisible = "👁️ Visible"
	statusHidden  = "🚫 Hidden"
)

type settings struct {
	ContentVisible bool `json:"contentVisible"`
}

func defaults() settings {
	return settings{ContentVisible: true}
}

// Extension hides or shows every note body at once. It owns one persisted
// boolean and keeps every header button, the root presentation flag, and
// the status indicator derived from it. Buttons are never patched across
// pane changes; each rescan rebuilds them from scratch.
type Extension struct {
	host   extension.Host
	state  settings
	status extension.StatusItem
	cancel func()
}

func New() *Extension {
	return &Extension{}
}

func (e *Extension) Manifest() extension.Manifest {
	return extension.Manifest{
		ID:      "content-visible",
		Name:    "Content Visibility",
		Version: "1.0.0",
	}
}

// Load reads persisted state, registers the toggle command, hooks pane
// changes, and brings every surface in line with the loaded value.
func (e *Extension) Load(host extension.Host) error {
	e.host = host

	e.state = defaults()
	if err := host.LoadData(&e.state); err != nil {
		// A broken blob is not fatal; run with defaults.
		host.ReportError(fmt.Errorf("content-visible: load settings: %w", err))
		e.state = defaults()
	}

	if err := host.RegisterCommand(extension.Command{
		ID:   CommandID,
		Name: commandName,
		Run:  e.Toggle,
	}); err != nil {
		return err
	}

	e.cancel = host.OnActivePaneChange(e.rescan)
	e.status = host.AddStatusItem()

	e.rescan()
	e.applyEffect()
	e.refreshStatus()
	return nil
}

// Unload removes every button and the root flag, restoring the host's
// pre-extension look. Persisted state is left alone.
func (e *Extension) Unload() error {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	for _, p := range e.host.Panes() {
		p.ActionRow().RemoveMarked(Marker)
	}
	e.host.SetRootFlag(workspace.FlagContentHidden, false)
	if e.status != nil {
		e.status.Remove()
		e.status = nil
	}
	return nil
}

// Visible reports the current state.
func (e *Extension) Visible() bool {
	return e.state.ContentVisible
}

// Toggle flips the state, persists it, and refreshes every surface within
// the same turn. Save failures go to the host error surface and are not
// retried.
func (e *Extension) Toggle() {
	e.state.ContentVisible = !e.state.ContentVisible
	if err := e.host.SaveData(e.state); err != nil {
		e.host.ReportError(fmt.Errorf("content-visible: save settings: %w", err))
	}
	e.applyEffect()
	e.refreshAffordances()
	e.refreshStatus()
}

// rescan rebuilds the header buttons: every marked action is removed from
// every pane, then each document pane gets exactly one fresh button at the
// front of its row. Panes without a header row are skipped silently.
func (e *Extension) rescan() {
	for _, p := range e.host.Panes() {
		p.ActionRow().RemoveMarked(Marker)
	}

	icon, label := e.look()
	for _, p := range e.host.Panes() {
		if p.Kind != workspace.KindDocument {
			continue
		}
		row := p.ActionRow()
		if row == nil {
			continue
		}
		row.InsertFront(&workspace.Action{
			Marker:  Marker,
			Icon:    icon,
			Label:   label,
			OnClick: e.Toggle,
		})
	}
}

// refreshAffordances updates icon and label on every existing button in
// place; nothing is added, removed, or moved.
func (e *Extension) refreshAffordances() {
	icon, label := e.look()
	for _, p := range e.host.Panes() {
		for _, a := range p.ActionRow().Marked(Marker) {
			a.Icon = icon
			a.Label = label
		}
	}
}

// applyEffect keeps the root flag derived from the state: flag set means
// bodies are hidden.
func (e *Extension) applyEffect() {
	e.host.SetRootFlag(workspace.FlagContentHidden, !e.state.ContentVisible)
}

func (e *Extension) refreshStatus() {
	if e.state.ContentVisible {
		e.status.SetText(statusVisible)
		return
	}
	e.status.SetText(statusHidden)
}

func (e *Extension) look() (icon, label string) {
	if e.state.ContentVisible {
		return "👁", "content visible"
	}
	return "🚫", "content hidden"
}
