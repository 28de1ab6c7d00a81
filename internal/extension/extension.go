package extension

import (
	"github.com/liduchuan/content-visible/internal/workspace"
)

// Manifest identifies an extension. ID scopes its persisted data and names
// it in logs and error messages.
type Manifest struct {
	ID      string
	Name    string
	Version string
}

// Extension is a unit of optional behavior loaded into the app. Load and
// Unload run on the update loop; implementations hold no locks.
type Extension interface {
	Manifest() Manifest

	// Load wires the extension into the host. An error means the extension
	// stays unloaded; it must not leave partial hooks behind.
	Load(host Host) error

	// Unload releases everything acquired in Load. Persisted data stays.
	Unload() error
}

// Command is an invocable action exposed to the palette and keymap.
type Command struct {
	ID   string
	Name string
	Run  func()
}

// StatusItem is one extension-owned slot in the status bar.
type StatusItem interface {
	SetText(text string)
	Remove()
}

// Host is the surface an extension programs against. It decouples
// extensions from the app model, so they are testable against a fake.
type Host interface {
	// Workspace
	Panes() []*workspace.Pane
	ActivePane() *workspace.Pane
	OnActivePaneChange(fn func()) (cancel func())
	SetRootFlag(name string, on bool)
	HasRootFlag(name string) bool

	// Commands
	RegisterCommand(cmd Command) error

	// Settings, a JSON blob scoped to the extension ID. Load leaves v
	// untouched when nothing was saved yet.
	LoadData(v any) error
	SaveData(v any) error

	// Status bar
	AddStatusItem() StatusItem

	// ReportError surfaces a non-fatal failure to the user and the log.
	ReportError(err error)
}

// Detacher is implemented by hosts that can force-release everything their
// extension acquired. The registry calls it after Unload as a backstop, so
// a forgetful extension cannot leak hooks into the app.
type Detacher interface {
	Detach()
}
