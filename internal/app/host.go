package app

import (
	"github.com/liduchuan/content-visible/internal/extension"
	"github.com/liduchuan/content-visible/internal/workspace"
)

// statusItem is one extension-owned slot in the status bar. Items render in
// creation order; a removed item simply stops rendering.
type statusItem struct {
	app     *App
	text    string
	removed bool
}

func (si *statusItem) SetText(text string) {
	si.text = text
	si.app.syncStatusItems()
}

func (si *statusItem) Remove() {
	si.removed = true
	si.app.syncStatusItems()
}

// appHost adapts the app to the extension host surface. Each extension gets
// its own host, so Detach can release exactly what that extension acquired.
type appHost struct {
	app      *App
	manifest extension.Manifest

	cancels []func()
	items   []*statusItem
	cmdIDs  []string
}

func (a *App) newHost(m extension.Manifest) extension.Host {
	return &appHost{app: a, manifest: m}
}

func (h *appHost) Panes() []*workspace.Pane {
	return h.app.ws.Panes()
}

func (h *appHost) ActivePane() *workspace.Pane {
	return h.app.ws.Active()
}

func (h *appHost) OnActivePaneChange(fn func()) func() {
	cancel := h.app.ws.OnActiveChange(fn)
	h.cancels = append(h.cancels, cancel)
	return cancel
}

func (h *appHost) SetRootFlag(name string, on bool) {
	h.app.ws.SetRootFlag(name, on)
}

func (h *appHost) HasRootFlag(name string) bool {
	return h.app.ws.HasRootFlag(name)
}

func (h *appHost) RegisterCommand(cmd extension.Command) error {
	if err := h.app.registry.AddCommand(cmd); err != nil {
		return err
	}
	h.cmdIDs = append(h.cmdIDs, cmd.ID)
	return nil
}

// Extension data lives in its own blob per extension ID, under .cv/ext/.
func (h *appHost) dataScope() string {
	return "ext/" + h.manifest.ID
}

func (h *appHost) LoadData(v any) error {
	_, err := h.app.store.Load(h.dataScope(), v)
	return err
}

func (h *appHost) SaveData(v any) error {
	return h.app.store.Save(h.dataScope(), v)
}

func (h *appHost) AddStatusItem() extension.StatusItem {
	si := &statusItem{app: h.app}
	h.items = append(h.items, si)
	h.app.statusItems = append(h.app.statusItems, si)
	return si
}

func (h *appHost) ReportError(err error) {
	h.app.reportError(err)
}

// Detach releases every subscription, status item, and command the extension
// registered through this host. The registry calls it after Unload, so even
// a forgetful extension leaves nothing behind.
func (h *appHost) Detach() {
	for _, cancel := range h.cancels {
		cancel()
	}
	h.cancels = nil

	for _, si := range h.items {
		si.removed = true
	}
	h.items = nil
	h.app.syncStatusItems()

	for _, id := range h.cmdIDs {
		h.app.registry.RemoveCommand(id)
	}
	h.cmdIDs = nil
}
