package visibility

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/liduchuan/content-visible/internal/extension"
	"github.com/liduchuan/content-visible/internal/storage"
	"github.com/liduchuan/content-visible/internal/workspace"
)

// testHost implements extension.Host over a real workspace and a real
// on-disk store, so tests exercise the same semantics the app does.
type testHost struct {
	t     *testing.T
	ws    *workspace.Workspace
	store *storage.Store
	scope string

	cmds     map[string]extension.Command
	items    []*testStatusItem
	reported []error
}

type testStatusItem struct {
	text    string
	removed bool
}

func (s *testStatusItem) SetText(text string) { s.text = text }
func (s *testStatusItem) Remove()             { s.removed = true }

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	return &testHost{
		t:     t,
		ws:    workspace.New(),
		store: storage.NewStore(t.TempDir()),
		scope: filepath.Join("ext", "content-visible"),
		cmds:  make(map[string]extension.Command),
	}
}

func (h *testHost) Panes() []*workspace.Pane    { return h.ws.Panes() }
func (h *testHost) ActivePane() *workspace.Pane { return h.ws.Active() }

func (h *testHost) OnActivePaneChange(fn func()) (cancel func()) {
	return h.ws.OnActiveChange(fn)
}

func (h *testHost) SetRootFlag(name string, on bool) { h.ws.SetRootFlag(name, on) }
func (h *testHost) HasRootFlag(name string) bool     { return h.ws.HasRootFlag(name) }

func (h *testHost) RegisterCommand(cmd extension.Command) error {
	if _, dup := h.cmds[cmd.ID]; dup {
		return fmt.Errorf("command %q already registered", cmd.ID)
	}
	h.cmds[cmd.ID] = cmd
	return nil
}

func (h *testHost) LoadData(v any) error {
	_, err := h.store.Load(h.scope, v)
	return err
}

func (h *testHost) SaveData(v any) error {
	return h.store.Save(h.scope, v)
}

func (h *testHost) AddStatusItem() extension.StatusItem {
	item := &testStatusItem{}
	h.items = append(h.items, item)
	return item
}

func (h *testHost) ReportError(err error) {
	h.reported = append(h.reported, err)
}

// statusText returns the text of the single live status item.
func (h *testHost) statusText() string {
	h.t.Helper()
	var live *testStatusItem
	for _, item := range h.items {
		if !item.removed {
			if live != nil {
				h.t.Fatal("more than one live status item")
			}
			live = item
		}
	}
	if live == nil {
		h.t.Fatal("no live status item")
	}
	return live.text
}

// markedCount returns how many marked actions the pane carries.
func markedCount(p *workspace.Pane) int {
	return len(p.ActionRow().Marked(Marker))
}
