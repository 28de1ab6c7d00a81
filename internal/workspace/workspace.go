package workspace

// FlagContentHidden marks the workspace root while note bodies are blanked
// out. The renderer swaps document bodies for a veil whenever it is set.
const FlagContentHidden = "content-hidden"

// Workspace owns the pane set, the active pane, and the root presentation
// flags. It is plain state driven from the update loop; no goroutines, no
// locks. Subscribers run synchronously on the calling goroutine after each
// change settles.
type Workspace struct {
	panes  []*Pane
	active int
	flags  map[string]bool

	subs    map[int]func()
	nextSub int
}

func New() *Workspace {
	w := &Workspace{
		flags: make(map[string]bool),
		subs:  make(map[int]func()),
	}
	w.panes = []*Pane{newPane(KindWelcome, "", "welcome")}
	return w
}

// Panes returns the panes in display order.
func (w *Workspace) Panes() []*Pane {
	return append([]*Pane(nil), w.panes...)
}

// Active returns the focused pane. There is always at least one pane.
func (w *Workspace) Active() *Pane {
	return w.panes[w.active]
}

// ActiveIndex returns the position of the focused pane.
func (w *Workspace) ActiveIndex() int {
	return w.active
}

// Pane looks up a pane by ID.
func (w *Workspace) Pane(id string) *Pane {
	for _, p := range w.panes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SetActive focuses the pane at index i. Out-of-range indices are ignored.
func (w *Workspace) SetActive(i int) {
	if i < 0 || i >= len(w.panes) || i == w.active {
		return
	}
	w.active = i
	w.notify()
}

// FocusPane focuses the pane with the given ID.
func (w *Workspace) FocusPane(id string) {
	for i, p := range w.panes {
		if p.ID == id {
			w.SetActive(i)
			return
		}
	}
}

// FocusNext cycles focus rightward.
func (w *Workspace) FocusNext() {
	if len(w.panes) > 1 {
		w.active = (w.active + 1) % len(w.panes)
		w.notify()
	}
}

// FocusPrev cycles focus leftward.
func (w *Workspace) FocusPrev() {
	if len(w.panes) > 1 {
		w.active = (w.active - 1 + len(w.panes)) % len(w.panes)
		w.notify()
	}
}

// OpenNote shows the note at relPath. A focused document pane is retargeted
// in place (same pane ID); otherwise a new document pane is appended and
// focused. The welcome pane is replaced by the first real pane.
func (w *Workspace) OpenNote(relPath, title string) *Pane {
	if a := w.Active(); a.Kind == KindDocument {
		a.Path = relPath
		a.Title = title
		a.Scroll = 0
		w.notify()
		return a
	}
	return w.OpenSplit(relPath, title)
}

// OpenSplit always opens the note in a new document pane next to the
// current ones.
func (w *Workspace) OpenSplit(relPath, title string) *Pane {
	p := newPane(KindDocument, relPath, title)
	w.addPane(p)
	return p
}

// OpenOutline opens an outline pane for the note at relPath.
func (w *Workspace) OpenOutline(relPath, title string) *Pane {
	p := newPane(KindOutline, relPath, title)
	w.addPane(p)
	return p
}

func (w *Workspace) addPane(p *Pane) {
	// The welcome pane only exists while nothing else is open.
	if len(w.panes) == 1 && w.panes[0].Kind == KindWelcome {
		w.panes = w.panes[:0]
	}
	w.panes = append(w.panes, p)
	w.active = len(w.panes) - 1
	w.notify()
}

// ClosePane removes the pane with the given ID. Closing the last pane
// brings the welcome pane back.
func (w *Workspace) ClosePane(id string) {
	for i, p := range w.panes {
		if p.ID != id {
			continue
		}
		w.panes = append(w.panes[:i], w.panes[i+1:]...)
		if len(w.panes) == 0 {
			w.panes = []*Pane{newPane(KindWelcome, "", "welcome")}
			w.active = 0
		} else if w.active >= len(w.panes) {
			w.active = len(w.panes) - 1
		} else if w.active > i {
			w.active--
		}
		w.notify()
		return
	}
}

// CloseActive removes the focused pane.
func (w *Workspace) CloseActive() {
	w.ClosePane(w.Active().ID)
}

// OnActiveChange registers fn to run after any change to the pane set or
// the focused pane. The returned func cancels the subscription.
func (w *Workspace) OnActiveChange(fn func()) func() {
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() { delete(w.subs, id) }
}

func (w *Workspace) notify() {
	for _, fn := range w.subs {
		fn()
	}
}

// SetRootFlag sets or clears a named presentation flag on the workspace
// root. Flags are read by the renderer; setting one never mutates panes.
func (w *Workspace) SetRootFlag(name string, on bool) {
	if on {
		w.flags[name] = true
		return
	}
	delete(w.flags, name)
}

// HasRootFlag reports whether the named flag is set.
func (w *Workspace) HasRootFlag(name string) bool {
	return w.flags[name]
}
