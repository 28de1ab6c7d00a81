package extension

import "fmt"

type loaded struct {
	ext  Extension
	host Host
}

// Registry tracks registered extensions, their lifecycle, and the shared
// command table.
type Registry struct {
	exts   []Extension
	loaded []loaded

	cmds  []Command
	cmdID map[string]int
}

func NewRegistry() *Registry {
	return &Registry{cmdID: make(map[string]int)}
}

// Register adds an extension to be loaded by the next LoadAll.
func (r *Registry) Register(e Extension) {
	r.exts = append(r.exts, e)
}

// LoadAll loads every registered extension, giving each its own host. A
// load failure is reported through that host and the extension is skipped;
// the rest still load.
func (r *Registry) LoadAll(newHost func(Manifest) Host) {
	for _, e := range r.exts {
		h := newHost(e.Manifest())
		if err := e.Load(h); err != nil {
			h.ReportError(fmt.Errorf("load extension %s: %w", e.Manifest().ID, err))
			if d, ok := h.(Detacher); ok {
				d.Detach()
			}
			continue
		}
		r.loaded = append(r.loaded, loaded{ext: e, host: h})
	}
}

// UnloadAll unloads extensions in reverse load order. After each Unload the
// host is detached, releasing anything the extension forgot.
func (r *Registry) UnloadAll() {
	for i := len(r.loaded) - 1; i >= 0; i-- {
		l := r.loaded[i]
		if err := l.ext.Unload(); err != nil {
			l.host.ReportError(fmt.Errorf("unload extension %s: %w", l.ext.Manifest().ID, err))
		}
		if d, ok := l.host.(Detacher); ok {
			d.Detach()
		}
	}
	r.loaded = nil
}

// AddCommand puts a command in the shared table. Hosts call this on behalf
// of their extension; the app registers its built-ins directly.
func (r *Registry) AddCommand(c Command) error {
	if _, dup := r.cmdID[c.ID]; dup {
		return fmt.Errorf("command %q already registered", c.ID)
	}
	r.cmdID[c.ID] = len(r.cmds)
	r.cmds = append(r.cmds, c)
	return nil
}

// RemoveCommand drops a command from the table. Unknown IDs are ignored.
func (r *Registry) RemoveCommand(id string) {
	i, ok := r.cmdID[id]
	if !ok {
		return
	}
	r.cmds = append(r.cmds[:i], r.cmds[i+1:]...)
	delete(r.cmdID, id)
	for j := i; j < len(r.cmds); j++ {
		r.cmdID[r.cmds[j].ID] = j
	}
}

// Commands returns the table in registration order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.cmds...)
}

// Command looks up a command by ID.
func (r *Registry) Command(id string) (Command, bool) {
	i, ok := r.cmdID[id]
	if !ok {
		return Command{}, false
	}
	return r.cmds[i], true
}
