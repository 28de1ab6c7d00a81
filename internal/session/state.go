package session

import "github.com/liduchuan/content-visible/internal/storage"

// State is the UI session restored on startup.
type State struct {
	OpenNotes  []string `json:"open_notes,omitempty"`
	ActivePane int      `json:"active_pane"`
	ShowTree   bool     `json:"show_tree"`
	TreeWidth  int      `json:"tree_width,omitempty"`
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowTree:  true,
		TreeWidth: 30,
	}
}

const scope = "session"

// Load reads the session blob, merging it over defaults. A broken blob
// resets to defaults and returns the error.
func Load(store *storage.Store) (State, error) {
	st := Default()
	if _, err := store.Load(scope, &st); err != nil {
		return Default(), err
	}
	return st, nil
}

// Save writes the session blob.
func Save(store *storage.Store, st State) error {
	return store.Save(scope, st)
}
