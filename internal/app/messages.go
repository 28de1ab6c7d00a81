package app

import tea "github.com/charmbracelet/bubbletea"

// fatalErrorMsg is sent to the Bubble Tea program when a background subsystem
// encounters an unrecoverable error. The app should quit and show the error.
type fatalErrorMsg struct{ err error }

func fatalCmd(err error) tea.Cmd {
	return tea.Batch(tea.Printf("fatal: %v\n", err), tea.Quit)
}

// indexInitDoneMsg reports the result of the initial full index pass.
type indexInitDoneMsg struct{ err error }

// noteIndexedMsg signals that the watcher picked up a vault change and the
// index is fresh again. Panes and the tree should re-read their content.
type noteIndexedMsg struct{}

// editorFinishedMsg reports the external $EDITOR process exiting.
type editorFinishedMsg struct {
	path string // vault-relative path that was edited
	err  error
}
