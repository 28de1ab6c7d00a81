package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liduchuan/content-visible/internal/extensions/visibility"
)

// Binding represents a leader key binding.
type Binding struct {
	Key      string
	Label    string
	Action   func(a *App) tea.Cmd
	Children map[string]*Binding
}

// LeaderState tracks the leader key sequence.
type LeaderState struct {
	active   bool
	keys     string
	node     map[string]*Binding
	showHelp bool
}

// leaderTimeoutMsg signals leader key timeout.
type leaderTimeoutMsg struct{}

func newBindings() map[string]*Binding {
	return map[string]*Binding{
		" ": {
			Key: "Space", Label: "Find note",
			Action: func(a *App) tea.Cmd {
				a.ToggleFinder()
				return nil
			},
		},
		"p": {
			Key: "p", Label: "Command palette",
			Action: func(a *App) tea.Cmd {
				a.ShowPalette()
				return nil
			},
		},
		"n": {
			Key: "n", Label: "+note",
			Children: map[string]*Binding{
				"n": {Key: "n", Label: "New note", Action: func(a *App) tea.Cmd {
					a.PromptNewNote()
					return nil
				}},
				"d": {Key: "d", Label: "Daily note", Action: func(a *App) tea.Cmd {
					a.CreateDailyNote()
					return nil
				}},
				"i": {Key: "i", Label: "Inbox capture", Action: func(a *App) tea.Cmd {
					a.CreateInboxNote()
					return nil
				}},
				"t": {Key: "t", Label: "New from template", Action: func(a *App) tea.Cmd {
					a.ShowTemplatePicker()
					return nil
				}},
			},
		},
		"v": {
			Key: "v", Label: "+view",
			Children: map[string]*Binding{
				"t": {Key: "t", Label: "Toggle tree", Action: func(a *App) tea.Cmd {
					a.ToggleTree()
					return nil
				}},
				"z": {Key: "z", Label: "Zen mode", Action: func(a *App) tea.Cmd {
					a.ToggleZen()
					return nil
				}},
				"s": {Key: "s", Label: "Toggle status bar", Action: func(a *App) tea.Cmd {
					a.ToggleStatus()
					return nil
				}},
				"c": {Key: "c", Label: "Toggle content visibility", Action: func(a *App) tea.Cmd {
					a.runCommand(visibility.CommandID)
					return nil
				}},
			},
		},
		"o": {
			Key: "o", Label: "Outline pane",
			Action: func(a *App) tea.Cmd {
				a.OpenOutline()
				return nil
			},
		},
		"s": {
			Key: "s", Label: "Split pane",
			Action: func(a *App) tea.Cmd {
				a.SplitPane()
				return nil
			},
		},
		"x": {
			Key: "x", Label: "Close pane",
			Action: func(a *App) tea.Cmd {
				a.ClosePane()
				return nil
			},
		},
		"c": {
			Key: "c", Label: "Copy note path",
			Action: func(a *App) tea.Cmd {
				a.CopyNotePath()
				return nil
			},
		},
		"e": {
			Key: "e", Label: "Edit in $EDITOR",
			Action: func(a *App) tea.Cmd {
				return a.EditInExternal()
			},
		},
		"m": {
			Key: "m", Label: "+markdown",
			Children: map[string]*Binding{
				"f": {Key: "f", Label: "Format note", Action: func(a *App) tea.Cmd {
					a.FormatNote()
					return nil
				}},
			},
		},
		"q": {
			Key: "q", Label: "+quit",
			Children: map[string]*Binding{
				"q": {Key: "q", Label: "Quit", Action: func(a *App) tea.Cmd {
					a.Close()
					return tea.Quit
				}},
			},
		},
	}
}

func (a *App) initLeader() {
	a.bindings = newBindings()
	a.leader = LeaderState{}
}

// handleLeaderKey processes a key during leader mode.
// Returns true if the key was consumed by the leader system.
func (a *App) handleLeaderKey(key string) (consumed bool, cmd tea.Cmd) {
	if !a.leader.active {
		if key != a.cfg.LeaderKey {
			return false, nil
		}
		a.leader.active = true
		a.leader.keys = ""
		a.leader.node = a.bindings
		a.leader.showHelp = false
		// Start timeout for which-key popup
		return true, tea.Tick(time.Duration(a.cfg.LeaderTimeout)*time.Millisecond, func(time.Time) tea.Msg {
			return leaderTimeoutMsg{}
		})
	}

	// We're in leader mode - accumulate the key
	a.leader.keys += key

	if binding, ok := a.leader.node[key]; ok {
		if binding.Children != nil {
			// This is a group - wait for next key
			a.leader.node = binding.Children
			a.leader.showHelp = false
			return true, tea.Tick(time.Duration(a.cfg.LeaderTimeout)*time.Millisecond, func(time.Time) tea.Msg {
				return leaderTimeoutMsg{}
			})
		}
		// Leaf binding - execute
		a.leader.active = false
		a.leader.showHelp = false
		if binding.Action != nil {
			return true, binding.Action(a)
		}
		return true, nil
	}

	// No match - cancel leader mode
	a.leader.active = false
	a.leader.showHelp = false
	return true, nil
}

func (a *App) handleLeaderTimeout() {
	if a.leader.active {
		a.leader.showHelp = true
	}
}

func (a *App) cancelLeader() {
	a.leader.active = false
	a.leader.showHelp = false
}
