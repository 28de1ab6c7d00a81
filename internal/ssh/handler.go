package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/liduchuan/content-visible/internal/app"
	"github.com/liduchuan/content-visible/internal/config"
)

// NewHandler returns a Bubble Tea handler for SSH sessions. Each session gets
// its own app over the shared vault.
func NewHandler(cfg config.Config) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		a := app.New(cfg)

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return a, opts
	}
}
