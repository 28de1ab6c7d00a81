package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liduchuan/content-visible/internal/workspace"
)

// actionHit is one clickable header region in absolute screen columns,
// half-open on the right.
type actionHit struct {
	x0, x1 int
	act    *workspace.Action
}

// handleMouse routes wheel and click events. Wheel scrolls the pane under
// the cursor regardless of focus; a left press either fires a header action
// or focuses the pane (or the tree) it landed on.
func (a *App) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scrollPaneAt(msg.X, -3)
	case tea.MouseButtonWheelDown:
		a.scrollPaneAt(msg.X, 3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		// A click takes over from any pending leader sequence.
		a.cancelLeader()
		a.updateWhichKey()
		if msg.Y == 0 {
			for _, hit := range a.headerHits() {
				if msg.X >= hit.x0 && msg.X < hit.x1 {
					if hit.act.OnClick != nil {
						hit.act.OnClick()
					}
					return
				}
			}
		}
		if i := a.paneIndexAt(msg.X); i >= 0 {
			a.ws.SetActive(i)
			a.setFocus(focusContent)
		} else if a.panelsVisible() {
			a.setFocus(focusTree)
		}
	}
}

// headerHits recomputes the clickable header regions from the current layout
// and pane set. Derived on demand, so it can never go stale between renders.
func (a *App) headerHits() []actionHit {
	layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
	panes := a.ws.Panes()
	widths := paneWidths(layout.ContentWidth, len(panes))

	var hits []actionHit
	x := layout.TreeWidth
	for i, p := range panes {
		inner := widths[i]
		innerStart := x
		if i > 0 {
			// Separator border column.
			inner--
			innerStart++
		}
		if inner < 1 {
			inner = 1
		}

		focused := a.focused == focusContent && i == a.ws.ActiveIndex()
		_, spans := a.paneHeader(p, inner, focused)
		for _, s := range spans {
			hits = append(hits, actionHit{
				x0:  innerStart + s.offset,
				x1:  innerStart + s.offset + s.width,
				act: s.act,
			})
		}
		x += widths[i]
	}
	return hits
}

// paneIndexAt maps a screen column to a pane index, or -1 for the tree area.
func (a *App) paneIndexAt(x int) int {
	layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
	if x < layout.TreeWidth {
		return -1
	}

	panes := a.ws.Panes()
	widths := paneWidths(layout.ContentWidth, len(panes))
	start := layout.TreeWidth
	for i, w := range widths {
		if x < start+w {
			return i
		}
		start += w
	}
	return len(panes) - 1
}

func (a *App) scrollPaneAt(x, delta int) {
	i := a.paneIndexAt(x)
	if i < 0 {
		return
	}
	a.scrollBy(a.ws.Panes()[i], delta)
}
