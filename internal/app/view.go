package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/liduchuan/content-visible/internal/render"
	"github.com/liduchuan/content-visible/internal/workspace"
)

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := a.minWindowSize()
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		// Use the terminal's default background so the placeholder matches
		// whatever theme the user is running.
		box := lipgloss.NewStyle().
			Foreground(a.theme.Text).
			Padding(1, 2).
			Render(msg)

		fillLines := a.height
		if fillLines < 1 {
			fillLines = 1
		}
		base := strings.Repeat("\n", fillLines)
		return overlayCenter(base, box, a.width, a.height)
	}

	showTree := a.panelsVisible()
	layout := ComputeLayout(a.width, a.height, showTree, a.showStatus, a.cfg.TreeWidth)

	var columns []string
	if showTree {
		tw := layout.TreeWidth - 1
		if tw < 0 {
			tw = 0
		}
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(a.theme.Border).
			Width(tw).
			Height(layout.Height)
		columns = append(columns, borderStyle.Render(a.tree.View()))
	}

	panes := a.ws.Panes()
	widths := paneWidths(layout.ContentWidth, len(panes))
	for i, p := range panes {
		w := widths[i]
		style := lipgloss.NewStyle().Height(layout.Height)
		if i > 0 {
			// Panes after the first carry a left border as the separator.
			w--
			style = style.Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(a.theme.Border)
		}
		if w < 1 {
			w = 1
		}
		style = style.Width(w)
		focused := a.focused == focusContent && i == a.ws.ActiveIndex()
		columns = append(columns, style.Render(a.renderPane(p, w, layout.Height, focused)))
	}

	result := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if a.showStatus {
		result += "\n" + a.status.View()
	}

	// Overlay which-key popup
	if a.leader.showHelp {
		if wkView := a.whichKey.View(); wkView != "" {
			result = overlayCenter(result, wkView, a.width, a.height)
		}
	}

	// Overlay finder
	if a.finder.Visible() {
		if finderView := a.finder.View(); finderView != "" {
			result = overlayCenter(result, finderView, a.width, a.height)
		}
	}

	// Overlay command palette
	if a.palette.Visible() {
		if paletteView := a.palette.View(); paletteView != "" {
			result = overlayCenter(result, paletteView, a.width, a.height)
		}
	}

	// Overlay prompt
	if a.prompt.Visible() {
		if promptView := a.prompt.View(); promptView != "" {
			result = overlayCenter(result, promptView, a.width, a.height)
		}
	}

	return result
}

// actionSpan locates one rendered header action, in columns relative to the
// pane's left edge.
type actionSpan struct {
	offset int
	width  int
	act    *workspace.Action
}

// paneHeader renders a pane's title row and reports where each header action
// landed so mouse handling can hit-test clicks against it.
func (a *App) paneHeader(p *workspace.Pane, width int, focused bool) (string, []actionSpan) {
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if focused {
		titleStyle = titleStyle.Foreground(a.theme.Accent).Underline(true)
	} else {
		titleStyle = titleStyle.Foreground(a.theme.Dim)
	}
	title := titleStyle.Render(p.Title)

	line := title
	x := lipgloss.Width(title)
	actStyle := lipgloss.NewStyle().Foreground(a.theme.Subtle).Padding(0, 1)

	var spans []actionSpan
	for _, act := range p.ActionRow().Actions() {
		seg := actStyle.Render("[" + act.Icon + " " + act.Label + "]")
		w := lipgloss.Width(seg)
		spans = append(spans, actionSpan{offset: x, width: w, act: act})
		line += seg
		x += w
	}

	return ansi.Truncate(line, width, ""), spans
}

// renderPane draws one pane column: title row on top, body below.
func (a *App) renderPane(p *workspace.Pane, width, height int, focused bool) string {
	header, _ := a.paneHeader(p, width, focused)

	bodyHeight := height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case p.Kind == workspace.KindWelcome:
		body = a.welcomeBody(width, bodyHeight)
	case p.Kind == workspace.KindDocument && a.ws.HasRootFlag(workspace.FlagContentHidden):
		// The body is veiled; the header row (and its actions) stays visible.
		body = render.Veil(width, bodyHeight, a.theme.Dim)
	default:
		body = a.paneBody(p, bodyHeight)
	}

	return header + "\n" + body
}

// paneBody slices the cached render at the pane's scroll position.
func (a *App) paneBody(p *workspace.Pane, height int) string {
	lines := strings.Split(a.bodies[p.ID], "\n")

	scroll := p.Scroll
	if max := len(lines) - height; scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[scroll:end], "\n")
}

func (a *App) welcomeBody(width, height int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Accent).Render("content-visible")
	hint := lipgloss.NewStyle().Foreground(a.theme.Subtle).
		Render("space space  find note\nspace n n    new note\nspace p      command palette")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, title+"\n\n"+hint)
}

// renderBody produces the full (unscrolled) body text for a pane. Document
// renders are cached by path and mod time inside the renderer, so calling
// this after every vault event stays cheap.
func (a *App) renderBody(p *workspace.Pane, width int) string {
	switch p.Kind {
	case workspace.KindDocument:
		if p.Path == "" {
			return ""
		}
		abs := filepath.Join(a.cfg.VaultPath, p.Path)
		fi, err := os.Stat(abs)
		if err != nil {
			return a.bodyError(err)
		}
		content, err := os.ReadFile(abs)
		if err != nil {
			return a.bodyError(err)
		}
		a.renderer.SetWidth(width)
		out, err := a.renderer.Note(p.Path, fi.ModTime(), content)
		if err != nil {
			return a.bodyError(err)
		}
		return strings.TrimRight(out, "\n")
	case workspace.KindOutline:
		return a.outlineBody(p.Path)
	}
	return ""
}

func (a *App) bodyError(err error) string {
	return lipgloss.NewStyle().Foreground(a.theme.Error).Render(err.Error())
}

// refreshAllPanes re-renders every pane body from disk and the index. Pane
// counts change column widths, so a single pane refresh is never enough.
func (a *App) refreshAllPanes() {
	if a.width == 0 {
		return
	}
	layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
	panes := a.ws.Panes()
	widths := paneWidths(layout.ContentWidth, len(panes))

	fresh := make(map[string]string, len(panes))
	for i, p := range panes {
		w := widths[i]
		if i > 0 {
			w--
		}
		if w < 1 {
			w = 1
		}
		fresh[p.ID] = a.renderBody(p, w)
	}
	a.bodies = fresh
}

func (a *App) bodyHeight() int {
	layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
	h := layout.Height - 1 // title row
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) maxScroll(p *workspace.Pane) int {
	lines := len(strings.Split(a.bodies[p.ID], "\n"))
	max := lines - a.bodyHeight()
	if max < 0 {
		return 0
	}
	return max
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := (height - len(overlayLines)) / 2
	startCol := (width - overlayWidth) / 2
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}

	padToCol := func(s string, col int) string {
		// Pad with spaces based on *visible* width (handles ANSI strings safely).
		for lipgloss.Width(s) < col {
			s += " "
		}
		return s
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		baseLine := padToCol(baseLines[row], startCol)

		// Overlay by columns without breaking ANSI sequences: keep the left
		// part of the base line, replace the middle, keep the right tail.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)

		line := left + overlayLine + right
		baseLines[row] = ansi.Truncate(line, width, "")
	}

	return strings.Join(baseLines, "\n")
}
