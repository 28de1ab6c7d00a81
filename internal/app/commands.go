package app

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liduchuan/content-visible/internal/extension"
	"github.com/liduchuan/content-visible/internal/markdown"
	"github.com/liduchuan/content-visible/internal/panel"
	"github.com/liduchuan/content-visible/internal/workspace"
)

// initIndex runs the initial full index pass off the update loop.
func (a *App) initIndex() tea.Cmd {
	return func() tea.Msg {
		if a.indexer == nil {
			return indexInitDoneMsg{}
		}
		return indexInitDoneMsg{err: a.indexer.IndexAll()}
	}
}

// registerBuiltins fills the command table with app-level commands, so the
// palette lists them next to extension-registered ones.
func (a *App) registerBuiltins() {
	builtins := []extension.Command{
		{ID: "new-note", Name: "New note", Run: func() { a.PromptNewNote() }},
		{ID: "open-daily-note", Name: "Open daily note", Run: func() { a.CreateDailyNote() }},
		{ID: "new-inbox-note", Name: "New inbox note", Run: func() { a.CreateInboxNote() }},
		{ID: "new-note-from-template", Name: "New note from template", Run: func() { a.ShowTemplatePicker() }},
		{ID: "toggle-file-tree", Name: "Toggle file tree", Run: func() { a.ToggleTree() }},
		{ID: "toggle-zen-mode", Name: "Toggle zen mode", Run: func() { a.ToggleZen() }},
		{ID: "toggle-status-bar", Name: "Toggle status bar", Run: func() { a.ToggleStatus() }},
		{ID: "split-pane", Name: "Split pane", Run: func() { a.SplitPane() }},
		{ID: "close-pane", Name: "Close pane", Run: func() { a.ClosePane() }},
		{ID: "open-outline", Name: "Open outline", Run: func() { a.OpenOutline() }},
		{ID: "format-note", Name: "Format note", Run: func() { a.FormatNote() }},
		{ID: "copy-note-path", Name: "Copy note path", Run: func() { a.CopyNotePath() }},
	}
	for _, c := range builtins {
		if err := a.registry.AddCommand(c); err != nil {
			a.logger.Error("register builtin", "id", c.ID, "err", err)
		}
	}
}

// runCommand executes a command from the shared table by ID.
func (a *App) runCommand(id string) {
	cmd, ok := a.registry.Command(id)
	if !ok {
		a.reportError(fmt.Errorf("unknown command %q", id))
		return
	}
	cmd.Run()
}

// ShowPalette opens the command palette over the current view.
func (a *App) ShowPalette() {
	cmds := a.registry.Commands()
	items := make([]panel.PaletteItem, len(cmds))
	for i, c := range cmds {
		items[i] = panel.PaletteItem{ID: c.ID, Name: c.Name}
	}
	a.palette.Show(items)
}

func (a *App) ToggleFinder() {
	if a.finder.Visible() {
		a.finder.Hide()
		a.finderMode = finderNotes
		return
	}
	a.finderMode = finderNotes
	a.finder.Show()
}

// ShowTemplatePicker reuses the finder overlay to pick a template.
func (a *App) ShowTemplatePicker() {
	templates, err := a.vault.LoadTemplates()
	if err != nil {
		a.reportError(fmt.Errorf("load templates: %w", err))
		return
	}
	if len(templates) == 0 {
		a.status.SetError("no templates under templates/")
		return
	}
	a.templates = templates
	a.finderMode = finderTemplates
	a.finder.Show()
}

func (a *App) PromptNewNote() {
	a.pendingPrompt = promptAction{kind: "create-note"}
	a.prompt.Show("New note", "my-note.md")
}

func (a *App) CreateDailyNote() {
	path, err := a.vault.CreateDailyNote()
	if err != nil {
		a.reportError(fmt.Errorf("daily note: %w", err))
		return
	}
	rel, _ := filepath.Rel(a.cfg.VaultPath, path)
	a.navigateTo(rel)
	a.tree.Refresh()
	a.setFocus(focusContent)
}

func (a *App) CreateInboxNote() {
	path, err := a.vault.CreateInboxNote()
	if err != nil {
		a.reportError(fmt.Errorf("inbox note: %w", err))
		return
	}
	rel, _ := filepath.Rel(a.cfg.VaultPath, path)
	a.navigateTo(rel)
	a.tree.Refresh()
	a.setFocus(focusContent)
}

// OpenOutline opens an outline pane for the active note.
func (a *App) OpenOutline() {
	active := a.ws.Active()
	if active.Kind != workspace.KindDocument || active.Path == "" {
		return
	}
	a.ws.OpenOutline(active.Path, "outline: "+markdown.NoteNameFromPath(active.Path))
	a.refreshAllPanes()
}

// SplitPane opens the active note again in a pane of its own.
func (a *App) SplitPane() {
	active := a.ws.Active()
	if active.Kind != workspace.KindDocument || active.Path == "" {
		return
	}
	a.ws.OpenSplit(active.Path, active.Title)
	a.refreshAllPanes()
}

func (a *App) ClosePane() {
	a.ws.CloseActive()
	a.refreshAllPanes()
}

// CopyNotePath puts the active note's absolute path on the system clipboard.
func (a *App) CopyNotePath() {
	p := a.ws.Active()
	if p.Path == "" {
		return
	}
	if err := clipboard.WriteAll(filepath.Join(a.cfg.VaultPath, p.Path)); err != nil {
		a.reportError(fmt.Errorf("copy path: %w", err))
	}
}

// EditInExternal suspends the TUI and opens the active note in $EDITOR. The
// watcher reindexes whatever the editor wrote once we resume.
func (a *App) EditInExternal() tea.Cmd {
	p := a.ws.Active()
	if p.Kind != workspace.KindDocument || p.Path == "" {
		return nil
	}

	editorCmd := a.cfg.Editor
	if editorCmd == "" {
		editorCmd = os.Getenv("EDITOR")
	}
	if editorCmd == "" {
		a.status.SetError("no editor configured; set editor in config or $EDITOR")
		return nil
	}

	rel := p.Path
	c := exec.Command(editorCmd, filepath.Join(a.cfg.VaultPath, rel))
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: rel, err: err}
	})
}

// FormatNote rewrites the active note through the markdown formatter. A
// no-op when the file is already normalized.
func (a *App) FormatNote() {
	p := a.ws.Active()
	if p.Kind != workspace.KindDocument || p.Path == "" {
		return
	}

	abs := filepath.Join(a.cfg.VaultPath, p.Path)
	content, err := os.ReadFile(abs)
	if err != nil {
		a.reportError(fmt.Errorf("format note: %w", err))
		return
	}
	formatted := markdown.Format(content)
	if bytes.Equal(formatted, content) {
		return
	}
	if err := os.WriteFile(abs, formatted, 0644); err != nil {
		a.reportError(fmt.Errorf("format note: %w", err))
		return
	}
	a.refreshAllPanes()
}

// findItems feeds the finder overlay. Template picking reuses the same
// overlay with a different item source.
func (a *App) findItems(query string) []panel.FinderItem {
	if a.finderMode == finderTemplates {
		return a.templateItems(query)
	}
	return a.searchNotes(query)
}

// searchNotes returns finder items for a query.
func (a *App) searchNotes(query string) []panel.FinderItem {
	if a.db == nil {
		return nil
	}

	if query == "" {
		results, err := a.db.ListAllNotes(50)
		if err != nil {
			return nil
		}
		items := make([]panel.FinderItem, len(results))
		for i, r := range results {
			items[i] = panel.FinderItem{
				Title: r.Title,
				Path:  r.Path,
			}
		}
		return items
	}

	// Try full-text search first
	results, err := a.db.Search(query, 50)
	if err != nil || len(results) == 0 {
		// Fallback to file search
		results, err = a.db.SearchFiles(query, 50)
		if err != nil {
			return nil
		}
	}

	items := make([]panel.FinderItem, len(results))
	for i, r := range results {
		items[i] = panel.FinderItem{
			Title: r.Title,
			Path:  r.Path,
		}
	}
	return items
}

func (a *App) templateItems(query string) []panel.FinderItem {
	q := strings.ToLower(query)
	var items []panel.FinderItem
	for _, t := range a.templates {
		if q != "" && !strings.Contains(strings.ToLower(t.Name), q) {
			continue
		}
		items = append(items, panel.FinderItem{Title: t.Name, Path: t.Path})
	}
	return items
}

// handleFinderResult handles a selection from the finder.
func (a *App) handleFinderResult(path string) {
	if a.finderMode == finderTemplates {
		a.finderMode = finderNotes
		for _, t := range a.templates {
			if t.Path == path {
				a.pendingPrompt = promptAction{kind: "template-note", path: t.Path}
				a.prompt.Show("Note title", "My new note")
				return
			}
		}
		return
	}
	a.navigateTo(path)
	a.setFocus(focusContent)
}

// createNoteFromFinder creates a new note from a finder query string.
func (a *App) createNoteFromFinder(name string) {
	relPath := ensureMarkdownExt(name)

	if msg := a.checkUniqueBasename(relPath); msg != "" {
		a.status.SetError(msg)
		return
	}

	content := fmt.Sprintf("---\ntitle: %s\n---\n\n", strings.TrimSuffix(name, ".md"))
	if _, err := a.vault.CreateNote(relPath, content); err != nil {
		a.reportError(fmt.Errorf("create note: %w", err))
		return
	}

	a.navigateTo(relPath)
	a.tree.Refresh()
}

// outlineBody builds the text shown in an outline pane: the heading tree of
// the note, then every note that links to it.
func (a *App) outlineBody(relPath string) string {
	if a.db == nil {
		return ""
	}

	headStyle := lipgloss.NewStyle().Foreground(a.theme.Text)
	dim := lipgloss.NewStyle().Foreground(a.theme.Subtle)

	var b strings.Builder
	headings, err := a.db.ListHeadings(relPath)
	if err != nil {
		return a.bodyError(err)
	}
	if len(headings) == 0 {
		b.WriteString(dim.Render("no headings") + "\n")
	}
	for _, h := range headings {
		level := h.Level
		if level < 1 {
			level = 1
		}
		indent := strings.Repeat("  ", level-1)
		b.WriteString(indent + headStyle.Render(h.Text) + "\n")
	}

	b.WriteString("\n" + dim.Render("Linked mentions") + "\n")
	backlinks, err := a.db.GetBacklinks(relPath)
	if err != nil || len(backlinks) == 0 {
		b.WriteString(dim.Render("  none") + "\n")
		return b.String()
	}
	for _, bl := range backlinks {
		title := bl.SourceTitle
		if title == "" {
			title = bl.SourcePath
		}
		b.WriteString("  " + title + dim.Render(fmt.Sprintf("  %s:%d", bl.SourcePath, bl.Line)) + "\n")
	}
	return b.String()
}
