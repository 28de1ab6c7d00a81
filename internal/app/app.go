package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/liduchuan/content-visible/internal/config"
	"github.com/liduchuan/content-visible/internal/extension"
	"github.com/liduchuan/content-visible/internal/extensions/visibility"
	"github.com/liduchuan/content-visible/internal/index"
	"github.com/liduchuan/content-visible/internal/logging"
	"github.com/liduchuan/content-visible/internal/markdown"
	"github.com/liduchuan/content-visible/internal/panel"
	"github.com/liduchuan/content-visible/internal/render"
	"github.com/liduchuan/content-visible/internal/session"
	"github.com/liduchuan/content-visible/internal/storage"
	"github.com/liduchuan/content-visible/internal/theme"
	"github.com/liduchuan/content-visible/internal/vault"
	"github.com/liduchuan/content-visible/internal/workspace"
)

type focusedPanel int

const (
	focusContent focusedPanel = iota
	focusTree
)

// finderPurpose selects what the finder overlay is picking.
type finderPurpose int

const (
	finderNotes finderPurpose = iota
	finderTemplates
)

type promptAction struct {
	kind string // "create-note", "rename-note", "delete-note", "move-note", "finder-create", "template-note"
	path string // target note for rename/delete/move; template path for template-note
}

type App struct {
	cfg     config.Config
	logger  *log.Logger
	program *tea.Program

	theme    theme.Theme
	vault    *vault.Vault
	store    *storage.Store
	registry *extension.Registry
	ws       *workspace.Workspace
	renderer *render.Renderer

	db      *index.DB
	indexer *index.Indexer
	watcher *index.Watcher

	tree     panel.Tree
	status   panel.Status
	finder   panel.Finder
	palette  panel.Palette
	prompt   panel.Prompt
	whichKey panel.WhichKey

	// Leader key system
	bindings map[string]*Binding
	leader   LeaderState

	width      int
	height     int
	focused    focusedPanel
	showTree   bool
	showStatus bool
	zenMode    bool

	// statusItems holds the extension-owned status bar slots, in creation order.
	statusItems []*statusItem

	// pendingPrompt tracks which action the overlay prompt is serving.
	pendingPrompt promptAction

	finderMode finderPurpose
	templates  []vault.Template

	// bodies caches each pane's fully rendered body, keyed by pane ID.
	// View only slices these; it never touches the disk or the database.
	bodies map[string]string
}

func New(cfg config.Config) *App {
	v := vault.New(cfg.VaultPath)

	a := &App{
		cfg:        cfg,
		logger:     logging.New(cfg.VaultPath, cfg.Debug),
		theme:      theme.Get(cfg.Theme),
		vault:      v,
		store:      storage.NewStore(cfg.VaultPath),
		registry:   extension.NewRegistry(),
		ws:         workspace.New(),
		renderer:   render.New("dark"),
		focused:    focusContent,
		showTree:   cfg.ShowTree,
		showStatus: cfg.ShowStatus,
		bodies:     make(map[string]string),
	}

	a.tree = panel.NewTree(v, &a.theme)
	a.tree.Refresh()
	a.status = panel.NewStatus(cfg.VaultPath, &a.theme)
	a.finder = panel.NewFinder(&a.theme)
	a.palette = panel.NewPalette(&a.theme)
	a.prompt = panel.NewPrompt(&a.theme)
	a.whichKey = panel.NewWhichKey(&a.theme)
	a.initLeader()

	// The app consumes its own workspace events the same way extensions do.
	a.ws.OnActiveChange(func() {
		a.status.SetFile(a.ws.Active().Path)
	})

	// Restore the session before extensions load so their initial scan sees
	// the restored panes.
	state, err := session.Load(a.store)
	if err != nil {
		a.logger.Error("restore session", "err", err)
	}
	a.showTree = state.ShowTree
	if state.TreeWidth > 0 {
		a.cfg.TreeWidth = state.TreeWidth
	}
	for _, rel := range state.OpenNotes {
		if _, err := os.Stat(filepath.Join(cfg.VaultPath, rel)); err != nil {
			continue // note is gone; drop it from the session
		}
		a.ws.OpenSplit(rel, markdown.NoteNameFromPath(rel))
	}
	if state.ActivePane >= 0 && state.ActivePane < len(a.ws.Panes()) {
		a.ws.SetActive(state.ActivePane)
	}
	a.status.SetFile(a.ws.Active().Path)

	dbPath := filepath.Join(a.store.Dir(), "index.db")
	ensureDir(filepath.Dir(dbPath))
	db, err := index.Open(dbPath)
	if err != nil {
		// The app stays usable without an index; finder and search come up empty.
		a.status.SetError(fmt.Sprintf("index open failed: %v", err))
	} else {
		a.db = db
		a.indexer = index.NewIndexer(db, cfg.VaultPath)
	}
	a.finder.SetSearchFunc(a.findItems)

	a.registerBuiltins()
	a.registry.Register(visibility.New())
	a.registry.LoadAll(a.newHost)

	return a
}

func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	if a.indexer == nil {
		return nil
	}
	return a.initIndex()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}

		// Overlays swallow keys while visible. The prompt comes first since
		// it can stack on top of the finder.
		if a.prompt.Visible() {
			var cmd tea.Cmd
			a.prompt, cmd = a.prompt.Update(msg)
			return a, cmd
		}
		if a.finder.Visible() {
			var cmd tea.Cmd
			a.finder, cmd = a.finder.Update(msg)
			return a, cmd
		}
		if a.palette.Visible() {
			var cmd tea.Cmd
			a.palette, cmd = a.palette.Update(msg)
			return a, cmd
		}

		// Ctrl+h/l to move focus leftward/rightward
		switch msg.String() {
		case "ctrl+h":
			a.focusLeft()
			return a, nil
		case "ctrl+l":
			a.focusRight()
			return a, nil
		}

		// Escape returns from the tree to the panes (unless tree help is showing)
		if msg.String() == "esc" && a.focused == focusTree && !a.tree.ShowingHelp() {
			a.setFocus(focusContent)
			return a, nil
		}

		// Try the leader key system (works from tree and panes).
		// Skip when tree help is showing so any key dismisses help first.
		if a.focused != focusTree || !a.tree.ShowingHelp() {
			if consumed, cmd := a.handleLeaderKey(msg.String()); consumed {
				a.updateWhichKey()
				return a, cmd
			}
		}

		if a.focused == focusTree {
			var cmd tea.Cmd
			a.tree, cmd = a.tree.Update(msg)
			return a, cmd
		}

		a.handleContentKey(msg)
		return a, nil

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil

	case leaderTimeoutMsg:
		a.handleLeaderTimeout()
		a.updateWhichKey()
		return a, nil

	case fatalErrorMsg:
		return a, fatalCmd(msg.err)

	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes; ignore them.
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		a.finder.SetSize(msg.Width, msg.Height)
		a.palette.SetSize(msg.Width, msg.Height)

		minW, minH := a.minWindowSize()
		if a.width < minW || a.height < minH {
			return a, tea.ClearScreen
		}

		// Size the prompt relative to the pane area, not the full screen.
		layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
		promptW := int(float64(layout.ContentWidth) * 0.80)
		// Clamp to a sane modal width; 80% of a wide terminal is still too wide.
		if promptW > 100 {
			promptW = 100
		}
		if promptW < 40 {
			promptW = 40
		}
		if promptW > layout.ContentWidth-2 {
			promptW = layout.ContentWidth - 2
		}
		a.prompt.SetSize(promptW, layout.Height)

		a.updateLayout()
		// Force a full terminal repaint on resize; some terminals/bubbletea
		// render paths can end up visually blank without an explicit clear.
		return a, tea.ClearScreen

	case panel.FileSelectedMsg:
		a.navigateTo(msg.Path)
		a.setFocus(focusContent)
		return a, nil

	case panel.FinderResultMsg:
		a.handleFinderResult(msg.Path)
		return a, nil

	case panel.FinderCreateRequestMsg:
		// Keep finder visible so cancel returns the user to the same query.
		a.pendingPrompt = promptAction{kind: "finder-create", path: msg.Name}
		a.prompt.ShowConfirm(fmt.Sprintf("Create note %q?", msg.Name))
		return a, nil

	case panel.FinderClosedMsg:
		a.finderMode = finderNotes
		a.setFocus(focusContent)
		return a, nil

	case panel.PaletteResultMsg:
		a.runCommand(msg.ID)
		return a, nil

	case panel.PaletteClosedMsg:
		a.setFocus(focusContent)
		return a, nil

	case panel.TreeNewNoteMsg:
		a.PromptNewNote()
		return a, nil

	case panel.TreeDeleteNoteMsg:
		a.pendingPrompt = promptAction{kind: "delete-note", path: msg.Path}
		a.prompt.ShowConfirm("Delete " + msg.Name + "?")
		return a, nil

	case panel.TreeRenameNoteMsg:
		a.pendingPrompt = promptAction{kind: "rename-note", path: msg.Path}
		a.prompt.Show("Rename", msg.Name)
		return a, nil

	case panel.TreeMoveNoteMsg:
		a.pendingPrompt = promptAction{kind: "move-note", path: msg.Path}
		a.prompt.Show("Move "+msg.Name+" to folder", "projects/")
		return a, nil

	case panel.PromptResultMsg:
		a.handlePromptResult(msg.Value)
		return a, nil

	case panel.PromptCancelledMsg:
		a.handlePromptCancelled()
		return a, nil

	case noteIndexedMsg:
		// The vault changed on disk; re-read everything derived from it.
		a.tree.Refresh()
		a.refreshAllPanes()
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.reportError(fmt.Errorf("edit %s: %w", msg.path, msg.err))
		}
		a.refreshAllPanes()
		return a, nil

	case indexInitDoneMsg:
		if msg.err != nil {
			// Fail fast and loud: indexing is a core feature.
			return a, tea.Batch(tea.Printf("fatal: indexing failed: %v\n", msg.err), tea.Quit)
		}
		// Index is ready - start the file watcher
		if a.indexer != nil {
			w, err := index.NewWatcher(a.indexer, a.cfg.VaultPath, func() {
				if a.program != nil {
					a.program.Send(noteIndexedMsg{})
				}
			}, func(err error) {
				if a.program != nil {
					a.program.Send(fatalErrorMsg{err: err})
				}
			})
			if err != nil {
				return a, tea.Batch(tea.Printf("fatal: watcher init failed: %v\n", err), tea.Quit)
			}
			a.watcher = w
			go w.Start()
		}
		// Outline panes and search had nothing to read before the first pass.
		a.refreshAllPanes()
		return a, nil
	}

	return a, nil
}

func (a *App) Close() {
	st := session.State{
		ShowTree:  a.showTree,
		TreeWidth: a.cfg.TreeWidth,
	}
	for i, p := range a.ws.Panes() {
		if p.Kind != workspace.KindDocument || p.Path == "" {
			continue
		}
		if i == a.ws.ActiveIndex() {
			st.ActivePane = len(st.OpenNotes)
		}
		st.OpenNotes = append(st.OpenNotes, p.Path)
	}
	if err := session.Save(a.store, st); err != nil {
		fmt.Fprintln(os.Stderr, "fatal: save session state:", err)
	}

	a.registry.UnloadAll()

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, "fatal: stop watcher:", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "fatal: close db:", err)
		}
	}
}

// navigateTo shows a note in the active pane (or a fresh one). The workspace
// notifies subscribers, so extension affordances rebuild within the same turn.
func (a *App) navigateTo(relPath string) {
	a.ws.OpenNote(relPath, markdown.NoteNameFromPath(relPath))
	a.status.ClearError()
	a.refreshAllPanes()
}

// handleContentKey drives the focused pane: scrolling and pane cycling.
func (a *App) handleContentKey(msg tea.KeyMsg) {
	p := a.ws.Active()
	switch msg.String() {
	case "j", "down":
		a.scrollBy(p, 1)
	case "k", "up":
		a.scrollBy(p, -1)
	case "ctrl+d", "pgdown":
		a.scrollBy(p, a.bodyHeight()/2)
	case "ctrl+u", "pgup":
		a.scrollBy(p, -a.bodyHeight()/2)
	case "g", "home":
		p.Scroll = 0
	case "G", "end":
		p.Scroll = a.maxScroll(p)
	case "tab":
		a.ws.FocusNext()
	case "shift+tab":
		a.ws.FocusPrev()
	case "enter":
		if p.Kind == workspace.KindWelcome {
			a.ToggleFinder()
		}
	}
}

func (a *App) scrollBy(p *workspace.Pane, delta int) {
	if p.Kind == workspace.KindWelcome {
		return
	}
	p.Scroll += delta
	if max := a.maxScroll(p); p.Scroll > max {
		p.Scroll = max
	}
	if p.Scroll < 0 {
		p.Scroll = 0
	}
}

// handlePromptResult handles a confirmed value from the overlay prompt. The
// prompt stays open after enter; it is hidden only once the value passes
// validation, so a rejected value keeps the prompt up with an error line.
func (a *App) handlePromptResult(value string) {
	action := a.pendingPrompt
	if action.kind == "" {
		return
	}

	switch action.kind {
	case "create-note":
		if a.handleCreateNotePrompt(value) {
			a.clearPrompt()
		}
	case "rename-note":
		if a.handleRenameNotePrompt(value, action.path) {
			a.clearPrompt()
		}
	case "move-note":
		if a.handleMoveNotePrompt(value, action.path) {
			a.clearPrompt()
		}
	case "template-note":
		if a.handleTemplateNotePrompt(value, action.path) {
			a.clearPrompt()
		}
	case "delete-note":
		// Confirm prompts don't need validation; close immediately.
		a.clearPrompt()
		a.handleDeleteNote(value, action.path)
	case "finder-create":
		a.clearPrompt()
		if strings.ToLower(strings.TrimSpace(value)) != "yes" {
			return
		}
		a.createNoteFromFinder(action.path)
		a.finder.Hide()
		a.setFocus(focusContent)
	}
}

func (a *App) clearPrompt() {
	a.prompt.Hide()
	a.pendingPrompt = promptAction{}
}

// handlePromptCancelled handles Esc/empty input on the overlay prompt.
func (a *App) handlePromptCancelled() {
	a.pendingPrompt = promptAction{}
}

// handleCreateNotePrompt validates and creates a new note from the overlay
// prompt. Returns false when the value is rejected and the prompt stays open.
func (a *App) handleCreateNotePrompt(name string) bool {
	if strings.HasSuffix(name, "/") {
		a.prompt.SetError("note name cannot end with /")
		return false
	}

	relPath := ensureMarkdownExt(name)
	if msg := a.checkUniqueBasename(relPath); msg != "" {
		a.prompt.SetError(msg)
		return false
	}

	title := strings.TrimSuffix(filepath.Base(relPath), ".md")
	content := fmt.Sprintf("---\ntitle: %s\n---\n\n", title)
	if _, err := a.vault.CreateNote(relPath, content); err != nil {
		a.prompt.SetError(err.Error())
		return false
	}

	a.navigateTo(relPath)
	a.tree.Refresh()
	a.setFocus(focusContent)
	return true
}

// handleRenameNotePrompt validates and renames from the overlay prompt.
// Returns false when the value is rejected and the prompt stays open.
func (a *App) handleRenameNotePrompt(newName, oldPath string) bool {
	newRel := ensureMarkdownExt(newName)
	// Keep the same directory
	if dir := filepath.Dir(oldPath); dir != "." {
		newRel = filepath.Join(dir, newRel)
	}

	if msg := a.checkUniqueBasenameExcept(newRel, oldPath); msg != "" {
		a.prompt.SetError(msg)
		return false
	}

	oldBase := strings.TrimSuffix(filepath.Base(oldPath), ".md")
	newBase := strings.TrimSuffix(filepath.Base(newRel), ".md")

	// Collect backlink sources before the rename, while the index still
	// knows the old name.
	var sources []string
	if oldBase != newBase && a.db != nil {
		if backlinks, err := a.db.GetBacklinks(oldPath); err == nil {
			for _, bl := range backlinks {
				sources = append(sources, bl.SourcePath)
			}
		}
	}

	if err := a.vault.RenameNote(oldPath, newRel); err != nil {
		a.prompt.SetError(err.Error())
		return false
	}

	// Rewrite wiki links in every note that pointed at the old name.
	if oldBase != newBase {
		for _, src := range sources {
			abs := filepath.Join(a.cfg.VaultPath, src)
			if _, err := vault.RewriteLinksInNote(abs, oldBase, newBase); err != nil {
				a.reportError(fmt.Errorf("rewrite links in %s: %w", src, err))
			}
		}
	}

	a.retargetPanes(oldPath, newRel)
	a.tree.Refresh()
	return true
}

// handleMoveNotePrompt moves a note into another folder, keeping its name.
// Returns false when the move is rejected and the prompt stays open.
func (a *App) handleMoveNotePrompt(destDir, oldPath string) bool {
	destDir = strings.Trim(strings.TrimSpace(destDir), "/")
	newRel := filepath.Join(destDir, filepath.Base(oldPath))
	if newRel == oldPath {
		return true
	}

	// The basename is unchanged, so wiki links keep resolving; only the
	// filesystem location moves.
	if err := a.vault.MoveNote(oldPath, destDir); err != nil {
		a.prompt.SetError(err.Error())
		return false
	}

	a.retargetPanes(oldPath, newRel)
	a.tree.Refresh()
	return true
}

// handleTemplateNotePrompt creates a note from the picked template with the
// given title. Returns false when the value is rejected.
func (a *App) handleTemplateNotePrompt(title, templatePath string) bool {
	var tmpl *vault.Template
	for i := range a.templates {
		if a.templates[i].Path == templatePath {
			tmpl = &a.templates[i]
			break
		}
	}
	if tmpl == nil {
		a.prompt.SetError("template no longer available")
		return false
	}

	relPath := vault.Slugify(title) + ".md"
	if relPath == ".md" {
		a.prompt.SetError("title produces an empty file name")
		return false
	}
	if msg := a.checkUniqueBasename(relPath); msg != "" {
		a.prompt.SetError(msg)
		return false
	}

	if _, err := a.vault.CreateFromTemplate(*tmpl, title); err != nil {
		a.prompt.SetError(err.Error())
		return false
	}

	a.navigateTo(relPath)
	a.tree.Refresh()
	a.setFocus(focusContent)
	return true
}

// handleDeleteNote deletes a note after confirmation and closes any pane
// still showing it.
func (a *App) handleDeleteNote(confirmation, relPath string) {
	if strings.ToLower(strings.TrimSpace(confirmation)) != "yes" {
		return
	}

	for _, p := range a.ws.Panes() {
		if p.Path == relPath {
			a.ws.ClosePane(p.ID)
		}
	}

	if err := a.vault.DeleteNote(relPath); err != nil {
		a.reportError(fmt.Errorf("delete note: %w", err))
		return
	}
	a.tree.Refresh()
	a.refreshAllPanes()
}

// retargetPanes points every pane showing oldPath at newPath. Pane IDs are
// stable across retargeting, so extension affordances survive untouched.
func (a *App) retargetPanes(oldPath, newPath string) {
	for _, p := range a.ws.Panes() {
		if p.Path != oldPath {
			continue
		}
		p.Path = newPath
		switch p.Kind {
		case workspace.KindOutline:
			p.Title = "outline: " + markdown.NoteNameFromPath(newPath)
		default:
			p.Title = markdown.NoteNameFromPath(newPath)
		}
	}
	a.status.SetFile(a.ws.Active().Path)
	a.refreshAllPanes()
}

func (a *App) panelsVisible() bool {
	return a.showTree && !a.zenMode
}

func (a *App) minWindowSize() (minW, minH int) {
	// UX-driven minimum supported terminal size. Below this we stop rendering
	// the full UI and show a placeholder message.
	return 60, 24
}

func (a *App) updateLayout() {
	layout := ComputeLayout(a.width, a.height, a.panelsVisible(), a.showStatus, a.cfg.TreeWidth)
	a.tree.SetSize(layout.TreeWidth, layout.Height)
	a.status.SetWidth(a.width)
	a.whichKey.SetWidth(a.width / 2)
	a.refreshAllPanes()
}

func (a *App) updateWhichKey() {
	if !a.leader.showHelp || a.leader.node == nil {
		a.whichKey.Clear()
		return
	}

	var entries []panel.WhichKeyEntry
	for _, b := range a.leader.node {
		entries = append(entries, panel.WhichKeyEntry{
			Key:   b.Key,
			Label: b.Label,
		})
	}
	a.whichKey.SetEntries(a.leader.keys, entries)
}

func (a *App) setFocus(target focusedPanel) {
	a.tree.SetFocused(target == focusTree)
	a.focused = target
}

func (a *App) focusLeft() {
	if a.focused != focusContent {
		return
	}
	if i := a.ws.ActiveIndex(); i > 0 {
		a.ws.SetActive(i - 1)
		return
	}
	if a.panelsVisible() {
		a.setFocus(focusTree)
	}
}

func (a *App) focusRight() {
	if a.focused == focusTree {
		a.setFocus(focusContent)
		return
	}
	if i := a.ws.ActiveIndex(); i < len(a.ws.Panes())-1 {
		a.ws.SetActive(i + 1)
	}
}

func (a *App) ToggleTree() {
	a.showTree = !a.showTree
	if !a.showTree && a.focused == focusTree {
		a.setFocus(focusContent)
	}
	a.updateLayout()
}

func (a *App) ToggleZen() {
	a.zenMode = !a.zenMode
	if a.zenMode && a.focused == focusTree {
		a.setFocus(focusContent)
	}
	a.updateLayout()
}

func (a *App) ToggleStatus() {
	a.showStatus = !a.showStatus
	a.updateLayout()
}

// reportError surfaces a non-fatal error on the status bar and in the log.
func (a *App) reportError(err error) {
	a.logger.Error(err.Error())
	a.status.SetError(err.Error())
}

// syncStatusItems pushes the live extension status texts to the status bar
// and drops removed items for good.
func (a *App) syncStatusItems() {
	var texts []string
	live := a.statusItems[:0]
	for _, si := range a.statusItems {
		if si.removed {
			continue
		}
		live = append(live, si)
		if si.text != "" {
			texts = append(texts, si.text)
		}
	}
	a.statusItems = live
	a.status.SetItems(texts)
}

// checkUniqueBasename returns an error message if a different note with the
// same basename already exists in the vault. Returns "" if the name is free.
func (a *App) checkUniqueBasename(relPath string) string {
	return a.checkUniqueBasenameExcept(relPath, "")
}

// checkUniqueBasenameExcept is like checkUniqueBasename, but allows an
// existing note at exceptPath to keep the same basename (used for renames).
func (a *App) checkUniqueBasenameExcept(relPath, exceptPath string) string {
	if a.db == nil {
		return ""
	}
	basename := filepath.Base(relPath)
	existing, err := a.db.FindNoteByBasename(basename)
	if err != nil || existing == "" || existing == relPath || (exceptPath != "" && existing == exceptPath) {
		return ""
	}
	return fmt.Sprintf("%q already exists at %s", basename, existing)
}

func ensureMarkdownExt(name string) string {
	if strings.HasSuffix(name, ".md") {
		return name
	}
	return name + ".md"
}

func ensureDir(path string) {
	if err := os.MkdirAll(path, 0755); err != nil {
		// Called during startup; there is no Bubble Tea program to report to
		// yet. Crash loudly rather than continuing in a corrupted state.
		panic(err)
	}
}
