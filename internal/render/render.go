package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Renderer turns markdown into styled terminal text. Rendered notes are
// cached by path, mod time, and width, so scrolling and pane switches
// never re-render unchanged content.
type Renderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
	cache *lru.Cache[string, string]
}

func New(style string) *Renderer {
	cache, _ := lru.New[string, string](128)
	return &Renderer{
		style: style,
		width: 80,
		cache: cache,
	}
}

// SetWidth sets the wrap width for subsequent renders. Cached entries for
// other widths age out of the LRU on their own.
func (r *Renderer) SetWidth(w int) {
	if w < 1 || w == r.width {
		return
	}
	r.width = w
	r.tr = nil
}

// Note renders a note body. modTime is part of the cache key, so a saved
// file re-renders without any explicit invalidation.
func (r *Renderer) Note(path string, modTime time.Time, content []byte) (string, error) {
	key := fmt.Sprintf("%s|%d|%d|%s", path, modTime.UnixNano(), r.width, r.style)
	if s, ok := r.cache.Get(key); ok {
		return s, nil
	}

	if r.tr == nil {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(r.width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return "", err
		}
		r.tr = tr
	}

	out, err := r.tr.Render(string(content))
	if err != nil {
		return "", err
	}
	out = compressBlankRuns(out)

	r.cache.Add(key, out)
	return out, nil
}

// compressBlankRuns caps runs of blank lines at two. Glamour pads some
// block boundaries generously and the slack adds up on long notes.
func compressBlankRuns(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Veil is the placeholder drawn in place of a note body while content is
// hidden. The pane header stays visible; only the body is covered.
func Veil(width, height int, dim lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	msg := lipgloss.NewStyle().Foreground(dim).Render("🚫 content hidden")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
