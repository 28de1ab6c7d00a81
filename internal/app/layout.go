package app

// Layout holds the per-frame panel dimensions.
type Layout struct {
	TreeWidth    int
	ContentWidth int
	Height       int
	StatusHeight int
}

// ComputeLayout splits the window into the tree column, the pane area, and
// the status row.
func ComputeLayout(totalWidth, totalHeight int, showTree, showStatus bool, treeWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into panels.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 {
		totalHeight = 2
	}

	var l Layout
	if showStatus {
		l.StatusHeight = 1
	}
	l.Height = totalHeight - l.StatusHeight

	remaining := totalWidth
	if showTree {
		l.TreeWidth = treeWidth
		if l.TreeWidth > remaining/3 {
			l.TreeWidth = remaining / 3
		}
		remaining -= l.TreeWidth
	}

	l.ContentWidth = remaining
	// During extreme resizes the terminal can get very narrow; never force a
	// minimum width larger than the available space.
	if l.ContentWidth < 1 {
		l.ContentWidth = 1
	}

	return l
}

// paneWidths splits the content area into n columns. Leftmost columns absorb
// the remainder so the row always fills the full width.
func paneWidths(total, n int) []int {
	if n < 1 {
		return nil
	}
	widths := make([]int, n)
	base := total / n
	extra := total % n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
