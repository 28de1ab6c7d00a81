package workspace

// Action is one clickable button in a pane's header row. Marker tags the
// owner so a feature can find and remove its own buttons without touching
// anyone else's.
type Action struct {
	Marker  string
	Icon    string
	Label   string
	OnClick func()
}

// ActionRow is the ordered set of header actions for a single pane.
type ActionRow struct {
	actions []*Action
}

// Actions returns the row's actions in display order.
func (r *ActionRow) Actions() []*Action {
	if r == nil {
		return nil
	}
	return append([]*Action(nil), r.actions...)
}

// Len reports the number of actions in the row.
func (r *ActionRow) Len() int {
	if r == nil {
		return 0
	}
	return len(r.actions)
}

// InsertFront places a at the head of the row. On an empty row this is the
// same as Append.
func (r *ActionRow) InsertFront(a *Action) {
	if r == nil || a == nil {
		return
	}
	r.actions = append([]*Action{a}, r.actions...)
}

// Append places a at the end of the row.
func (r *ActionRow) Append(a *Action) {
	if r == nil || a == nil {
		return
	}
	r.actions = append(r.actions, a)
}

// Marked returns every action in the row carrying the given marker.
func (r *ActionRow) Marked(marker string) []*Action {
	if r == nil {
		return nil
	}
	var out []*Action
	for _, a := range r.actions {
		if a.Marker == marker {
			out = append(out, a)
		}
	}
	return out
}

// RemoveMarked deletes every action carrying the given marker and reports
// how many were removed. Order of the remaining actions is preserved.
func (r *ActionRow) RemoveMarked(marker string) int {
	if r == nil {
		return 0
	}
	kept := r.actions[:0]
	removed := 0
	for _, a := range r.actions {
		if a.Marker == marker {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(r.actions); i++ {
		r.actions[i] = nil
	}
	r.actions = kept
	return removed
}
