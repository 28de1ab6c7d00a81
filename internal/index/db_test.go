package index

import "testing"

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// Insert a note
	id, err := db.UpsertNote("test.md", "Test", "test", "", "abc123", 1000, 42)
	if err != nil {
		t.Fatal(err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	// Update FTS
	err = db.UpdateFTS(id, "Test", "Hello world content", "tag1 tag2", "Heading 1")
	if err != nil {
		t.Fatal(err)
	}

	// Search
	results, err := db.Search("world", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "test.md" {
		t.Errorf("path: got %q, want %q", results[0].Path, "test.md")
	}
}

func TestUpsertNoteSamePath(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	first, err := db.UpsertNote("note.md", "Old Title", "old-title", "", "h1", 1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	// Same path updates in place and keeps the row ID stable.
	second, err := db.UpsertNote("note.md", "New Title", "new-title", "done", "h2", 2000, 20)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("note id changed across upsert: %d then %d", first, second)
	}

	hash, err := db.GetNoteHash("note.md")
	if err != nil {
		t.Fatal(err)
	}
	if hash != "h2" {
		t.Errorf("hash: got %q, want %q", hash, "h2")
	}
}

func TestSearchFiles(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.UpsertNote("daily/2024-01-01.md", "2024-01-01", "2024-01-01", "", "a", 1000, 10)
	db.UpsertNote("inbox/note.md", "Quick Note", "quick-note", "", "b", 1000, 10)

	results, err := db.SearchFiles("daily", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "daily/2024-01-01.md" {
		t.Errorf("path: got %q, want %q", results[0].Path, "daily/2024-01-01.md")
	}
}

func TestFindNoteByBasename(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.UpsertNote("projects/my-note.md", "My Note", "my-note", "", "a", 1000, 10)
	db.UpsertNote("daily/2024-01-01.md", "2024-01-01", "2024-01-01", "", "b", 1000, 10)
	db.UpsertNote("root-note.md", "Root Note", "root-note", "", "c", 1000, 10)

	tests := []struct {
		basename string
		want     string
	}{
		{"my-note.md", "projects/my-note.md"},
		{"2024-01-01.md", "daily/2024-01-01.md"},
		{"root-note.md", "root-note.md"},
		{"nonexistent.md", ""},
	}

	for _, tt := range tests {
		got, err := db.FindNoteByBasename(tt.basename)
		if err != nil {
			t.Errorf("FindNoteByBasename(%q): %v", tt.basename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FindNoteByBasename(%q) = %q, want %q", tt.basename, got, tt.want)
		}
	}
}

func TestBacklinks(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id1, _ := db.UpsertNote("a.md", "Note A", "a", "", "a", 1000, 10)
	db.UpsertNote("projects/b.md", "Note B", "b", "", "b", 1000, 10)

	// Links store basenames
	db.InsertLink(id1, "b.md", "", "", 5, 10)

	// GetBacklinks extracts basename from the target path
	backlinks, err := db.GetBacklinks("projects/b.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(backlinks) != 1 {
		t.Fatalf("expected 1 backlink, got %d", len(backlinks))
	}
	if backlinks[0].SourcePath != "a.md" {
		t.Errorf("backlink source: got %q, want %q", backlinks[0].SourcePath, "a.md")
	}
}

func TestListHeadings(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, _ := db.UpsertNote("doc.md", "Doc", "doc", "", "a", 1000, 10)
	other, _ := db.UpsertNote("other.md", "Other", "other", "", "b", 1000, 10)

	db.InsertHeading(id, 2, "Details", 12)
	db.InsertHeading(id, 1, "Intro", 3)
	db.InsertHeading(other, 1, "Elsewhere", 1)

	headings, err := db.ListHeadings("doc.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}

	// Document order, not insertion order.
	if headings[0].Text != "Intro" || headings[0].Line != 3 {
		t.Errorf("first heading: got %q line %d, want %q line 3", headings[0].Text, headings[0].Line, "Intro")
	}
	if headings[1].Text != "Details" || headings[1].Level != 2 {
		t.Errorf("second heading: got %q level %d, want %q level 2", headings[1].Text, headings[1].Level, "Details")
	}
}

func TestDeleteNoteCascades(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, _ := db.UpsertNote("gone.md", "Gone", "gone", "", "a", 1000, 10)
	db.InsertHeading(id, 1, "Title", 1)
	db.InsertLink(id, "target.md", "", "", 2, 1)

	if err := db.DeleteNote("gone.md"); err != nil {
		t.Fatal(err)
	}

	headings, err := db.ListHeadings("gone.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 0 {
		t.Errorf("expected no headings after delete, got %d", len(headings))
	}

	var links int
	if err := db.Conn().QueryRow("SELECT COUNT(*) FROM links WHERE source_id = ?", id).Scan(&links); err != nil {
		t.Fatal(err)
	}
	if links != 0 {
		t.Errorf("expected no links after delete, got %d", links)
	}
}
