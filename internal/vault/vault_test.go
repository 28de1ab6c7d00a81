package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateNote_WritesAndRefusesOverwrite(t *testing.T) {
	v := New(t.TempDir())

	path, err := v.CreateNote("notes/first.md", "# First\n")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# First\n" {
		t.Errorf("content = %q, want %q", data, "# First\n")
	}

	// Creating again must not clobber the existing note.
	if _, err := v.CreateNote("notes/first.md", "overwritten"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "# First\n" {
		t.Error("CreateNote overwrote an existing note")
	}
}

func TestRenameNote(t *testing.T) {
	v := New(t.TempDir())
	if _, err := v.CreateNote("a.md", "body"); err != nil {
		t.Fatal(err)
	}

	if err := v.RenameNote("a.md", "sub/b.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(v.Root, "sub", "b.md")); err != nil {
		t.Errorf("renamed note missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(v.Root, "a.md")); !os.IsNotExist(err) {
		t.Error("old note still present after rename")
	}
}

func TestRenameNote_RefusesExistingTarget(t *testing.T) {
	v := New(t.TempDir())
	v.CreateNote("a.md", "a")
	v.CreateNote("b.md", "b")

	if err := v.RenameNote("a.md", "b.md"); err == nil {
		t.Error("rename onto an existing note should error")
	}
}

func TestDeleteNote(t *testing.T) {
	v := New(t.TempDir())
	v.CreateNote("gone.md", "x")

	if err := v.DeleteNote("gone.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(v.Root, "gone.md")); !os.IsNotExist(err) {
		t.Error("note still present after delete")
	}
}

func TestListNotes_SkipsHiddenAndNonMarkdown(t *testing.T) {
	root := t.TempDir()
	v := New(root)
	v.CreateNote("one.md", "1")
	v.CreateNote("dir/two.md", "2")
	os.WriteFile(filepath.Join(root, "image.png"), []byte{1}, 0644)
	os.MkdirAll(filepath.Join(root, ".cv"), 0755)
	os.WriteFile(filepath.Join(root, ".cv", "session.json"), []byte("{}"), 0644)

	notes, err := v.ListNotes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("ListNotes = %d entries, want 2", len(notes))
	}
	for _, n := range notes {
		if strings.HasPrefix(n.Path, ".") {
			t.Errorf("hidden entry leaked: %q", n.Path)
		}
	}
}

func TestCreateDailyNote_PathAndFrontmatter(t *testing.T) {
	v := New(t.TempDir())

	path, err := v.CreateDailyNote()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(path, string(filepath.Separator)+"daily"+string(filepath.Separator)) {
		t.Errorf("daily note path = %q, want under daily/", path)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "tags: [daily]") {
		t.Errorf("daily note missing frontmatter: %s", data)
	}
}
