package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/liduchuan/content-visible/internal/storage"
)

func TestLoad_MissingGivesDefaults(t *testing.T) {
	store := storage.NewStore(t.TempDir())

	st, err := Load(store)
	if err != nil {
		t.Fatal(err)
	}
	if !st.ShowTree {
		t.Error("default session should show the tree")
	}
	if st.TreeWidth != 30 {
		t.Errorf("TreeWidth = %d, want 30", st.TreeWidth)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := storage.NewStore(t.TempDir())

	want := State{
		OpenNotes:  []string{"a.md", "b.md"},
		ActivePane: 1,
		ShowTree:   false,
		TreeWidth:  24,
	}
	if err := Save(store, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.OpenNotes) != 2 || got.OpenNotes[1] != "b.md" {
		t.Errorf("OpenNotes = %v, want %v", got.OpenNotes, want.OpenNotes)
	}
	if got.ActivePane != 1 || got.ShowTree || got.TreeWidth != 24 {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestLoad_BrokenBlobResets(t *testing.T) {
	vault := t.TempDir()
	store := storage.NewStore(vault)
	os.MkdirAll(filepath.Join(vault, ".cv"), 0755)
	os.WriteFile(filepath.Join(vault, ".cv", "session.json"), []byte("nope"), 0644)

	st, err := Load(store)
	if err == nil {
		t.Error("broken session blob should return an error")
	}
	if !st.ShowTree || st.TreeWidth != 30 {
		t.Errorf("broken blob should reset to defaults, got %+v", st)
	}
}
