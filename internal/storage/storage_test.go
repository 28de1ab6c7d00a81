package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type blob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoad_Missing(t *testing.T) {
	s := NewStore(t.TempDir())

	v := blob{Name: "default", Count: 7}
	found, err := s.Load("nothing", &v)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("Load should report found=false for a missing blob")
	}
	if v.Name != "default" || v.Count != 7 {
		t.Errorf("missing blob mutated value: %+v", v)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save("ext/demo", blob{Name: "saved", Count: 3}); err != nil {
		t.Fatal(err)
	}

	var v blob
	found, err := s.Load("ext/demo", &v)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("Load should find a saved blob")
	}
	if v.Name != "saved" || v.Count != 3 {
		t.Errorf("loaded %+v, want {saved 3}", v)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	vault := t.TempDir()
	s := NewStore(vault)

	dir := filepath.Join(vault, ".cv")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "part.json"), []byte(`{"count": 9, "mystery": true}`), 0644)

	v := blob{Name: "default", Count: 1}
	found, err := s.Load("part", &v)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("Load should find the blob")
	}
	if v.Count != 9 {
		t.Errorf("count = %d, want 9", v.Count)
	}
	if v.Name != "default" {
		t.Errorf("absent field overwrote default: name = %q", v.Name)
	}
}

func TestLoad_Malformed(t *testing.T) {
	vault := t.TempDir()
	s := NewStore(vault)

	os.MkdirAll(filepath.Join(vault, ".cv"), 0755)
	os.WriteFile(filepath.Join(vault, ".cv", "bad.json"), []byte("{not json"), 0644)

	var v blob
	if _, err := s.Load("bad", &v); err == nil {
		t.Error("Load should error on malformed JSON")
	}
}

func TestSave_CreatesNestedDirs(t *testing.T) {
	vault := t.TempDir()
	s := NewStore(vault)

	if err := s.Save("ext/nested/deep", blob{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(vault, ".cv", "ext", "nested", "deep.json")); err != nil {
		t.Errorf("blob file not created: %v", err)
	}
}
