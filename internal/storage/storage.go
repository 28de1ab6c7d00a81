package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store persists JSON blobs under the vault's .cv directory, one file per
// scope. Loading into a pre-defaulted value gives merge semantics: fields
// present in the file overwrite, missing fields keep their defaults, and
// unknown fields are ignored.
type Store struct {
	root string
}

// NewStore creates a store rooted at <vaultPath>/.cv.
func NewStore(vaultPath string) *Store {
	return &Store{root: filepath.Join(vaultPath, ".cv")}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.root
}

func (s *Store) blobPath(scope string) string {
	return filepath.Join(s.root, scope+".json")
}

// Load reads the scope's blob into v. A missing file leaves v untouched and
// reports found=false with no error. A malformed file is an error.
func (s *Store) Load(scope string, v any) (bool, error) {
	data, err := os.ReadFile(s.blobPath(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, err
	}
	return true, nil
}

// Save writes v as the scope's blob, creating parent directories as needed.
func (s *Store) Save(scope string, v any) error {
	path := s.blobPath(scope)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
