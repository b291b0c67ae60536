package document

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes uploaded blobs to a local directory. Names are generated by
// the caller, never taken from the client.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes data under name and returns the full storage path.
func (s *Store) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}
	return path, nil
}

// Remove deletes the blob at path. A blob that is already gone is not an
// error, the database row is the source of truth.
func (s *Store) Remove(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
