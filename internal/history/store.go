package history

import (
	"errors"
	"io/fs"
	"os"
)

// Store is a file-backed history list. Missing files read as empty.
type Store struct {
	path string
}

// NewStore returns a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all entries, upgrading legacy records.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeEntries(data)
}

// Append adds an entry and rewrites the file.
func (s *Store) Append(entry Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	data, err := EncodeEntries(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Clear removes every saved entry.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
