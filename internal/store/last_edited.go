package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func (s Store) lastEditedPath() string {
	return filepath.Join(s.Dir, lastEditedFileName)
}

// LoadLastEdited returns the most recent non-draft HTML content. The bool
// is false when no slot exists (distinct from an empty string, which is a
// legitimate saved value).
func (s Store) LoadLastEdited() (string, bool) {
	if strings.TrimSpace(s.Dir) == "" {
		return "", false
	}
	b, err := os.ReadFile(s.lastEditedPath())
	if err != nil {
		return "", false
	}
	return string(b), true
}

// SaveLastEdited writes the generic last-edited slot.
func (s Store) SaveLastEdited(html string) error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	return writeFileAtomic(s.lastEditedPath(), []byte(html))
}

// DeleteLastEdited removes the slot; missing is fine.
func (s Store) DeleteLastEdited() error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	err := os.Remove(s.lastEditedPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
