package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	draftsJSONFileName   = "drafts.json"
	draftsSQLiteFileName = "drafts.sqlite"
	lastEditedFileName   = "last_edited.html"
)

// Store is a durable key/value home for editor state, scoped to a single
// directory (the Go rendition of the browser's origin-scoped storage).
type Store struct {
	Dir string
}

// DefaultDir resolves the store directory: $CBX_DIR when set, otherwise
// ~/.cbx/store.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("CBX_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cbx", "store"), nil
}

// Ensure creates the store directory if missing.
func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// writeFileAtomic writes via a sibling tmp file and rename so readers never
// observe a partial value.
func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
