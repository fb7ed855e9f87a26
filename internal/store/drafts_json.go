package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"cbx-editor/internal/model"
)

// jsonDraftsBackend stores the collection as a single JSON array, mirroring
// the drafts-list key of the original storage layout.
type jsonDraftsBackend struct {
	store Store
}

func (b jsonDraftsBackend) path() string {
	return filepath.Join(b.store.Dir, draftsJSONFileName)
}

func (b jsonDraftsBackend) load() ([]model.Draft, error) {
	raw, err := os.ReadFile(b.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var drafts []model.Draft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		// Corrupted list => treat as missing.
		return nil, nil
	}
	return drafts, nil
}

func (b jsonDraftsBackend) save(drafts []model.Draft) error {
	if drafts == nil {
		drafts = []model.Draft{}
	}
	raw, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(b.path(), raw)
}
