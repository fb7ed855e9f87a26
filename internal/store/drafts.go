package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cbx-editor/internal/model"
)

// draftsBackend persists the full draft collection. Both backends write the
// whole list on every save so the persisted collection always equals the
// in-memory one immediately after a mutation.
type draftsBackend interface {
	load() ([]model.Draft, error)
	save(drafts []model.Draft) error
}

// draftsBackendFor picks the backend for this store dir.
//
// Autodetect: an existing drafts.sqlite wins; otherwise JSON (the default
// for fresh stores). CBX_DRAFTS_BACKEND=json|sqlite overrides.
func (s Store) draftsBackendFor() draftsBackend {
	switch strings.TrimSpace(os.Getenv("CBX_DRAFTS_BACKEND")) {
	case "json":
		return jsonDraftsBackend{store: s}
	case "sqlite":
		return sqliteDraftsBackend{store: s}
	}
	if _, err := os.Stat(filepath.Join(s.Dir, draftsSQLiteFileName)); err == nil {
		return sqliteDraftsBackend{store: s}
	}
	return jsonDraftsBackend{store: s}
}

// LoadDrafts reads the persisted collection, newest first. Missing or
// corrupted storage yields an empty collection, never an error the caller
// must handle: the editing session stays usable regardless.
func (s Store) LoadDrafts() []model.Draft {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	drafts, err := s.draftsBackendFor().load()
	if err != nil {
		// Best-effort; treat unreadable storage as empty.
		return nil
	}
	return normalizeDrafts(drafts)
}

// SaveDrafts persists the collection, enforcing ordering and the size
// bound before the write.
func (s Store) SaveDrafts(drafts []model.Draft) error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.draftsBackendFor().save(normalizeDrafts(drafts))
}

// normalizeDrafts sorts newest-first and truncates to the bound, evicting
// the oldest beyond it.
func normalizeDrafts(drafts []model.Draft) []model.Draft {
	out := make([]model.Draft, len(drafts))
	copy(out, drafts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > model.MaxDrafts {
		out = out[:model.MaxDrafts]
	}
	return out
}
