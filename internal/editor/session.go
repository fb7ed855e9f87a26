package editor

import (
	"errors"
	"log"
	"sync"
	"time"

	"cbx-editor/internal/autosave"
	"cbx-editor/internal/model"
	"cbx-editor/internal/store"
)

// ExportFileName is the artifact name for downloaded content.
const ExportFileName = "email_draft.html"

// ErrEmptyContent rejects draft saves and exports when the editor carries
// no visible text. Callers surface it as a non-blocking notice.
var ErrEmptyContent = errors.New("editor content is empty")

// Session is the explicitly-owned application state for one editing
// session: the canonical HTML, the draft collection, the active-draft
// pointer, and the autosave timer. All mutation goes through its methods;
// there are no ambient globals.
type Session struct {
	Sync    *Synchronizer
	Bridge  *Bridge
	Tracker *BlockTracker

	store store.Store
	saver *autosave.Scheduler

	// mu guards draft state and lastSavedAt. The UI loop is single
	// threaded, but the autosave timer fires on its own goroutine.
	mu            sync.Mutex
	drafts        []model.Draft
	activeDraftID string
	lastSavedAt   time.Time

	now func() time.Time
}

// NewSession rehydrates state from the store: the draft collection and the
// last-edited slot (or empty when absent). The active-draft pointer always
// starts unset.
func NewSession(surface Surface, st store.Store) *Session {
	s := &Session{store: st, now: time.Now}
	s.Tracker = NewBlockTracker()
	s.Sync = NewSynchronizer(surface)
	s.Bridge = NewBridge(surface, s.Sync, s.Tracker)

	s.drafts = st.LoadDrafts()
	if html, ok := st.LoadLastEdited(); ok {
		s.Sync.SetExternal(html)
	}

	s.saver = autosave.New(autosave.DefaultDelay, s.persist)
	s.Sync.Subscribe(func(html string, _ Origin) {
		s.saver.Notify(html)
	})
	return s
}

// persist is the debounced write target. An active draft receives the
// content in place; otherwise the last-edited slot does. Failures are
// logged, never surfaced: autosave is best-effort and the in-memory state
// stays correct regardless.
func (s *Session) persist(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeDraftID != "" {
		for i := range s.drafts {
			if s.drafts[i].ID == s.activeDraftID {
				s.drafts[i].Content = html
				s.drafts[i].Timestamp = s.now()
				break
			}
		}
		if err := s.store.SaveDrafts(s.drafts); err != nil {
			log.Printf("autosave: persist drafts: %v", err)
			return
		}
		s.lastSavedAt = s.now()
		return
	}

	// An empty canonical value has nothing worth restoring; dropping the
	// slot keeps "clear" durable instead of resurrecting an empty entry
	// one debounce cycle later.
	if IsEmpty(html) {
		if err := s.store.DeleteLastEdited(); err != nil {
			log.Printf("autosave: drop last-edited: %v", err)
		}
		return
	}
	if err := s.store.SaveLastEdited(html); err != nil {
		log.Printf("autosave: persist last-edited: %v", err)
		return
	}
	s.lastSavedAt = s.now()
}

// SaveDraft snapshots the canonical HTML as a new draft and marks it
// active. Empty content is rejected without touching the collection.
func (s *Session) SaveDraft(name string) (model.Draft, error) {
	html := s.Sync.HTML()
	if IsEmpty(html) {
		return model.Draft{}, ErrEmptyContent
	}
	id, err := store.NewDraftID()
	if err != nil {
		return model.Draft{}, err
	}
	now := s.now()
	if name == "" {
		name = model.DefaultDraftName(now)
	}
	d := model.Draft{ID: id, Name: name, Content: html, Timestamp: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append([]model.Draft{d}, s.drafts...)
	sortAndCapDrafts(&s.drafts)
	if err := s.store.SaveDrafts(s.drafts); err != nil {
		// In-memory state stays correct even when persistence fails.
		log.Printf("drafts: persist after save: %v", err)
	}
	s.activeDraftID = d.ID
	return d, nil
}

// LoadDraft replaces the canonical HTML with the draft's content and marks
// it active. A stale id is a silent no-op.
func (s *Session) LoadDraft(id string) (model.Draft, bool) {
	s.mu.Lock()
	var found *model.Draft
	for i := range s.drafts {
		if s.drafts[i].ID == id {
			found = &s.drafts[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return model.Draft{}, false
	}
	d := *found
	s.activeDraftID = d.ID
	s.mu.Unlock()

	s.Sync.SetExternal(d.Content)
	return d, true
}

// DeleteDraft removes a draft. Deleting the active draft clears the
// pointer but leaves the live editor content untouched. A stale id is a
// silent no-op.
func (s *Session) DeleteDraft(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.drafts[:0]
	removed := false
	for _, d := range s.drafts {
		if d.ID == id {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return
	}
	s.drafts = kept
	if err := s.store.SaveDrafts(s.drafts); err != nil {
		log.Printf("drafts: persist after delete: %v", err)
	}
	if s.activeDraftID == id {
		s.activeDraftID = ""
	}
}

// Drafts returns the collection for display, newest first.
func (s *Session) Drafts() []model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Draft, len(s.drafts))
	copy(out, s.drafts)
	return out
}

func (s *Session) ActiveDraftID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDraftID
}

// LastSavedAt reports the timestamp of the last successful autosave write.
func (s *Session) LastSavedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt, !s.lastSavedAt.IsZero()
}

// Clear resets the editor: empties the canonical HTML, removes the
// last-edited slot, clears lastSavedAt and the active-draft pointer. The
// draft collection is untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	s.activeDraftID = ""
	s.lastSavedAt = time.Time{}
	s.mu.Unlock()

	s.Sync.SetExternal("")
	s.saver.Stop()
	if err := s.store.DeleteLastEdited(); err != nil {
		log.Printf("clear: remove last-edited: %v", err)
	}
}

// Shutdown cancels any pending autosave without writing. Unsaved content
// within the debounce window is dropped on teardown, matching a closed
// browser tab.
func (s *Session) Shutdown() {
	s.saver.Stop()
}

// SetBlock applies the block toggle rule: re-selecting the active kind
// reverts to Paragraph, anything else applies the kind.
func (s *Session) SetBlock(kind BlockKind) {
	target := s.Tracker.Toggle(kind)
	s.Bridge.Apply(CmdFormatBlock, "<"+string(target)+">")
}

// ExportHTML returns the exact canonical bytes for download, rejecting
// empty content.
func (s *Session) ExportHTML() ([]byte, error) {
	html := s.Sync.HTML()
	if IsEmpty(html) {
		return nil, ErrEmptyContent
	}
	return []byte(html), nil
}

func sortAndCapDrafts(drafts *[]model.Draft) {
	d := *drafts
	for i := 1; i < len(d); i++ {
		for j := i; j > 0 && d[j].Timestamp.After(d[j-1].Timestamp); j-- {
			d[j], d[j-1] = d[j-1], d[j]
		}
	}
	if len(d) > model.MaxDrafts {
		d = d[:model.MaxDrafts]
	}
	*drafts = d
}
