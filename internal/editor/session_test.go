package editor_test

import (
	"fmt"
	"testing"
	"time"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/model"
	"cbx-editor/internal/store"
	"cbx-editor/internal/surface"
)

func newTestSession(t *testing.T) (*editor.Session, store.Store) {
	t.Helper()
	st := store.Store{Dir: t.TempDir()}
	if err := st.Ensure(); err != nil {
		t.Fatalf("ensure store: %v", err)
	}
	s := editor.NewSession(surface.NewHost(), st)
	t.Cleanup(s.Shutdown)
	return s, st
}

func TestSaveDraftRejectsEmpty(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	if _, err := s.SaveDraft("empty"); err != editor.ErrEmptyContent {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}

	s.Sync.SetFromSource("<p><br></p>")
	if _, err := s.SaveDraft("whitespace"); err != editor.ErrEmptyContent {
		t.Fatalf("markup without visible text: err = %v, want ErrEmptyContent", err)
	}
	if got := st.LoadDrafts(); len(got) != 0 {
		t.Fatalf("store has %d drafts after rejected saves, want 0", len(got))
	}
}

func TestSaveDraftBecomesActiveAndPersists(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>hello</p>")

	d, err := s.SaveDraft("Greeting")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if d.Name != "Greeting" || d.Content != "<p>hello</p>" {
		t.Fatalf("draft = %+v", d)
	}
	if s.ActiveDraftID() != d.ID {
		t.Fatalf("active = %q, want %q", s.ActiveDraftID(), d.ID)
	}

	persisted := st.LoadDrafts()
	if len(persisted) != 1 || persisted[0].ID != d.ID {
		t.Fatalf("persisted = %+v, want the saved draft", persisted)
	}
}

func TestSaveDraftDefaultName(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.Sync.SetFromSource("<p>x</p>")

	d, err := s.SaveDraft("")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := model.DefaultDraftName(d.Timestamp)
	if d.Name != want {
		t.Fatalf("name = %q, want %q", d.Name, want)
	}
}

func TestSaveDraftEvictsOldestBeyondCap(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)

	ids := make([]string, 0, model.MaxDrafts+2)
	for i := 0; i < model.MaxDrafts+2; i++ {
		s.Sync.SetFromSource(fmt.Sprintf("<p>draft %d</p>", i))
		d, err := s.SaveDraft(fmt.Sprintf("d%d", i))
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, d.ID)
		time.Sleep(2 * time.Millisecond) // distinct timestamps
	}

	drafts := s.Drafts()
	if len(drafts) != model.MaxDrafts {
		t.Fatalf("len = %d, want %d", len(drafts), model.MaxDrafts)
	}
	// Newest first; the two oldest saves were evicted.
	if drafts[0].ID != ids[len(ids)-1] {
		t.Fatalf("head = %q, want newest %q", drafts[0].ID, ids[len(ids)-1])
	}
	for _, d := range drafts {
		if d.ID == ids[0] || d.ID == ids[1] {
			t.Fatalf("oldest draft %q survived eviction", d.ID)
		}
	}
}

func TestLoadDraft(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.Sync.SetFromSource("<p>first</p>")
	d, err := s.SaveDraft("one")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Sync.SetFromSource("<p>scratch</p>")
	got, ok := s.LoadDraft(d.ID)
	if !ok || got.ID != d.ID {
		t.Fatalf("load = (%+v, %v)", got, ok)
	}
	if s.Sync.HTML() != "<p>first</p>" {
		t.Fatalf("canonical = %q, want draft content", s.Sync.HTML())
	}
	if s.ActiveDraftID() != d.ID {
		t.Fatalf("active = %q, want %q", s.ActiveDraftID(), d.ID)
	}
}

func TestLoadDraftStaleIDIsNoOp(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.Sync.SetFromSource("<p>keep me</p>")

	if _, ok := s.LoadDraft("draft-missing"); ok {
		t.Fatalf("stale load reported ok")
	}
	if s.Sync.HTML() != "<p>keep me</p>" {
		t.Fatalf("canonical changed on stale load: %q", s.Sync.HTML())
	}
	if s.ActiveDraftID() != "" {
		t.Fatalf("active = %q, want unset", s.ActiveDraftID())
	}
}

func TestDeleteActiveDraftKeepsEditorContent(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>body</p>")
	d, err := s.SaveDraft("doomed")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	s.DeleteDraft(d.ID)
	if s.ActiveDraftID() != "" {
		t.Fatalf("active = %q, want cleared", s.ActiveDraftID())
	}
	if s.Sync.HTML() != "<p>body</p>" {
		t.Fatalf("editor content was touched by delete: %q", s.Sync.HTML())
	}
	if got := st.LoadDrafts(); len(got) != 0 {
		t.Fatalf("persisted drafts = %d, want 0", len(got))
	}

	// Deleting again is a silent no-op.
	s.DeleteDraft(d.ID)
}

func TestAutosaveWritesLastEditedAfterDebounce(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>v1</p>")
	s.Sync.SetFromSource("<p>v2</p>")

	time.Sleep(700 * time.Millisecond)

	html, ok := st.LoadLastEdited()
	if !ok || html != "<p>v2</p>" {
		t.Fatalf("last-edited = (%q, %v), want final value", html, ok)
	}
	if _, ok := s.LastSavedAt(); !ok {
		t.Fatalf("lastSavedAt unset after autosave")
	}
}

func TestAutosaveTargetsActiveDraft(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>original</p>")
	d, err := s.SaveDraft("mine")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Sync.SetFromSource("<p>edited</p>")
	time.Sleep(700 * time.Millisecond)

	drafts := st.LoadDrafts()
	if len(drafts) != 1 || drafts[0].ID != d.ID {
		t.Fatalf("drafts = %+v", drafts)
	}
	if drafts[0].Content != "<p>edited</p>" {
		t.Fatalf("draft content = %q, want autosaved edit", drafts[0].Content)
	}
}

func TestClearResetsEditorAndLastEdited(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>tmp</p>")
	if _, err := s.SaveDraft("kept"); err != nil {
		t.Fatalf("save: %v", err)
	}

	s.Clear()
	if s.Sync.HTML() != "" {
		t.Fatalf("canonical = %q, want empty", s.Sync.HTML())
	}
	if s.ActiveDraftID() != "" {
		t.Fatalf("active survives clear")
	}
	if _, ok := s.LastSavedAt(); ok {
		t.Fatalf("lastSavedAt survives clear")
	}
	if _, ok := st.LoadLastEdited(); ok {
		t.Fatalf("last-edited slot survives clear")
	}
	if len(s.Drafts()) != 1 {
		t.Fatalf("saved drafts must survive clear")
	}
}

func TestClearStaysDurableAcrossDebounce(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	s.Sync.SetFromSource("<p>soon gone</p>")
	s.Clear()

	// The pending autosave must not resurrect the cleared content.
	time.Sleep(700 * time.Millisecond)
	if html, ok := st.LoadLastEdited(); ok {
		t.Fatalf("last-edited = %q after clear, want absent", html)
	}
}

func TestExportHTMLExactBytes(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	in := "<p style=\"text-align: center\">Hi &amp; bye</p>"
	s.Sync.SetFromSource(in)

	b, err := s.ExportHTML()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(b) != in {
		t.Fatalf("export = %q, want exact canonical bytes %q", b, in)
	}
}

func TestExportHTMLRejectsEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	if _, err := s.ExportHTML(); err != editor.ErrEmptyContent {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
}

func TestSetBlockToggleThroughSurface(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.Sync.SetFromSource("<p>title</p>")

	s.SetBlock(editor.BlockHeading2)
	if s.Tracker.Active() != editor.BlockHeading2 {
		t.Fatalf("active = %q, want H2", s.Tracker.Active())
	}
	if s.Sync.HTML() != "<h2>title</h2>" {
		t.Fatalf("canonical = %q, want <h2>title</h2>", s.Sync.HTML())
	}

	// Re-applying the active kind reverts to paragraph.
	s.SetBlock(editor.BlockHeading2)
	if s.Tracker.Active() != editor.BlockParagraph {
		t.Fatalf("active = %q, want P after toggle", s.Tracker.Active())
	}
	if s.Sync.HTML() != "<p>title</p>" {
		t.Fatalf("canonical = %q, want <p>title</p>", s.Sync.HTML())
	}
}

func TestRehydrateFromStore(t *testing.T) {
	t.Parallel()

	st := store.Store{Dir: t.TempDir()}
	if err := st.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := st.SaveLastEdited("<p>resume</p>"); err != nil {
		t.Fatalf("seed last-edited: %v", err)
	}
	if err := st.SaveDrafts([]model.Draft{{
		ID: "draft-seedseed", Name: "seeded", Content: "<p>d</p>", Timestamp: time.Now(),
	}}); err != nil {
		t.Fatalf("seed drafts: %v", err)
	}

	s := editor.NewSession(surface.NewHost(), st)
	t.Cleanup(s.Shutdown)

	if s.Sync.HTML() != "<p>resume</p>" {
		t.Fatalf("canonical = %q, want rehydrated last-edited", s.Sync.HTML())
	}
	if len(s.Drafts()) != 1 || s.Drafts()[0].ID != "draft-seedseed" {
		t.Fatalf("drafts = %+v", s.Drafts())
	}
	if s.ActiveDraftID() != "" {
		t.Fatalf("active pointer must start unset")
	}
}
