package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/model"
	"cbx-editor/internal/preview"

	"github.com/gorilla/websocket"
	"github.com/starfederation/datastar-go/datastar"
)

type editorVM struct {
	Now           string
	HTML          template.HTML
	ActiveDraftID string
	Drafts        []model.Draft
	DraftsTitle   string
	Fonts         []string
	Placeholder   string
	LastSaved     string
}

func (s *Server) editorVM() editorVM {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.session.Drafts()
	vm := editorVM{
		Now: time.Now().Format(time.RFC3339),
		// The canonical markup is produced by the editing pipeline, not
		// arbitrary user input from elsewhere.
		HTML:          template.HTML(s.session.Sync.HTML()),
		ActiveDraftID: s.session.ActiveDraftID(),
		Drafts:        drafts,
		DraftsTitle:   draftsTitle(len(drafts)),
		Fonts:         editor.FontFamilies,
		Placeholder:   "Enter message here...",
	}
	if at, ok := s.session.LastSavedAt(); ok {
		vm.LastSaved = at.Format("3:04:05 PM")
	}
	return vm
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeHTMLTemplate(w, "editor.html", s.editorVM())
}

// handleEvents is the Datastar stream behind the drafts sidebar and the
// "Last autosaved" line.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch, cancel := s.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	patch := func() {
		vm := s.editorVM()
		html, err := s.renderTemplate("drafts_panel", vm)
		if err != nil {
			return
		}
		_ = sse.PatchElements(html,
			datastar.WithSelector("#drafts-panel"),
			datastar.WithMode(datastar.ElementPatchModeOuter))
		_ = sse.MarshalAndPatchSignals(map[string]any{"lastSaved": vm.LastSaved})
	}
	patch()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			patch()
		}
	}
}

// handleAutosave receives the editor content on input. The session's
// debounced scheduler decides when the write actually lands, so posting on
// every keystroke is fine.
func (s *Server) handleAutosave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.session.Sync.SetFromSource(string(body))
	s.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDraftSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.Form.Get("name"))

	s.mu.Lock()
	d, err := s.session.SaveDraft(name)
	s.mu.Unlock()

	if errors.Is(err, editor.ErrEmptyContent) {
		http.Error(w, "Editor is empty. Cannot save an empty draft.", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.hub.broadcast()
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("draftId"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.session.Drafts() {
		if d.ID == id {
			writeJSON(w, http.StatusOK, d)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleDraftLoad(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("draftId"))

	s.mu.Lock()
	d, ok := s.session.LoadDraft(id)
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	s.hub.broadcast()
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("draftId"))

	s.mu.Lock()
	s.session.DeleteDraft(id)
	s.mu.Unlock()

	s.hub.broadcast()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.Clear()
	s.mu.Unlock()

	s.hub.broadcast()
	w.WriteHeader(http.StatusNoContent)
}

type previewVM struct {
	Now         string
	Empty       bool
	EmptyNotice string
	SrcDoc      string
	SandboxAttr string
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	html := s.session.Sync.HTML()
	s.mu.Unlock()

	vm := previewVM{
		Now:         time.Now().Format(time.RFC3339),
		EmptyNotice: preview.EmptyNotice,
		SandboxAttr: preview.SandboxAttr,
	}
	if editor.IsEmpty(html) {
		vm.Empty = true
	} else {
		vm.SrcDoc = preview.HostDocument(html)
	}
	s.writeHTMLTemplate(w, "preview.html", vm)
}

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for localhost.
		return strings.Contains(origin, "://"+strings.TrimSpace(r.Host))
	},
}

// handlePreviewWS tells open preview windows to reload when the document
// changes in another tab or in the terminal shell.
func (s *Server) handlePreviewWS(w http.ResponseWriter, r *http.Request) {
	conn, err := previewUpgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	ch, cancel := s.hub.subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
				return
			}
		}
	}
}

// handleExport serves the canonical HTML, byte for byte, as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, err := s.session.ExportHTML()
	s.mu.Unlock()

	if errors.Is(err, editor.ErrEmptyContent) {
		http.Error(w, "The editor is empty. Nothing to download.", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+editor.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func draftsTitle(n int) string {
	return fmt.Sprintf("My Saved Drafts (%d/%d)", n, model.MaxDrafts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
