// Package web serves the browser shell: a contentEditable composition
// surface talking to the same session semantics the terminal uses.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/store"
	"cbx-editor/internal/surface"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr string
	Dir  string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template

	// The session is shared by every browser tab; this is a local-first
	// single-user app, the same document everywhere.
	mu      sync.Mutex
	session *editor.Session

	hub *changeHub
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Dir == "" {
		return nil, errors.New("web: dir is empty")
	}

	st := store.Store{Dir: cfg.Dir}
	if err := st.Ensure(); err != nil {
		return nil, err
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:     cfg,
		tmpl:    tmpl,
		session: editor.NewSession(surface.NewHost(), st),
		hub:     newChangeHub(),
	}
	srv.session.Sync.Subscribe(func(string, editor.Origin) {
		srv.hub.broadcast()
	})
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Close stops the session's autosave scheduler.
func (s *Server) Close() { s.session.Shutdown() }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.js", s.handleAppJS)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /", s.handleEditor)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("POST /autosave", s.handleAutosave)
	mux.HandleFunc("POST /drafts", s.handleDraftSave)
	mux.HandleFunc("GET /drafts/{draftId}", s.handleDraftGet)
	mux.HandleFunc("POST /drafts/{draftId}/load", s.handleDraftLoad)
	mux.HandleFunc("DELETE /drafts/{draftId}", s.handleDraftDelete)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /preview/ws", s.handlePreviewWS)
	mux.HandleFunc("GET /export", s.handleExport)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppJS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.js")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// changeHub fans out "document changed" ticks to SSE streams and preview
// sockets. Payloads are re-read from the session on delivery, so a coalesced
// tick under load is fine.
type changeHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newChangeHub() *changeHub {
	return &changeHub{subs: map[chan struct{}]struct{}{}}
}

func (h *changeHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *changeHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}
