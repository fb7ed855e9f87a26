package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cbx-editor/internal/model"
	"cbx-editor/internal/preview"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	srv, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postMarkup(t *testing.T, h http.Handler, markup string) {
	t.Helper()
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/autosave", strings.NewReader(markup)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("autosave status = %d, want 202", rec.Code)
	}
}

func TestNewServerValidation(t *testing.T) {
	if _, err := NewServer(ServerConfig{Addr: "", Dir: t.TempDir()}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Dir: "  "}); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestEditorPage(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Enter message here...") {
		t.Fatalf("editor page missing placeholder:\n%s", body)
	}
	if !strings.Contains(body, "My Saved Drafts (0/5)") {
		t.Fatalf("editor page missing drafts title:\n%s", body)
	}

	if rec := do(t, h, httptest.NewRequest(http.MethodGet, "/nope", nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /nope status = %d, want 404", rec.Code)
	}
}

func TestAutosaveThenExportRoundTrip(t *testing.T) {
	_, h := newTestServer(t)

	const markup = `<p>Hello, <b>world</b></p>`
	postMarkup(t, h, markup)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != markup {
		t.Fatalf("export body = %q, want %q", got, markup)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="email_draft.html"`) {
		t.Fatalf("Content-Disposition = %q", cd)
	}
}

func TestExportEmptyConflict(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("export of empty editor status = %d, want 409", rec.Code)
	}
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, h, req)
}

func TestDraftLifecycle(t *testing.T) {
	_, h := newTestServer(t)

	postMarkup(t, h, `<p>Draft body</p>`)

	rec := postForm(t, h, "/drafts", url.Values{"name": {"Launch email"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("draft save status = %d: %s", rec.Code, rec.Body.String())
	}
	var d model.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if d.ID == "" || d.Name != "Launch email" || d.Content != `<p>Draft body</p>` {
		t.Fatalf("unexpected draft: %+v", d)
	}

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/drafts/"+d.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("draft get status = %d", rec.Code)
	}

	// Clearing then loading restores the saved content.
	if rec := do(t, h, httptest.NewRequest(http.MethodPost, "/clear", nil)); rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rec.Code)
	}
	if rec := do(t, h, httptest.NewRequest(http.MethodGet, "/export", nil)); rec.Code != http.StatusConflict {
		t.Fatalf("export after clear status = %d, want 409", rec.Code)
	}
	if rec := do(t, h, httptest.NewRequest(http.MethodPost, "/drafts/"+d.ID+"/load", nil)); rec.Code != http.StatusOK {
		t.Fatalf("draft load status = %d", rec.Code)
	}
	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `<p>Draft body</p>` {
		t.Fatalf("export after load = %d %q", rec.Code, rec.Body.String())
	}

	if rec := do(t, h, httptest.NewRequest(http.MethodDelete, "/drafts/"+d.ID, nil)); rec.Code != http.StatusNoContent {
		t.Fatalf("draft delete status = %d", rec.Code)
	}
	if rec := do(t, h, httptest.NewRequest(http.MethodGet, "/drafts/"+d.ID, nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted draft get status = %d, want 404", rec.Code)
	}
}

func TestDraftSaveEmptyRejected(t *testing.T) {
	_, h := newTestServer(t)

	rec := postForm(t, h, "/drafts", url.Values{"name": {"nothing"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty draft save status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cannot save an empty draft") {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestDraftLoadUnknownID(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/drafts/draft-missing1/load", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("load unknown draft status = %d, want 404", rec.Code)
	}
}

func TestPreviewPage(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/preview", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), preview.EmptyNotice) {
		t.Fatalf("empty preview = %d:\n%s", rec.Code, rec.Body.String())
	}

	postMarkup(t, h, `<p>Preview me</p>`)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/preview", nil))
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
	if !strings.Contains(body, preview.SandboxAttr) {
		t.Fatalf("preview missing sandbox attribute:\n%s", body)
	}
	if strings.Contains(body, preview.EmptyNotice) {
		t.Fatalf("preview still shows the empty notice:\n%s", body)
	}
}

func TestStaticAssets(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/javascript; charset=utf-8" {
		t.Fatalf("app.js = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "text/css; charset=utf-8" {
		t.Fatalf("app.css = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}
