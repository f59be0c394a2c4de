package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/db"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/history"
	"github.com/medusa-ai/forge/internal/ops"
	"github.com/medusa-ai/forge/internal/prompt"
	"github.com/medusa-ai/forge/internal/share"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ prompt.Payload) (string, error) {
	s.calls++
	return s.text, s.err
}

func setupTest(t *testing.T, gen *stubGenerator) *Handlers {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store, err := history.Open(context.Background(), db.KV{DB: database})
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}

	deps := ops.Deps{Generator: gen, History: store, Session: &ops.Session{}}
	return newHandlers(deps, config.DefaultConfig(), "test")
}

// seedEntry appends a history entry and returns it.
func seedEntry(t *testing.T, h *Handlers, idea, text string, tool prompt.Tool) history.Entry {
	t.Helper()
	return h.deps.History.Append(context.Background(), history.Record{Idea: idea, Prompt: text, Tool: tool})
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// --- HandleIndex ---

func TestHandleIndex_Default(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Medusa AI Prompt Forge", "Enhance Prompt", prompt.Lookup(prompt.ToolImage).Placeholder, `name="style"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in generator page", want)
		}
	}
	if strings.Contains(body, `name="category"`) {
		t.Error("image tool should not offer a website category")
	}
	if strings.Contains(body, "data-clean-url") {
		t.Error("plain page should not ask for a URL rewrite")
	}
}

func TestHandleIndex_ToolSwitch(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/?tool=Website&idea=my+shop&style=anime", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `name="category"`) {
		t.Error("website tool should offer a category")
	}
	if strings.Contains(body, `name="style"`) {
		t.Error("website tool should not offer a style")
	}
	if !strings.Contains(body, "my shop") {
		t.Error("idea should carry across a tool switch")
	}
}

func TestHandleIndex_ShareSeedsPage(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	token, err := share.Encode(share.State{Idea: "a cat", Prompt: "a detailed cat", Tool: prompt.ToolImage, Style: prompt.StyleAnime})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/?share="+token, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "a detailed cat") || !strings.Contains(body, "a cat") {
		t.Error("shared idea and prompt should seed the page")
	}
	if !strings.Contains(body, `<option value="anime" selected>`) {
		t.Error("shared style should be selected")
	}
	if !strings.Contains(body, `data-clean-url="/"`) {
		t.Error("expected clean URL marker so the share parameter is dropped")
	}
}

func TestHandleIndex_MalformedShareIgnored(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/?share=not-a-valid-token", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "invalid share token") || strings.Contains(body, "error-message") {
		t.Error("malformed share link must not surface an error")
	}
	if !strings.Contains(body, `data-clean-url="/"`) {
		t.Error("malformed share parameter should still be dropped")
	}
	if strings.Contains(body, `class="result"`) {
		t.Error("no result should be shown")
	}
}

func TestHandleIndex_Entry(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	e := seedEntry(t, h, "a castle", "A majestic castle at dusk", prompt.ToolVideo)

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/?entry="+e.ID, nil))

	body := rec.Body.String()
	if !strings.Contains(body, "A majestic castle at dusk") {
		t.Error("entry prompt should seed the result")
	}
	if !strings.Contains(body, prompt.Lookup(prompt.ToolVideo).Placeholder) {
		t.Error("entry tool should be selected")
	}

	rec = httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest("GET", "/?entry=missing", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("unknown entry status = %d, want 200", rec.Code)
	}
}

// --- HandleEnhance ---

func TestHandleEnhance_EmptyIdea(t *testing.T) {
	gen := &stubGenerator{text: "unused"}
	h := setupTest(t, gen)

	req := postForm("/enhance", url.Values{"idea": {"   "}, "tool": {"Image"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), emptyIdeaMessage) {
		t.Error("expected inline validation message")
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
	if h.deps.History.Len() != 0 {
		t.Errorf("history len = %d, want 0", h.deps.History.Len())
	}
}

func TestHandleEnhance_EmptyIdea_JSON(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	req := postForm("/enhance", url.Values{"idea": {""}, "tool": {"Image"}})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if resp["error"]["code"] != string(errors.ErrInvalidRequest) {
		t.Errorf("error.code = %v", resp["error"]["code"])
	}
}

func TestHandleEnhance_HtmxSuccess(t *testing.T) {
	h := setupTest(t, &stubGenerator{text: "A majestic castle at dusk --ar 16:9 --v 6.0"})

	req := postForm("/enhance", url.Values{"idea": {"a castle"}, "tool": {"Image"}, "style": {"none"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("htmx response should be a fragment")
	}
	if !strings.Contains(body, "A majestic castle at dusk --ar 16:9 --v 6.0") {
		t.Error("expected generated prompt in fragment")
	}
	if !strings.Contains(body, `action="/regenerate"`) || !strings.Contains(body, `action="/share"`) {
		t.Error("expected regenerate and share actions")
	}
	if h.deps.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", h.deps.History.Len())
	}
}

func TestHandleEnhance_JSON(t *testing.T) {
	h := setupTest(t, &stubGenerator{text: "A detailed cat"})

	req := postForm("/enhance", url.Values{"idea": {"a cat"}, "tool": {"Video"}, "style": {"3d"}})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.EnhanceOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if out.Prompt != "A detailed cat" || out.Entry.Tool != prompt.ToolVideo {
		t.Errorf("output = %+v", out)
	}
	if out.Entry.Style == nil || *out.Entry.Style != prompt.StyleThreeD {
		t.Errorf("entry style = %v, want 3d", out.Entry.Style)
	}
}

func TestHandleEnhance_FullPage(t *testing.T) {
	h := setupTest(t, &stubGenerator{text: "A detailed cat"})

	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, postForm("/enhance", url.Values{"idea": {"a cat"}, "tool": {"Image"}}))

	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "A detailed cat") {
		t.Error("non-htmx post should render the whole page with the result")
	}
}

func TestHandleEnhance_BackendFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.NewBackendFailure("Failed to generate prompt. Please check your API key and try again.")}
	h := setupTest(t, gen)

	req := postForm("/enhance", url.Values{"idea": {"a cat"}, "tool": {"Image"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error: Failed to generate prompt. Please check your API key and try again.") {
		t.Errorf("expected error placeholder, got %s", rec.Body.String())
	}
	if h.deps.History.Len() != 0 {
		t.Errorf("history len = %d, want 0", h.deps.History.Len())
	}
}

func TestHandleEnhance_WebsiteRenderedAsMarkdown(t *testing.T) {
	h := setupTest(t, &stubGenerator{text: "## Goal\nSell shoes online"})

	req := postForm("/enhance", url.Values{"idea": {"a shoe shop"}, "tool": {"Website"}, "category": {"ecommerce"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "<h2>Goal</h2>") {
		t.Errorf("website brief should render as markdown, got %s", body)
	}
	if !strings.Contains(body, `name="category" value="ecommerce"`) {
		t.Error("category should be carried into follow-up actions")
	}
}

func TestHandleEnhance_InvalidTool(t *testing.T) {
	gen := &stubGenerator{}
	h := setupTest(t, gen)

	req := postForm("/enhance", url.Values{"idea": {"x"}, "tool": {"Audio"}})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleEnhance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestHandleRegenerate(t *testing.T) {
	gen := &stubGenerator{text: "again"}
	h := setupTest(t, gen)
	form := url.Values{"idea": {"a cat"}, "tool": {"Image"}, "style": {"anime"}}

	for range 2 {
		req := postForm("/regenerate", form)
		req.Header.Set("HX-Request", "true")
		h.HandleRegenerate(httptest.NewRecorder(), req)
	}
	if gen.calls != 2 || h.deps.History.Len() != 2 {
		t.Errorf("calls = %d, history = %d, want 2 and 2", gen.calls, h.deps.History.Len())
	}
}

// --- HandleShare ---

func TestHandleShare_Htmx(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	req := postForm("/share", url.Values{"idea": {"a cat"}, "prompt": {"a detailed cat"}, "tool": {"Image"}, "style": {"anime"}})
	req.Host = "forge.local:8642"
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleShare(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http://forge.local:8642/?share=") {
		t.Errorf("expected share link for request host, got %s", rec.Body.String())
	}
}

func TestHandleShare_JSONRoundTrip(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	h.cfg.PublicURL = "https://forge.example.com"

	req := postForm("/share", url.Values{"idea": {"a cat"}, "prompt": {"a detailed cat"}, "tool": {"Image"}, "style": {"anime"}})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleShare(rec, req)

	var out ops.ShareOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	u, err := url.Parse(out.URL)
	if err != nil {
		t.Fatalf("parse URL: %v", err)
	}
	if u.Host != "forge.example.com" {
		t.Errorf("host = %q, want public URL host", u.Host)
	}
	state, err := share.Decode(u.Query().Get(share.Param))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if state.Prompt != "a detailed cat" || state.Style != prompt.StyleAnime {
		t.Errorf("state = %+v", state)
	}
}

func TestHandleShare_NothingToShare(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	req := postForm("/share", url.Values{"idea": {"a cat"}, "tool": {"Image"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleShare(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error-message") {
		t.Error("expected error fragment")
	}
}

// --- HandleHistory / HandleClearHistory ---

func TestHandleHistory(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	e := seedEntry(t, h, "a castle", "A majestic castle", prompt.ToolImage)

	rec := httptest.NewRecorder()
	h.HandleHistory(rec, httptest.NewRequest("GET", "/history", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "a castle") || !strings.Contains(body, "/?entry="+e.ID) {
		t.Error("expected entry with View & Use link")
	}
	if !strings.Contains(body, "Clear History") {
		t.Error("expected clear action when entries exist")
	}
}

func TestHandleHistory_Empty(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	h.HandleHistory(rec, httptest.NewRequest("GET", "/history", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "No prompts yet") {
		t.Error("expected empty state")
	}
	if strings.Contains(body, "Clear History") {
		t.Error("clear action should be hidden when empty")
	}
}

func TestHandleHistory_JSONPagination(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	for range 3 {
		seedEntry(t, h, "idea", "prompt", prompt.ToolImage)
	}

	req := httptest.NewRequest("GET", "/history?limit=2", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)

	var out ops.ListHistoryOutput
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if len(out.Items) != 2 || !out.Pagination.HasMore || out.Pagination.Total != 3 {
		t.Errorf("output = %+v", out.Pagination)
	}
}

func TestHandleClearHistory_MissingConfirm(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	seedEntry(t, h, "keep", "me", prompt.ToolImage)

	rec := httptest.NewRecorder()
	h.HandleClearHistory(rec, postForm("/history/clear", url.Values{"confirm": {"false"}}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if h.deps.History.Len() != 1 {
		t.Error("history should be untouched without confirmation")
	}
}

func TestHandleClearHistory_Redirect(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	seedEntry(t, h, "gone", "soon", prompt.ToolImage)

	rec := httptest.NewRecorder()
	h.HandleClearHistory(rec, postForm("/history/clear", url.Values{"confirm": {"true"}}))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if rec.Header().Get("Location") != "/history" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}
	if h.deps.History.Len() != 0 {
		t.Errorf("history len = %d, want 0", h.deps.History.Len())
	}
}

func TestHandleClearHistory_Htmx(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	req := postForm("/history/clear", url.Values{"confirm": {"true"}})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleClearHistory(rec, req)

	if rec.Header().Get("HX-Redirect") != "/history" {
		t.Errorf("HX-Redirect = %q", rec.Header().Get("HX-Redirect"))
	}
}

// --- HandleLegal ---

func TestHandleLegal(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	for page, title := range legalPages {
		req := httptest.NewRequest("GET", "/legal/"+page, nil)
		req.SetPathValue("page", page)
		rec := httptest.NewRecorder()
		h.HandleLegal(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", page, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, title) || !strings.Contains(body, "<p>") {
			t.Errorf("%s: expected title and rendered markdown", page)
		}
	}
}

func TestHandleLegal_NotFound(t *testing.T) {
	h := setupTest(t, &stubGenerator{})

	req := httptest.NewRequest("GET", "/legal/cookies", nil)
	req.SetPathValue("page", "cookies")
	rec := httptest.NewRecorder()
	h.HandleLegal(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("full error page should contain layout")
	}
}

// --- Server ---

func TestServer_RoutesAndHeaders(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	srv := NewServer(h.deps, h.cfg, "test", "127.0.0.1", 0)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/history", http.StatusOK},
		{"/legal/about", http.StatusOK},
		{"/static/app.js", http.StatusOK},
		{"/static/style.css", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Errorf("GET %s missing security headers", tt.path)
		}
	}
}

func TestServer_ScriptReportsFailedCopy(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	srv := NewServer(h.deps, h.cfg, "test", "127.0.0.1", 0)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.js", nil))
	body := rec.Body.String()
	if strings.Count(body, `"Not copied"`) < 2 {
		t.Error("app.js should label the button when the clipboard is missing or the write fails")
	}
	if strings.Contains(body, ".catch(function () {})") {
		t.Error("app.js must not swallow clipboard failures")
	}
}

func TestServer_RejectsCrossSitePosts(t *testing.T) {
	gen := &stubGenerator{text: "A majestic castle"}
	h := setupTest(t, gen)
	seedEntry(t, h, "kept", "p", prompt.ToolImage)
	srv := NewServer(h.deps, h.cfg, "test", "127.0.0.1", 0)

	tests := []struct {
		path string
		form url.Values
	}{
		{"/history/clear", url.Values{"confirm": {"true"}}},
		{"/enhance", url.Values{"idea": {"a castle"}, "tool": {"Image"}}},
		{"/regenerate", url.Values{"idea": {"a castle"}, "tool": {"Image"}}},
	}
	for _, tt := range tests {
		req := postForm(tt.path, tt.form)
		req.Header.Set("Origin", "https://evil.example")
		req.Header.Set("Sec-Fetch-Site", "cross-site")

		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("cross-site POST %s status = %d, want 403", tt.path, rec.Code)
		}
	}

	if h.deps.History.Len() != 1 {
		t.Errorf("history len = %d, want 1 (untouched)", h.deps.History.Len())
	}
	if gen.calls != 0 {
		t.Errorf("backend calls = %d, want 0", gen.calls)
	}
}

func TestServer_AllowsSameOriginPosts(t *testing.T) {
	h := setupTest(t, &stubGenerator{})
	seedEntry(t, h, "gone", "p", prompt.ToolImage)
	srv := NewServer(h.deps, h.cfg, "test", "127.0.0.1", 0)

	req := postForm("/history/clear", url.Values{"confirm": {"true"}})
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code == http.StatusForbidden {
		t.Fatalf("same-origin POST rejected")
	}
	if h.deps.History.Len() != 0 {
		t.Errorf("history len = %d, want 0", h.deps.History.Len())
	}
}

// --- Helper functions ---

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		query    string
		name     string
		def      int
		expected int
	}{
		{"", "limit", 20, 20},
		{"limit=50", "limit", 20, 50},
		{"limit=bad", "limit", 20, 20},
		{"offset=10", "offset", 0, 10},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/?"+tt.query, nil)
		got := parseIntParam(req, tt.name, tt.def)
		if got != tt.expected {
			t.Errorf("parseIntParam(%q, %q, %d) = %d, want %d", tt.query, tt.name, tt.def, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("城堡城堡城堡", 2); got != "城堡…" {
		t.Errorf("truncate(unicode) = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(1760443200000); got != "2025-10-14 12:00" {
		t.Errorf("formatTime = %q", got)
	}
}
