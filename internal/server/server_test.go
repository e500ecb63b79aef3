package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alkime/author/internal/config"
	"github.com/alkime/author/internal/roles"
	"github.com/alkime/author/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCreator implements session.Creator for testing.
type mockCreator struct {
	generateResult string
	reviseResult   string
}

func (m *mockCreator) Generate(_ context.Context, _ string) (string, error) {
	return m.generateResult, nil
}

func (m *mockCreator) Revise(_ context.Context, _, _ string) (string, error) {
	return m.reviseResult, nil
}

// mockEditor implements session.Editor for testing.
type mockEditor struct {
	review roles.Review
}

func (m *mockEditor) Review(_ context.Context, _ string) (roles.Review, error) {
	return m.review, nil
}

func testLogger() *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors during tests
	}))
}

func newTestServer(t *testing.T, creator *mockCreator, editor *mockEditor) (*server.Server, string) {
	t.Helper()

	outputDir := t.TempDir()
	cfg := config.Defaults()
	cfg.Env = "test"
	cfg.OutputDir = outputDir
	cfg.WebDir = t.TempDir()

	return server.New(&cfg, testLogger(), creator, editor), outputDir
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

func createSession(t *testing.T, srv *server.Server) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	id, ok := decode(t, w)["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	return id
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &mockCreator{}, &mockEditor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "author")
}

func TestSessionLifecycle(t *testing.T) {
	creator := &mockCreator{generateResult: "D1"}
	editor := &mockEditor{review: roles.Review{Suggestions: "- tighten opening", Rewritten: "D1-improved"}}
	srv, outputDir := newTestServer(t, creator, editor)

	id := createSession(t, srv)

	// Submit the idea: creator generates, editor reviews.
	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/idea",
		map[string]string{"idea": "a lighthouse keeper"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "creator_turn", resp["phase"])
	assert.Equal(t, "D1", resp["content"])
	assert.Equal(t, "- tighten opening", resp["suggestions"])
	assert.InDelta(t, 1, resp["iteration"], 0.001)

	// Accept the rewrite.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/action",
		map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code)

	resp = decode(t, w)
	assert.Equal(t, "D1-improved", resp["content"])
	assert.InDelta(t, 2, resp["iteration"], 0.001)

	// Finish: draft is saved and the session retired.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/action",
		map[string]string{"action": "finish"})
	require.Equal(t, http.StatusOK, w.Code)

	resp = decode(t, w)
	assert.Equal(t, "done", resp["phase"])
	savedPath, ok := resp["saved_path"].(string)
	require.True(t, ok, "finish should report the saved path")

	data, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, "D1-improved\n", string(data))

	// The retired session is gone.
	w = doJSON(t, srv, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// One file in the output dir.
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFinishWithEmptyContentSkipsSave(t *testing.T) {
	srv, outputDir := newTestServer(t, &mockCreator{}, &mockEditor{})

	id := createSession(t, srv)

	// Empty idea ends the session with empty content.
	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/idea", map[string]string{"idea": ""})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "done", resp["phase"])
	assert.NotContains(t, resp, "saved_path")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be created")

	// The session ended at idea time and must be retired from the store.
	w = doJSON(t, srv, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiffAction(t *testing.T) {
	creator := &mockCreator{generateResult: "old line\n"}
	editor := &mockEditor{review: roles.Review{Suggestions: "- s", Rewritten: "new line\n"}}
	srv, _ := newTestServer(t, creator, editor)

	id := createSession(t, srv)
	doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/idea", map[string]string{"idea": "x"})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/action",
		map[string]string{"action": "diff"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	diff, ok := resp["diff"].(string)
	require.True(t, ok)
	assert.Contains(t, diff, "-old line")
	assert.Contains(t, diff, "+new line")
	assert.Equal(t, "creator_turn", resp["phase"], "diff does not transition")
}

func TestPreviewRendersMarkdown(t *testing.T) {
	creator := &mockCreator{generateResult: "# Title\n\nSome *emphasis*."}
	editor := &mockEditor{review: roles.Review{Suggestions: "- s"}}
	srv, _ := newTestServer(t, creator, editor)

	id := createSession(t, srv)
	doJSON(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/idea", map[string]string{"idea": "x"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/preview", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Title</h1>")
	assert.Contains(t, w.Body.String(), "<em>emphasis</em>")
}

func TestUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t, &mockCreator{}, &mockEditor{})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/nope/idea", map[string]string{"idea": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, &mockCreator{}, &mockEditor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
