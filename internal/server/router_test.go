package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-script-studio/internal/app"
	"ap-script-studio/internal/config"
)

// newTestServer は資格情報なしの構成でルーター一式を立ち上げます。
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.LoadConfig()
	cfg.GeminiAPIKey = ""
	cfg.CredentialFile = filepath.Join(t.TempDir(), "missing-credential")

	srv := httptest.NewServer(NewRouter(cfg, app.BuildContainer(cfg)))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateSessionStartsAtKeyStepWithoutCredential(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		SessionID string `json:"sessionId"`
		State     struct {
			Step string `json:"step"`
		} `json:"state"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.SessionID)
	assert.Equal(t, "api-key-pending", body.State.Step)
}

func TestGetStateUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/sessions/no-such-session/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnlockWithoutCredentialIsPreconditionFailure(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/api/sessions/"+sessionID+"/key/unlock", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
}

func TestNavigateRejectsUnknownStepName(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/api/sessions/"+sessionID+"/navigate",
		"application/json", strings.NewReader(`{"step":"teleport"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNavigateBeyondReachedStepConflicts(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/api/sessions/"+sessionID+"/navigate",
		"application/json", strings.NewReader(`{"step":"assets"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownAssetKind(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/api/sessions/"+sessionID+"/assets/hologram", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOutputsMissingBeforeGeneration(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	for _, path := range []string{"/assets/cover", "/assets/audio.wav", "/export/script.txt", "/export/slides.md", "/export/document.doc"} {
		resp, err := http.Get(srv.URL + "/api/sessions/" + sessionID + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "path %s", path)
	}
}

func TestHistoryEmptyOnFreshSession(t *testing.T) {
	srv := newTestServer(t)
	sessionID := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/api/sessions/" + sessionID + "/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Empty(t, entries)
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.SessionID
}
