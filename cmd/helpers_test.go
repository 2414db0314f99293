package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"songbook/config"
	"songbook/services"
	"songbook/websocket"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// TestHelper provides utilities for testing the songbook server
type TestHelper struct {
	Server      *httptest.Server
	TestDataDir string
	OriginalDir string
	Config      *config.Config
	Hub         websocket.Hub
	Watcher     services.Watcher
}

// NewTestHelper starts a server inside a temporary working directory so the
// default relative songs/static/templates paths resolve against it
func NewTestHelper(t *testing.T) *TestHelper {
	testDir := t.TempDir()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(testDir))
	// Restore even when a require below stops the test early
	t.Cleanup(func() { os.Chdir(originalDir) })

	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.GinMode = gin.TestMode
	require.NoError(t, os.Mkdir(cfg.SongsDirectory, 0755))

	hub := websocket.NewHub()
	go hub.Run()

	helper := &TestHelper{
		TestDataDir: testDir,
		OriginalDir: originalDir,
		Config:      cfg,
		Hub:         hub,
		Watcher:     services.NewWatcher(cfg.SongsDirectory, cfg.PollInterval, hub),
	}
	helper.Server = httptest.NewServer(NewRouter(cfg, hub))
	t.Cleanup(helper.Server.Close)

	return helper
}

// Cleanup stops the server and restores the working directory. The same
// steps are registered with t.Cleanup, so calling it is optional.
func (h *TestHelper) Cleanup(t *testing.T) {
	if h.Server != nil {
		h.Server.Close()
	}
	require.NoError(t, os.Chdir(h.OriginalDir))
}

// WriteFile creates a file relative to the test directory
func (h *TestHelper) WriteFile(t *testing.T, name string, content []byte) {
	path := filepath.Join(h.TestDataDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

// WriteSong creates a song file in the songs directory
func (h *TestHelper) WriteSong(t *testing.T, name, lyrics string) {
	h.WriteFile(t, filepath.Join(h.Config.SongsDirectory, name), []byte(lyrics))
}

// Get performs a GET request and returns the response with its body read
func (h *TestHelper) Get(t *testing.T, path string) (*http.Response, string) {
	resp, err := http.Get(h.Server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// GetJSON performs a GET request and decodes the JSON response
func (h *TestHelper) GetJSON(t *testing.T, path string, target interface{}) *http.Response {
	resp, body := h.Get(t, path)
	if target != nil {
		require.NoError(t, json.Unmarshal([]byte(body), target), "body: %s", body)
	}
	return resp
}

// ConnectWebSocket dials a websocket endpoint and waits for the hub to register it
func (h *TestHelper) ConnectWebSocket(t *testing.T, path string) *gorillaws.Conn {
	wsURL := "ws" + strings.TrimPrefix(h.Server.URL, "http") + path

	before := h.Hub.ClientCount()
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return h.Hub.ClientCount() > before
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}
