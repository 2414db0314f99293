package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"songbook/types"
	"songbook/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHub captures broadcast events
type recordingHub struct {
	mu     sync.Mutex
	events []types.CatalogEvent
}

func (h *recordingHub) Run()                               {}
func (h *recordingHub) RegisterClient(*websocket.Client)   {}
func (h *recordingHub) UnregisterClient(*websocket.Client) {}
func (h *recordingHub) ClientCount() int                   { return 0 }

func (h *recordingHub) Broadcast(event types.CatalogEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *recordingHub) Events() []types.CatalogEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]types.CatalogEvent(nil), h.events...)
}

func TestWatcherPoll(t *testing.T) {
	dir := writeSongs(t, map[string]string{"One.txt": "1"})
	hub := &recordingHub{}
	w := NewWatcher(dir, time.Second, hub)

	assert.False(t, w.Poll(), "unchanged directory")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Two.txt"), []byte("2"), 0644))
	assert.True(t, w.Poll(), "added song")
	assert.False(t, w.Poll(), "change reported once")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte("img"), 0644))
	assert.False(t, w.Poll(), "non-song files are ignored")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "One.txt"), []byte("longer lyrics"), 0644))
	assert.True(t, w.Poll(), "edited song")

	require.NoError(t, os.Remove(filepath.Join(dir, "Two.txt")))
	assert.True(t, w.Poll(), "removed song")

	events := hub.Events()
	require.Len(t, events, 3)
	assert.Equal(t, types.EventCatalogChanged, events[0].Type)
	assert.Equal(t, 2, events[0].Count)
	assert.Equal(t, 1, events[2].Count)
}

func TestWatcherMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "songs")
	hub := &recordingHub{}
	w := NewWatcher(dir, time.Second, hub)

	assert.False(t, w.Poll())

	require.NoError(t, os.Mkdir(dir, 0755))
	assert.False(t, w.Poll(), "empty directory matches missing one")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "New.txt"), []byte("n"), 0644))
	assert.True(t, w.Poll())
}

func TestWatcherStart(t *testing.T) {
	dir := writeSongs(t, map[string]string{"One.txt": "1"})
	hub := &recordingHub{}
	w := NewWatcher(dir, 10*time.Millisecond, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Two.txt"), []byte("2"), 0644))
	assert.Eventually(t, func() bool {
		return len(hub.Events()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
