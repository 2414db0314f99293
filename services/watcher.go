package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"songbook/types"
	"songbook/websocket"
)

// Watcher interface defines methods for detecting songs directory changes
type Watcher interface {
	Start(ctx context.Context)
	Poll() bool
}

// watcher polls the songs directory and notifies websocket clients when
// its contents change. It never keeps song data.
type watcher struct {
	dir         string
	interval    time.Duration
	hub         websocket.Hub
	mu          sync.Mutex
	fingerprint string
}

// NewWatcher creates a watcher seeded with the directory's current state
func NewWatcher(dir string, interval time.Duration, hub websocket.Hub) Watcher {
	fp, _ := fingerprint(dir)
	return &watcher{
		dir:         dir,
		interval:    interval,
		hub:         hub,
		fingerprint: fp,
	}
}

// fingerprint summarises the song files in dir by name, size and mtime.
// A missing directory has an empty fingerprint.
func fingerprint(dir string) (string, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0
	}

	var b strings.Builder
	count := 0
	for _, entry := range entries {
		if !IsSongFile(entry.Name()) {
			continue
		}
		count++
		b.WriteString(entry.Name())
		if info, err := entry.Info(); err == nil {
			fmt.Fprintf(&b, "|%d|%d", info.Size(), info.ModTime().UnixNano())
		}
		b.WriteByte('\n')
	}
	return b.String(), count
}

// Start polls until ctx is cancelled
func (w *watcher) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Printf("Catalog watcher disabled (poll interval %s)", w.interval)
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll checks the directory once and broadcasts an event if it changed
func (w *watcher) Poll() bool {
	fp, count := fingerprint(w.dir)

	w.mu.Lock()
	changed := fp != w.fingerprint
	w.fingerprint = fp
	w.mu.Unlock()

	if !changed {
		return false
	}

	log.Printf("Songs directory %s changed (%d song files)", w.dir, count)
	if w.hub != nil {
		w.hub.Broadcast(types.CatalogEvent{
			Type:      types.EventCatalogChanged,
			Count:     count,
			Timestamp: time.Now(),
		})
	}
	return true
}
