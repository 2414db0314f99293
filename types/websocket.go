package types

import "time"

// Catalog event types
const (
	EventCatalogChanged = "catalog_changed"
)

// CatalogEvent represents a WebSocket notification about the songs directory
type CatalogEvent struct {
	Type      string    `json:"type"`      // "catalog_changed"
	Count     int       `json:"count"`     // number of .txt entries after the change
	Timestamp time.Time `json:"timestamp"` // when the change was detected
}
