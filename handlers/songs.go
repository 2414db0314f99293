package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"songbook/services"

	"github.com/gin-gonic/gin"
)

// SongHandler handles the song listing endpoint
type SongHandler struct {
	catalog  services.Catalog
	songsDir string
}

// NewSongHandler creates a new song handler
func NewSongHandler(catalog services.Catalog, songsDir string) *SongHandler {
	return &SongHandler{
		catalog:  catalog,
		songsDir: songsDir,
	}
}

// ListSongs rescans the songs directory and returns every song as JSON
func (h *SongHandler) ListSongs(c *gin.Context) {
	songs, err := h.catalog.ListSongs(h.songsDir)
	if err != nil {
		if errors.Is(err, services.ErrDirectoryNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Directory '%s' not found.", h.songsDir),
			})
			return
		}

		log.Printf("Error scanning songs directory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to scan songs directory",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, songs)
}
