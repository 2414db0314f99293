package handlers

import (
	"net/http"
	"time"

	"songbook/services"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "songbook"
	Version     = "1.0.0"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	service  string
	songsDir string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, songsDir string) *HealthHandler {
	return &HealthHandler{
		service:  service,
		songsDir: songsDir,
	}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.service,
		"version":   Version,
		"timestamp": time.Now().Unix(),
	})
}

// APIStatus returns the status of the API
func (h *HealthHandler) APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":                "Songbook API is running",
		"songs_directory":        h.songsDir,
		"songs_directory_exists": services.DirExists(h.songsDir),
	})
}
