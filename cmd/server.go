package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"songbook/config"
	"songbook/handlers"
	"songbook/middleware"
	"songbook/services"
	"songbook/websocket"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// StartWebServer runs the web server until SIGINT or SIGTERM
func StartWebServer(cfg *config.Config) {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	hub := websocket.NewHub()
	go hub.Run()

	watcher := services.NewWatcher(cfg.SongsDirectory, cfg.PollInterval, hub)
	go watcher.Start(ctx)

	if !services.DirExists(cfg.SongsDirectory) {
		log.Printf("WARNING: songs directory %q does not exist", cfg.SongsDirectory)
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: NewRouter(cfg, hub),
	}

	go func() {
		log.Printf("Songbook web server starting on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Graceful shutdown complete.")
}

// NewRouter builds the gin engine with all middleware and routes
func NewRouter(cfg *config.Config, hub websocket.Hub) *gin.Engine {
	catalog := services.NewCatalog()

	// Initialize handlers
	songHandler := handlers.NewSongHandler(catalog, cfg.SongsDirectory)
	staticHandler := handlers.NewStaticHandler(cfg.StaticDirectory, cfg.TemplatesDirectory)
	healthHandler := handlers.NewHealthHandler(handlers.ServiceName, cfg.SongsDirectory)
	eventHandler := handlers.NewEventHandler(hub)

	r := gin.New()

	// Apply middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Security())

	if tmpl := staticHandler.Template(); tmpl != nil {
		r.SetHTMLTemplate(tmpl)
	}

	setupRoutes(r, songHandler, staticHandler, healthHandler, eventHandler)
	return r
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, songHandler *handlers.SongHandler, staticHandler *handlers.StaticHandler, healthHandler *handlers.HealthHandler, eventHandler *handlers.EventHandler) {
	// Landing page
	r.GET("/", staticHandler.Index)
	r.HEAD("/", staticHandler.Index)

	// Files under the static root, also reachable without the prefix below
	r.GET("/static/*filepath", staticHandler.ServePrefixed)
	r.HEAD("/static/*filepath", staticHandler.ServePrefixed)

	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)
		apiGroup.GET("/songs", songHandler.ListSongs)
		apiGroup.HEAD("/songs", songHandler.ListSongs)

		// WebSocket endpoint for catalog change events
		apiGroup.GET("/ws/songs", eventHandler.Subscribe)
	}

	// Everything else is a static asset
	r.NoRoute(staticHandler.ServeStatic)
}
