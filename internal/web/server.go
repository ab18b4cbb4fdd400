package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/config"
	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
	"github.com/rinchamnan16/younan24/internal/web/handlers"
	"github.com/rinchamnan16/younan24/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	logger     zerolog.Logger

	blobs    *media.BlobStore
	sessions *editor.Manager
	jobs     *handlers.VideoJobManager

	provider generate.Provider
	video    generate.VideoGenerator
}

// NewServer creates a new web server. video may be nil when the configured
// provider cannot generate videos.
func NewServer(cfg *config.Config, port int, host string, provider generate.Provider, video generate.VideoGenerator, logger zerolog.Logger) *Server {
	r := chi.NewRouter()

	blobs := media.NewBlobStore()

	s := &Server{
		config:   cfg,
		router:   r,
		logger:   logger,
		blobs:    blobs,
		sessions: editor.NewManager(blobs),
		jobs:     handlers.NewVideoJobManager(),
		provider: provider,
		video:    video,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	// Set up routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // Long timeout for SSE streams of video jobs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting web server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down web server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
