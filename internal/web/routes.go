package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rinchamnan16/younan24/internal/web/handlers"
	"github.com/rinchamnan16/younan24/internal/web/static"
)

func (s *Server) setupRoutes() {
	// Create handlers
	sessionsHandler := handlers.NewSessionsHandler(s.sessions)
	generateHandler := handlers.NewGenerateHandler(s.sessions, s.blobs, s.provider, s.logger)
	mergeHandler := handlers.NewMergeHandler(s.blobs, s.provider, s.logger)
	videoHandler := handlers.NewVideoHandler(s.sessions, s.blobs, s.video, s.jobs, s.config.Generation.VideoDeadline(), s.logger)
	exportHandler := handlers.NewExportHandler(s.sessions, s.blobs, s.config.Studio.Name)
	blobsHandler := handlers.NewBlobsHandler(s.blobs)
	newsHandler := handlers.NewNewsHandler()
	usersHandler := handlers.NewUsersHandler()
	settingsHandler := handlers.NewSettingsHandler(s.config.Studio)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Preset catalogs
		r.Get("/catalog", handlers.Catalog)

		// Editor sessions
		r.Post("/sessions", sessionsHandler.Create)
		r.Get("/sessions/{id}", sessionsHandler.Get)
		r.Delete("/sessions/{id}", sessionsHandler.Delete)
		r.Post("/sessions/{id}/photo", sessionsHandler.UploadPhoto)
		r.Put("/sessions/{id}/background", sessionsHandler.SetBackground)
		r.Put("/sessions/{id}/uniform", sessionsHandler.SetUniform)
		r.Put("/sessions/{id}/state-uniform", sessionsHandler.SetStateUniform)
		r.Put("/sessions/{id}/prompt", sessionsHandler.SetPrompt)
		r.Put("/sessions/{id}/adjustments", sessionsHandler.SetAdjustments)
		r.Post("/sessions/{id}/adjustments/auto", sessionsHandler.AutoAdjust)
		r.Post("/sessions/{id}/adjustments/reset", sessionsHandler.ResetAdjustments)

		// Image generation
		r.Post("/sessions/{id}/generate", generateHandler.Generate)
		r.Post("/sessions/{id}/unblur", generateHandler.Unblur)
		r.Post("/sessions/{id}/export", exportHandler.Export)

		// Merge studio
		r.Post("/merge", mergeHandler.Merge)

		// Video studio (long-running operations)
		r.Post("/sessions/{id}/video", videoHandler.Start)
		r.Get("/video-jobs/{jobId}", videoHandler.Status)
		r.Get("/video-jobs/{jobId}/events", videoHandler.Events)
		r.Delete("/video-jobs/{jobId}", videoHandler.Cancel)

		// Stored blobs
		r.Get("/blobs/{id}", blobsHandler.Get)
		r.Get("/blobs/{id}/preview", blobsHandler.Preview)

		// News feed (mock)
		r.Get("/news", newsHandler.List)
		r.Post("/news", newsHandler.Create)
		r.Post("/news/{id}/like", newsHandler.Like)
		r.Post("/news/{id}/comments", newsHandler.Comment)
		r.Delete("/news/{id}", newsHandler.Delete)

		// User sheet (mock)
		r.Get("/users", usersHandler.List)
		r.Post("/users", usersHandler.Create)
		r.Put("/users/{id}", usersHandler.Update)
		r.Delete("/users/{id}", usersHandler.Delete)

		// Studio settings
		r.Get("/settings", settingsHandler.Get)
		r.Put("/settings", settingsHandler.Update)
	})

	// Serve static files for frontend (SPA)
	s.router.Get("/*", s.serveSPA)
}

// serveSPA serves the single-page application
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	// Check if we have embedded frontend assets
	if static.HasDist() {
		// Try to serve the requested file
		fs := static.GetFileSystem()
		path := r.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		// Try to open the file
		f, err := fs.Open(path)
		if err == nil {
			defer f.Close()

			// Get file info for content type detection
			stat, err := f.Stat()
			if err == nil && !stat.IsDir() {
				// Set content type based on extension
				contentType := "application/octet-stream"
				switch {
				case strings.HasSuffix(path, ".html"):
					contentType = "text/html; charset=utf-8"
				case strings.HasSuffix(path, ".css"):
					contentType = "text/css; charset=utf-8"
				case strings.HasSuffix(path, ".js"):
					contentType = "application/javascript; charset=utf-8"
				case strings.HasSuffix(path, ".json"):
					contentType = "application/json"
				case strings.HasSuffix(path, ".svg"):
					contentType = "image/svg+xml"
				case strings.HasSuffix(path, ".png"):
					contentType = "image/png"
				case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
					contentType = "image/jpeg"
				case strings.HasSuffix(path, ".ico"):
					contentType = "image/x-icon"
				case strings.HasSuffix(path, ".woff2"):
					contentType = "font/woff2"
				case strings.HasSuffix(path, ".woff"):
					contentType = "font/woff"
				}

				w.Header().Set("Content-Type", contentType)

				// Add cache headers for static assets
				if strings.HasPrefix(path, "/assets/") {
					w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
				}

				w.WriteHeader(http.StatusOK)
				io.Copy(w, f)
				return
			}
		}

		// For SPA routing, serve index.html for non-asset paths
		if !strings.HasPrefix(path, "/assets/") {
			indexFile, err := fs.Open("/index.html")
			if err == nil {
				defer indexFile.Close()
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				io.Copy(w, indexFile)
				return
			}
		}
	}

	// Fallback: return placeholder page if no frontend is built
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>YouNan Studio</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #f0a500; }
        p { color: #aaa; }
        a { color: #f0a500; }
        code { background: #2a2a3e; padding: 2px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>YouNan Studio</h1>
        <p>Frontend is not built yet. Run <code>make build-web</code> to build the frontend.</p>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
