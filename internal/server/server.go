// Package server provides the HTTP server for the AirCanvas drawing toy.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/aircanvas/internal/palette"
	"github.com/ayusman/aircanvas/internal/server/api"
	"github.com/ayusman/aircanvas/internal/session"
	"github.com/ayusman/aircanvas/internal/store"
)

// FrameSource supplies the most recently composed video frame as JPEG.
type FrameSource interface {
	LatestJPEG() ([]byte, bool)
}

// SessionSource exposes the live drawing session state.
type SessionSource interface {
	Snapshot() session.Snapshot
	ApplyCalibration(cfg session.Config) error
	ClearCanvas()
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Frames    FrameSource
	Session   SessionSource
	Palette   *palette.Palette
}

// Server represents the HTTP server for the AirCanvas application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register settings API handler if Store is configured
	if s.config.Store != nil {
		var apply func(session.Config) error
		if s.config.Session != nil {
			apply = s.config.Session.ApplyCalibration
		}
		settingsHandler := api.NewSettingsHandler(s.config.Store, apply)
		s.mux.Handle("/api/settings", settingsHandler)
	}

	// Register palette endpoint if Palette is configured
	if s.config.Palette != nil {
		paletteHandler := api.NewPaletteHandler(s.config.Palette)
		s.mux.Handle("/api/palette", paletteHandler)
	}

	// Register composed video stream if Frames is configured
	if s.config.Frames != nil {
		streamHandler := NewStreamHandler(s.config.Frames)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register session WebSocket feed if Session is configured
	if s.config.Session != nil {
		sessionHandler := NewSessionHandler(s.config.Session)
		s.mux.Handle("/api/session", sessionHandler)
		s.mux.HandleFunc("/api/canvas/clear", s.handleClear)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleClear handles POST requests to /api/canvas/clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.config.Session.ClearCanvas()
	w.WriteHeader(http.StatusNoContent)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
