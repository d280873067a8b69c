// Package api provides HTTP API handlers for the AirCanvas drawing toy.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/aircanvas/internal/session"
	"github.com/ayusman/aircanvas/internal/store"
)

// SettingsHandler handles HTTP requests for the drawing calibration.
type SettingsHandler struct {
	store *store.Store
	apply func(session.Config) error
}

// NewSettingsHandler creates a new SettingsHandler. The apply callback pushes
// a saved calibration into the running session and may be nil.
func NewSettingsHandler(s *store.Store, apply func(session.Config) error) *SettingsHandler {
	return &SettingsHandler{store: s, apply: apply}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type settingsResponse struct {
	PinchEnter      float64 `json:"pinch_enter"`
	PinchExit       float64 `json:"pinch_exit"`
	SmoothingAlpha  float64 `json:"smoothing_alpha"`
	MinSegment      float64 `json:"min_segment"`
	BrushWidth      float64 `json:"brush_width"`
	SelectOnRelease bool    `json:"select_on_release"`
}

type updateSettingsRequest struct {
	PinchEnter      *float64 `json:"pinch_enter"`
	PinchExit       *float64 `json:"pinch_exit"`
	SmoothingAlpha  *float64 `json:"smoothing_alpha"`
	MinSegment      *float64 `json:"min_segment"`
	BrushWidth      *float64 `json:"brush_width"`
	SelectOnRelease *bool    `json:"select_on_release"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a session.Config to a settingsResponse.
func toResponse(cfg session.Config) settingsResponse {
	return settingsResponse{
		PinchEnter:      cfg.PinchEnter,
		PinchExit:       cfg.PinchExit,
		SmoothingAlpha:  cfg.SmoothingAlpha,
		MinSegment:      cfg.MinSegment,
		BrushWidth:      cfg.BrushWidth,
		SelectOnRelease: cfg.SelectOnRelease,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// get handles GET /api/settings and returns the stored calibration.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Settings().LoadCalibration()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(cfg))
}

// update handles PUT /api/settings. Fields present in the request overwrite
// the stored calibration; the result is validated, saved, and pushed into
// the running session.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Settings().LoadCalibration()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.PinchEnter != nil {
		cfg.PinchEnter = *req.PinchEnter
	}
	if req.PinchExit != nil {
		cfg.PinchExit = *req.PinchExit
	}
	if req.SmoothingAlpha != nil {
		cfg.SmoothingAlpha = *req.SmoothingAlpha
	}
	if req.MinSegment != nil {
		cfg.MinSegment = *req.MinSegment
	}
	if req.BrushWidth != nil {
		cfg.BrushWidth = *req.BrushWidth
	}
	if req.SelectOnRelease != nil {
		cfg.SelectOnRelease = *req.SelectOnRelease
	}

	// Validate the merged calibration before anything is persisted.
	if cfg.PinchEnter <= 0 || cfg.PinchExit <= cfg.PinchEnter {
		writeError(w, http.StatusBadRequest, "pinch_exit must be greater than pinch_enter, both positive")
		return
	}
	if cfg.SmoothingAlpha <= 0 || cfg.SmoothingAlpha > 1 {
		writeError(w, http.StatusBadRequest, "smoothing_alpha must be in (0, 1]")
		return
	}
	if cfg.MinSegment < 0 {
		writeError(w, http.StatusBadRequest, "min_segment must not be negative")
		return
	}
	if cfg.BrushWidth <= 0 {
		writeError(w, http.StatusBadRequest, "brush_width must be positive")
		return
	}

	if err := h.store.Settings().SaveCalibration(cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	if h.apply != nil {
		if err := h.apply(cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to apply settings")
			return
		}
	}

	writeJSON(w, http.StatusOK, toResponse(cfg))
}
