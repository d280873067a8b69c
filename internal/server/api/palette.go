package api

import (
	"fmt"
	"net/http"

	"github.com/ayusman/aircanvas/internal/palette"
)

// PaletteHandler handles HTTP requests for the color picker arc.
type PaletteHandler struct {
	palette *palette.Palette
}

// NewPaletteHandler creates a new PaletteHandler with the given palette.
func NewPaletteHandler(p *palette.Palette) *PaletteHandler {
	return &PaletteHandler{palette: p}
}

// Response types

type paletteEntryResponse struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Clear bool    `json:"clear,omitempty"`
}

type paletteResponse struct {
	CenterX     float64                `json:"center_x"`
	CenterY     float64                `json:"center_y"`
	InnerRadius float64                `json:"inner_radius"`
	OuterRadius float64                `json:"outer_radius"`
	Entries     []paletteEntryResponse `json:"entries"`
}

// ServeHTTP handles GET /api/palette and returns the arc layout.
func (h *PaletteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := paletteResponse{
		CenterX:     h.palette.Center.X,
		CenterY:     h.palette.Center.Y,
		InnerRadius: h.palette.InnerRadius,
		OuterRadius: h.palette.OuterRadius,
		Entries:     make([]paletteEntryResponse, 0, len(h.palette.Entries)),
	}

	for _, e := range h.palette.Entries {
		response.Entries = append(response.Entries, paletteEntryResponse{
			Name:  e.Name,
			Color: fmt.Sprintf("#%02X%02X%02X", e.Color.R, e.Color.G, e.Color.B),
			From:  e.StartDeg,
			To:    e.EndDeg,
			Clear: e.Clear,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
