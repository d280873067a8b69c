// Package canvas holds the drawn content: strokes in progress, sealed
// strokes and the glow hint renderers use to draw them. It is pure data;
// rasterization lives in the render package.
package canvas

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/ayusman/aircanvas/internal/geom"
)

// Stroke is one continuous drawn line from pinch-start to pinch-end: an
// ordered point sequence with a color and brush width.
type Stroke struct {
	ID     string
	Color  color.RGBA
	Width  float64
	Points []geom.Point
}

// newStroke creates a stroke starting at the given point.
func newStroke(start geom.Point, c color.RGBA, width float64) *Stroke {
	return &Stroke{
		ID:     uuid.New().String(),
		Color:  c,
		Width:  width,
		Points: []geom.Point{start},
	}
}

// Last returns the most recently appended point.
func (s *Stroke) Last() geom.Point {
	return s.Points[len(s.Points)-1]
}

// append adds a point to the stroke.
func (s *Stroke) append(p geom.Point) {
	s.Points = append(s.Points, p)
}
