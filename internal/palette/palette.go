// Package palette implements the arc-shaped color picker shown at the top
// of the frame. Swatches occupy angular sectors of a ring band around a
// fixed anchor; hit-testing maps a cursor position to at most one swatch.
package palette

import (
	"image/color"
	"math"

	"github.com/ayusman/aircanvas/internal/geom"
)

// Entry is a single swatch in the palette. A Clear entry wipes the canvas
// instead of changing the drawing color.
type Entry struct {
	Name     string     `json:"name"`
	Color    color.RGBA `json:"color"`
	StartDeg float64    `json:"start_deg"`
	EndDeg   float64    `json:"end_deg"`
	Clear    bool       `json:"clear,omitempty"`
}

// Palette is the static picker configuration: an anchor point, a radius
// band and an ordered list of entries. Entries are non-overlapping by
// construction; if a configuration file overlaps them anyway, the first
// matching entry in order wins.
type Palette struct {
	Center      geom.Point
	InnerRadius float64
	OuterRadius float64
	Entries     []Entry
}

// Default geometry: the arc hangs from the top-center of the frame.
const (
	defaultInnerRadius = 0.12
	defaultOuterRadius = 0.22
)

// Default returns the built-in eight-swatch palette spanning [0°,180°]
// below the top-center anchor, ending with the reserved CLEAR swatch.
func Default() *Palette {
	colors := []struct {
		name  string
		c     color.RGBA
		clear bool
	}{
		{"RED", color.RGBA{R: 255, A: 255}, false},
		{"ORANGE", color.RGBA{R: 255, G: 165, A: 255}, false},
		{"YELLOW", color.RGBA{R: 255, G: 255, A: 255}, false},
		{"GREEN", color.RGBA{G: 255, A: 255}, false},
		{"CYAN", color.RGBA{G: 255, B: 255, A: 255}, false},
		{"PURPLE", color.RGBA{R: 255, B: 255, A: 255}, false},
		{"WHITE", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"CLEAR", color.RGBA{A: 255}, true},
	}

	sector := 180.0 / float64(len(colors))
	entries := make([]Entry, len(colors))
	for i, c := range colors {
		entries[i] = Entry{
			Name:     c.name,
			Color:    c.c,
			StartDeg: float64(i) * sector,
			EndDeg:   float64(i+1) * sector,
			Clear:    c.clear,
		}
	}

	return &Palette{
		Center:      geom.Point{X: 0.5, Y: 0},
		InnerRadius: defaultInnerRadius,
		OuterRadius: defaultOuterRadius,
		Entries:     entries,
	}
}

// HitTest returns the entry whose sector contains the cursor, or false if
// the cursor is outside the radius band or no sector covers its angle.
func (p *Palette) HitTest(cursor geom.Point) (Entry, bool) {
	radius := geom.Dist(cursor, p.Center)
	if radius < p.InnerRadius || radius > p.OuterRadius {
		return Entry{}, false
	}

	angle := angleDeg(p.Center, cursor)
	for _, e := range p.Entries {
		if angle >= e.StartDeg && angle <= e.EndDeg {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether the cursor falls on any swatch. Used by the
// session to treat the palette region as a no-draw zone.
func (p *Palette) Contains(cursor geom.Point) bool {
	_, ok := p.HitTest(cursor)
	return ok
}

// EntryByName returns the named entry, or false if absent.
func (p *Palette) EntryByName(name string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// angleDeg returns the angle of p relative to center in degrees, wrapped
// to [0,360). With Y increasing downward, the band below the anchor spans
// (0°,180°).
func angleDeg(center, p geom.Point) float64 {
	d := p.Sub(center)
	angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}
