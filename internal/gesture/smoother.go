package gesture

import (
	"errors"

	"github.com/ayusman/aircanvas/internal/geom"
)

// ErrBadAlpha is returned when the smoothing factor is outside (0, 1].
var ErrBadAlpha = errors.New("smoothing alpha must be in (0, 1]")

// Cursor is the smoothed draw cursor with its instantaneous velocity in
// normalized units per second.
type Cursor struct {
	Position geom.Point `json:"position"`
	Velocity geom.Point `json:"velocity"`
}

// Smoother low-pass-filters the raw fingertip position into a stable draw
// cursor using an exponential moving average. Alpha close to 1 favors
// responsiveness, close to 0 favors stability.
type Smoother struct {
	alpha  float64
	cursor Cursor
	seeded bool
}

// NewSmoother creates a Smoother with the given smoothing factor.
func NewSmoother(alpha float64) (*Smoother, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, ErrBadAlpha
	}
	return &Smoother{alpha: alpha}, nil
}

// Update advances the smoothed cursor toward the raw position. The first
// observation after a reset seeds the cursor directly, so a hand that
// reappears on the other side of the frame does not drag a visible
// snap-then-drift tail behind it. dt is the frame interval in seconds.
func (s *Smoother) Update(raw geom.Point, dt float64) Cursor {
	if !s.seeded {
		s.cursor = Cursor{Position: raw}
		s.seeded = true
		return s.cursor
	}

	prev := s.cursor.Position
	pos := geom.Lerp(prev, raw, s.alpha)

	var vel geom.Point
	if dt > 0 {
		vel = pos.Sub(prev).Scale(1 / dt)
	}

	s.cursor = Cursor{Position: pos, Velocity: vel}
	return s.cursor
}

// Cursor returns the current smoothed cursor.
func (s *Smoother) Cursor() Cursor {
	return s.cursor
}

// Reset clears the seed so the next Update adopts the raw position
// directly. Called when the hand leaves the frame.
func (s *Smoother) Reset() {
	s.seeded = false
	s.cursor.Velocity = geom.Point{}
}

// SetAlpha replaces the smoothing factor at runtime.
func (s *Smoother) SetAlpha(alpha float64) error {
	if alpha <= 0 || alpha > 1 {
		return ErrBadAlpha
	}
	s.alpha = alpha
	return nil
}
