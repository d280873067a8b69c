// Package gesture turns raw hand-landmark input into discrete drawing
// intent: a pinch/no-pinch signal and a smoothed draw cursor.
package gesture

import (
	"errors"

	"github.com/ayusman/aircanvas/internal/geom"
)

// PinchState represents the discrete pinch signal.
type PinchState int

const (
	// PinchIdle means thumb and index tip are apart.
	PinchIdle PinchState = iota
	// Pinched means thumb and index tip are held together.
	Pinched
)

// String returns a human-readable name for the state.
func (s PinchState) String() string {
	if s == Pinched {
		return "pinched"
	}
	return "idle"
}

// ErrBadThresholds is returned when the enter threshold is not strictly
// below the exit threshold.
var ErrBadThresholds = errors.New("pinch enter threshold must be less than exit threshold")

// Classify computes the next pinch state from the thumb-to-index distance
// using hysteresis. A single threshold flickers under sensor noise near the
// boundary; the enter/exit pair keeps the state stable while the distance
// sits between them.
func Classify(distance float64, prev PinchState, enter, exit float64) PinchState {
	switch prev {
	case PinchIdle:
		if distance <= enter {
			return Pinched
		}
	case Pinched:
		if distance >= exit {
			return PinchIdle
		}
	}
	return prev
}

// Classifier tracks the pinch state across frames.
type Classifier struct {
	enter float64
	exit  float64
	state PinchState
}

// NewClassifier creates a Classifier with the given thresholds in
// normalized units. enter must be strictly less than exit.
func NewClassifier(enter, exit float64) (*Classifier, error) {
	if enter >= exit {
		return nil, ErrBadThresholds
	}
	return &Classifier{enter: enter, exit: exit}, nil
}

// Update advances the classifier with the distance observed this frame.
// A frame with no hand present forces the state to PinchIdle regardless
// of the previous state.
func (c *Classifier) Update(distance float64, present bool) PinchState {
	if !present {
		c.state = PinchIdle
		return c.state
	}
	c.state = Classify(distance, c.state, c.enter, c.exit)
	return c.state
}

// State returns the current pinch state.
func (c *Classifier) State() PinchState {
	return c.state
}

// Reset returns the classifier to PinchIdle.
func (c *Classifier) Reset() {
	c.state = PinchIdle
}

// SetThresholds replaces the hysteresis thresholds, keeping the current
// state. Used when calibration changes at runtime.
func (c *Classifier) SetThresholds(enter, exit float64) error {
	if enter >= exit {
		return ErrBadThresholds
	}
	c.enter = enter
	c.exit = exit
	return nil
}

// HandFrame is the per-frame output of the landmark source reduced to what
// the drawing core needs. Coordinates are normalized.
type HandFrame struct {
	IndexTip geom.Point
	ThumbTip geom.Point
	Present  bool
}

// PinchDistance returns the distance between thumb tip and index tip.
func (f HandFrame) PinchDistance() float64 {
	return geom.Dist(f.IndexTip, f.ThumbTip)
}
