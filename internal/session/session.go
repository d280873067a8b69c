// Package session implements the per-frame draw state machine that turns
// pinch gestures and the smoothed cursor into canvas mutations and palette
// selections.
package session

import (
	"fmt"
	"sync"

	"github.com/ayusman/aircanvas/internal/canvas"
	"github.com/ayusman/aircanvas/internal/geom"
	"github.com/ayusman/aircanvas/internal/gesture"
	"github.com/ayusman/aircanvas/internal/palette"
)

// State is the draw session state.
type State int

const (
	// StateIdle means no pinch is held.
	StateIdle State = iota
	// StateDrawing means a pinch is held outside the palette and a stroke
	// is being extended.
	StateDrawing
	// StatePicking means a pinch is interacting with the palette.
	StatePicking
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateDrawing:
		return "drawing"
	case StatePicking:
		return "picking"
	default:
		return "idle"
	}
}

// Config holds the session calibration. All distances are in normalized
// units.
type Config struct {
	// PinchEnter and PinchExit are the hysteresis thresholds on the
	// thumb-to-index distance. PinchEnter must be less than PinchExit.
	PinchEnter float64
	PinchExit  float64

	// SmoothingAlpha is the cursor EMA factor in (0,1].
	SmoothingAlpha float64

	// MinSegment is the minimum cursor travel before another point is
	// appended to the active stroke. Keeps a stationary finger from
	// growing the stroke with zero-length segments.
	MinSegment float64

	// BrushWidth is the stroke width recorded on new strokes.
	BrushWidth float64

	// SelectOnRelease makes palette selection require a full
	// pinch-and-release over the same swatch instead of firing on
	// pinch-down.
	SelectOnRelease bool
}

// DefaultConfig returns the calibration the app ships with. The threshold
// pair brackets the original single 40px-on-1280 threshold.
func DefaultConfig() Config {
	return Config{
		PinchEnter:     0.04,
		PinchExit:      0.06,
		SmoothingAlpha: 0.6,
		MinSegment:     0.004,
		BrushWidth:     8,
	}
}

// FrameInput is one frame of landmark-source output plus the frame
// interval in seconds.
type FrameInput struct {
	Hand gesture.HandFrame
	DT   float64
}

// Snapshot describes the session after a step, for renderers and the live
// WebSocket feed.
type Snapshot struct {
	State        State          `json:"-"`
	StateName    string         `json:"state"`
	Pinch        string         `json:"pinch"`
	HandPresent  bool           `json:"hand_present"`
	Cursor       gesture.Cursor `json:"cursor"`
	Hover        string         `json:"hover,omitempty"`
	Selected     string         `json:"selected"`
	ActivePoints int            `json:"active_points"`
	StrokeCount  int            `json:"stroke_count"`
}

// Session owns the mutable per-session state: classifier, smoother,
// selected color and the link to the canvas buffer. One goroutine steps it
// once per frame; calibration updates may arrive from the HTTP surface.
type Session struct {
	mu         sync.Mutex
	cfg        Config
	classifier *gesture.Classifier
	smoother   *gesture.Smoother
	palette    *palette.Palette
	buffer     *canvas.Buffer

	state        State
	selected     palette.Entry
	pending      *palette.Entry
	lastAppended geom.Point
	hasAppended  bool
}

// New creates a Session over the given palette and buffer. The initially
// selected color is CYAN when present, otherwise the first non-clear
// entry.
func New(cfg Config, pal *palette.Palette, buf *canvas.Buffer) (*Session, error) {
	classifier, err := gesture.NewClassifier(cfg.PinchEnter, cfg.PinchExit)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	smoother, err := gesture.NewSmoother(cfg.SmoothingAlpha)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	s := &Session{
		cfg:        cfg,
		classifier: classifier,
		smoother:   smoother,
		palette:    pal,
		buffer:     buf,
	}

	if e, ok := pal.EntryByName("CYAN"); ok {
		s.selected = e
	} else {
		for _, e := range pal.Entries {
			if !e.Clear {
				s.selected = e
				break
			}
		}
	}

	return s, nil
}

// Step advances the session by one frame. Transitions, in order: classify
// the pinch, handle pinch-down (palette select or stroke begin), extend or
// seal the active stroke, handle pinch release.
func (s *Session) Step(in FrameInput) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevPinch := s.classifier.State()

	if !in.Hand.Present {
		// Hand loss is treated like a pinch release: the stroke is sealed,
		// not thrown away.
		s.classifier.Update(0, false)
		if s.state == StateDrawing {
			s.buffer.Seal()
		}
		s.state = StateIdle
		s.pending = nil
		s.smoother.Reset()
		return s.snapshot(false, "")
	}

	cursor := s.smoother.Update(in.Hand.IndexTip, in.DT)
	pinch := s.classifier.Update(in.Hand.PinchDistance(), true)
	hover, overPalette := s.palette.HitTest(cursor.Position)

	switch {
	case prevPinch == gesture.PinchIdle && pinch == gesture.Pinched:
		if overPalette {
			s.state = StatePicking
			if s.cfg.SelectOnRelease {
				e := hover
				s.pending = &e
			} else {
				// Selection is instantaneous; PICKING lasts exactly this
				// frame.
				s.applySelection(hover)
				s.state = StateIdle
			}
		} else {
			s.state = StateDrawing
			s.buffer.Begin(cursor.Position, s.selected.Color, s.cfg.BrushWidth)
			s.markAppended(cursor.Position)
		}

	case pinch == gesture.Pinched && s.state == StateDrawing:
		if overPalette {
			// Pinching over the palette selects, it never draws.
			s.buffer.Seal()
			s.state = StateIdle
		} else if s.movedEnough(cursor.Position) {
			s.buffer.Extend(cursor.Position)
			s.markAppended(cursor.Position)
		}

	case prevPinch == gesture.Pinched && pinch == gesture.PinchIdle:
		if s.state == StateDrawing {
			s.buffer.Seal()
		}
		if s.state == StatePicking && s.pending != nil {
			// Release-to-confirm: apply only if the release still lands on
			// the swatch the pinch started on.
			if overPalette && hover.Name == s.pending.Name {
				s.applySelection(hover)
			}
			s.pending = nil
		}
		s.state = StateIdle
	}

	hoverName := ""
	if overPalette {
		hoverName = hover.Name
	}
	return s.snapshot(true, hoverName)
}

// applySelection changes the drawing color, or clears the canvas for the
// reserved CLEAR entry. Caller holds the lock.
func (s *Session) applySelection(e palette.Entry) {
	if e.Clear {
		s.buffer.Clear()
		return
	}
	s.selected = e
}

func (s *Session) markAppended(p geom.Point) {
	s.lastAppended = p
	s.hasAppended = true
}

func (s *Session) movedEnough(p geom.Point) bool {
	if !s.hasAppended {
		return true
	}
	return geom.Dist(p, s.lastAppended) > s.cfg.MinSegment
}

func (s *Session) snapshot(present bool, hover string) Snapshot {
	return Snapshot{
		State:        s.state,
		StateName:    s.state.String(),
		Pinch:        s.classifier.State().String(),
		HandPresent:  present,
		Cursor:       s.smoother.Cursor(),
		Hover:        hover,
		Selected:     s.selected.Name,
		ActivePoints: s.buffer.ActiveLen(),
		StrokeCount:  len(s.buffer.Strokes()),
	}
}

// SelectedEntry returns the current drawing color entry.
func (s *Session) SelectedEntry() palette.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Config returns the current calibration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig applies a new calibration to the running session. The pinch
// state and any active stroke are preserved.
func (s *Session) SetConfig(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.classifier.SetThresholds(cfg.PinchEnter, cfg.PinchExit); err != nil {
		return err
	}
	if err := s.smoother.SetAlpha(cfg.SmoothingAlpha); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}
