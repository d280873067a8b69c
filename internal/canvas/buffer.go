package canvas

import (
	"image/color"
	"sync"

	"github.com/ayusman/aircanvas/internal/geom"
)

// GlowHint tells renderers how to draw strokes: brush width and glow
// radius in pixels, and the glow intensity blended over the sharp stroke.
type GlowHint struct {
	BrushWidth int
	GlowRadius int
	Intensity  float64
}

// DefaultGlowHint matches the original neon look.
func DefaultGlowHint() GlowHint {
	return GlowHint{BrushWidth: 8, GlowRadius: 15, Intensity: 1.5}
}

// Buffer accumulates stroke geometry. The session mutates it once per
// frame; the tray and HTTP surfaces may clear it from other goroutines,
// so access is serialized internally.
type Buffer struct {
	mu      sync.Mutex
	sealed  []*Stroke
	active  *Stroke
	hint    GlowHint
	version uint64
}

// NewBuffer creates an empty Buffer with the given glow hint.
func NewBuffer(hint GlowHint) *Buffer {
	return &Buffer{hint: hint}
}

// Begin starts a new active stroke at the given point. An already active
// stroke is sealed first so no in-progress work is lost.
func (b *Buffer) Begin(start geom.Point, c color.RGBA, width float64) *Stroke {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		b.sealed = append(b.sealed, b.active)
	}
	b.active = newStroke(start, c, width)
	b.version++
	return b.active
}

// Extend appends a point to the active stroke. Returns false if no stroke
// is active.
func (b *Buffer) Extend(p geom.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return false
	}
	b.active.append(p)
	b.version++
	return true
}

// Seal finalizes the active stroke and returns it, or nil if none was
// active. Sealed strokes are owned by the buffer.
func (b *Buffer) Seal() *Stroke {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.active
	if s == nil {
		return nil
	}
	b.sealed = append(b.sealed, s)
	b.active = nil
	b.version++
	return s
}

// Discard drops the active stroke without sealing it. Used on session
// shutdown, where in-progress work is not kept.
func (b *Buffer) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		b.active = nil
		b.version++
	}
}

// Clear removes all strokes, sealed and active.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sealed = nil
	b.active = nil
	b.version++
}

// Strokes returns the sealed strokes followed by the active stroke, if
// any. The slice is a copy; the strokes are shared and must be treated as
// read-only by callers.
func (b *Buffer) Strokes() []*Stroke {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Stroke, 0, len(b.sealed)+1)
	out = append(out, b.sealed...)
	if b.active != nil {
		out = append(out, b.active)
	}
	return out
}

// Active returns the stroke currently being drawn, or nil.
func (b *Buffer) Active() *Stroke {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// ActiveLen returns the number of points in the active stroke.
func (b *Buffer) ActiveLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return 0
	}
	return len(b.active.Points)
}

// Hint returns the glow rendering hint.
func (b *Buffer) Hint() GlowHint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hint
}

// SetHint replaces the glow rendering hint.
func (b *Buffer) SetHint(hint GlowHint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hint = hint
}

// Version increments on every mutation. Renderers can use it to skip
// re-rasterizing an unchanged canvas.
func (b *Buffer) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}
