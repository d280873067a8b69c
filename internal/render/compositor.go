// Package render rasterizes the drawing session over the camera feed:
// glow-composited strokes, the arc palette and the hand HUD.
package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/aircanvas/internal/canvas"
	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/geom"
	"github.com/ayusman/aircanvas/internal/palette"
	"github.com/ayusman/aircanvas/internal/session"
)

// glowDownscale is the shrink factor used before blurring; blurring the
// small image and scaling it back up gives a wide, cheap glow.
const glowDownscale = 0.2

// Compositor draws the session output into camera frames. It keeps a
// persistent stroke layer and only re-rasterizes it when the buffer
// changed.
type Compositor struct {
	width  int
	height int

	strokes     gocv.Mat
	lastVersion uint64
	rasterized  bool
}

// NewCompositor creates a Compositor for frames of the given pixel size.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		width:   width,
		height:  height,
		strokes: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
	}
}

// Close releases the stroke layer.
func (c *Compositor) Close() {
	c.strokes.Close()
}

// px maps a normalized point to frame pixels.
func (c *Compositor) px(p geom.Point) image.Point {
	return image.Point{
		X: int(p.X * float64(c.width)),
		Y: int(p.Y * float64(c.height)),
	}
}

// Compose draws everything into frame in place: the glowing stroke layer,
// the palette arc, the hand HUD and the cursor ring.
func (c *Compositor) Compose(frame *gocv.Mat, buf *canvas.Buffer, pal *palette.Palette, snap session.Snapshot, hands []detector.HandLandmarks) {
	hint := buf.Hint()

	if v := buf.Version(); !c.rasterized || v != c.lastVersion {
		c.rasterize(buf, hint)
		c.lastVersion = v
		c.rasterized = true
	}

	c.mergeGlow(frame, hint)

	if len(hands) > 0 {
		c.drawHUD(frame, &hands[0])
	}

	c.drawPalette(frame, pal, snap)

	if snap.HandPresent {
		cur := c.px(snap.Cursor.Position)
		gocv.Circle(frame, cur, 10, white, 1)
	}
}

// rasterize redraws all strokes into the persistent stroke layer.
func (c *Compositor) rasterize(buf *canvas.Buffer, hint canvas.GlowHint) {
	c.strokes.SetTo(gocv.NewScalar(0, 0, 0, 0))

	for _, s := range buf.Strokes() {
		width := int(s.Width)
		if width <= 0 {
			width = hint.BrushWidth
		}

		prev := c.px(s.Points[0])
		gocv.Circle(&c.strokes, prev, width/2, s.Color, -1)
		for _, p := range s.Points[1:] {
			cur := c.px(p)
			gocv.Line(&c.strokes, prev, cur, s.Color, width)
			gocv.Circle(&c.strokes, cur, width/2, s.Color, -1)
			prev = cur
		}
	}
}

// mergeGlow blends the stroke layer plus its glow over the frame. Pixels
// the strokes don't cover keep the camera image.
func (c *Compositor) mergeGlow(frame *gocv.Mat, hint canvas.GlowHint) {
	// Build the glow: shrink, blur, scale back, add over the sharp layer.
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(c.strokes, &small, image.Point{}, glowDownscale, glowDownscale, gocv.InterpolationLinear)

	ksize := hint.GlowRadius
	if ksize%2 == 0 {
		ksize++
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(small, &blurred, image.Point{X: ksize, Y: ksize}, 0, 0, gocv.BorderDefault)

	glow := gocv.NewMat()
	defer glow.Close()
	gocv.Resize(blurred, &glow, image.Point{X: c.width, Y: c.height}, 0, 0, gocv.InterpolationLinear)

	lit := gocv.NewMat()
	defer lit.Close()
	gocv.AddWeighted(c.strokes, 1.0, glow, hint.Intensity, 0, &lit)

	// Mask out the camera pixels under the lit strokes, then add.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(lit, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, 10, 255, gocv.ThresholdBinary)

	maskInv := gocv.NewMat()
	defer maskInv.Close()
	gocv.BitwiseNot(mask, &maskInv)

	background := gocv.NewMat()
	defer background.Close()
	gocv.BitwiseAndWithMask(*frame, *frame, &background, maskInv)

	gocv.Add(background, lit, frame)
}
