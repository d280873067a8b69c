package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/aircanvas/internal/palette"
	"github.com/ayusman/aircanvas/internal/session"
)

// Emphasis applied to the arc band, in normalized radius units.
const (
	selectedShift = 0.012
	hoverWiden    = 0.008
)

// drawPalette renders the arc color picker with the selected swatch
// pushed outward and the hovered swatch widened and labeled.
func (c *Compositor) drawPalette(frame *gocv.Mat, pal *palette.Palette, snap session.Snapshot) {
	center := c.px(pal.Center)

	for _, e := range pal.Entries {
		inner := pal.InnerRadius
		outer := pal.OuterRadius

		if e.Name == snap.Selected {
			inner += selectedShift
			outer += selectedShift
		}
		if e.Name == snap.Hover {
			outer += hoverWiden
			c.drawSwatchLabel(frame, pal, e)
		}

		mid := (inner + outer) / 2
		axes := image.Point{
			X: int(mid * float64(c.width)),
			Y: int(mid * float64(c.height)),
		}
		thickness := int((outer - inner) * float64(c.height))
		if thickness < 1 {
			thickness = 1
		}

		gocv.Ellipse(frame, center, axes, 0, e.StartDeg, e.EndDeg, e.Color, thickness)
	}
}

// drawSwatchLabel prints the hovered swatch name below the arc.
func (c *Compositor) drawSwatchLabel(frame *gocv.Mat, pal *palette.Palette, e palette.Entry) {
	at := image.Point{
		X: c.px(pal.Center).X - 40,
		Y: int((pal.OuterRadius + 0.10) * float64(c.height)),
	}
	gocv.PutText(frame, e.Name, at, gocv.FontHersheySimplex, 1, e.Color, 2)
}
