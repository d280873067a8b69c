package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/geom"
)

// HUD colors.
var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cyan      = color.RGBA{G: 255, B: 255, A: 255}
	amber     = color.RGBA{R: 255, G: 165, A: 255}
	liveGreen = color.RGBA{G: 255, A: 255}
	offRed    = color.RGBA{R: 255, A: 255}
	barGray   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
)

// Pinch bar geometry, in pixels beside the index tip.
const (
	barLength = 40
	barHeight = 6
)

// drawHUD overlays the hand skeleton, joint markers and the pinch
// progress bar next to the index fingertip.
func (c *Compositor) drawHUD(frame *gocv.Mat, hand *detector.HandLandmarks) {
	pts := make([]image.Point, detector.NumLandmarks)
	for i, p := range hand.Points {
		pts[i] = c.px(geom.Point{X: p.X, Y: p.Y})
	}

	for _, conn := range detector.Skeleton {
		gocv.Line(frame, pts[conn[0]], pts[conn[1]], cyan, 1)
	}
	for _, pt := range pts {
		gocv.Circle(frame, pt, 3, amber, -1)
		gocv.Circle(frame, pt, 6, cyan, 1)
	}

	// Target ring on the index fingertip.
	tip := pts[detector.IndexTip]
	gocv.Circle(frame, tip, 10, white, 1)

	c.drawPinchBar(frame, hand, tip)
}

// drawPinchBar renders a small bar whose fill approaches full as the
// thumb closes on the index tip.
func (c *Compositor) drawPinchBar(frame *gocv.Mat, hand *detector.HandLandmarks, tip image.Point) {
	f := detector.FrameOf(hand)
	dist := f.PinchDistance()

	// Map the distance onto [0,1]: empty beyond 0.10 apart, full at 0.04.
	fill := (0.10 - dist) / 0.06
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	barColor := offRed
	if fill >= 1 {
		barColor = liveGreen
		gocv.PutText(frame, "ON", image.Point{X: tip.X + 20, Y: tip.Y - 10},
			gocv.FontHersheyPlain, 1, barColor, 2)
	}

	origin := image.Point{X: tip.X + 15, Y: tip.Y}
	gocv.Rectangle(frame, image.Rectangle{
		Min: origin,
		Max: image.Point{X: origin.X + barLength, Y: origin.Y + barHeight},
	}, barGray, -1)
	gocv.Rectangle(frame, image.Rectangle{
		Min: origin,
		Max: image.Point{X: origin.X + int(barLength*fill), Y: origin.Y + barHeight},
	}, barColor, -1)
}
