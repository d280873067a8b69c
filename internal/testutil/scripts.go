// Package testutil provides scripted hand sequences for integration tests.
package testutil

import (
	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/geom"
)

// StrokeScript builds a detector script for one drawn stroke: an open hand
// at the start point, a pinch dragged to the end point in the given number
// of steps, then an open hand that releases the stroke.
func StrokeScript(from, to geom.Point, steps int) [][]detector.HandLandmarks {
	script := [][]detector.HandLandmarks{
		{detector.OpenHandLandmarks(from.X, from.Y)},
		{detector.OpenHandLandmarks(from.X, from.Y)},
	}

	for i := 0; i <= steps; i++ {
		p := geom.Lerp(from, to, float64(i)/float64(steps))
		script = append(script, []detector.HandLandmarks{detector.PinchedHandLandmarks(p.X, p.Y)})
	}

	script = append(script, []detector.HandLandmarks{detector.OpenHandLandmarks(to.X, to.Y)})
	return script
}

// PickScript builds a detector script for a palette selection: an open hand
// hovering the swatch, a pinch on it, and a release.
func PickScript(swatch geom.Point) [][]detector.HandLandmarks {
	return [][]detector.HandLandmarks{
		{detector.OpenHandLandmarks(swatch.X, swatch.Y)},
		{detector.OpenHandLandmarks(swatch.X, swatch.Y)},
		{detector.PinchedHandLandmarks(swatch.X, swatch.Y)},
		{detector.OpenHandLandmarks(swatch.X, swatch.Y)},
	}
}

// HandLossScript builds a detector script where the hand leaves the frame
// mid-stroke, which must seal the in-progress stroke.
func HandLossScript(from, to geom.Point, steps int) [][]detector.HandLandmarks {
	script := [][]detector.HandLandmarks{
		{detector.OpenHandLandmarks(from.X, from.Y)},
	}

	for i := 0; i <= steps; i++ {
		p := geom.Lerp(from, to, float64(i)/float64(steps))
		script = append(script, []detector.HandLandmarks{detector.PinchedHandLandmarks(p.X, p.Y)})
	}

	script = append(script, nil) // hand gone
	return script
}
