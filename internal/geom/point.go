// Package geom provides 2D geometry primitives shared by the drawing core.
// Coordinates are normalized to [0,1] in both axes (MediaPipe convention),
// with the origin at the top-left and Y increasing downward.
package geom

import "math"

// Point is an immutable 2D point or vector in normalized space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp linearly interpolates from a toward b by t.
func Lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).Scale(t))
}
