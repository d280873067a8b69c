// Package detector provides hand-landmark detection for the air-drawing
// pipeline.
package detector

import (
	"github.com/ayusman/aircanvas/internal/geom"
	"github.com/ayusman/aircanvas/internal/gesture"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position in MediaPipe-normalized coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 landmarks of one detected hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Skeleton lists the landmark index pairs forming the hand skeleton, one
// chain per finger from the wrist. Used by the HUD overlay.
var Skeleton = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{Wrist, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{Wrist, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// FrameOf reduces a detected hand to the per-frame input the drawing core
// consumes: the 2D index and thumb tip positions. A nil hand yields an
// absent frame.
func FrameOf(h *HandLandmarks) gesture.HandFrame {
	if h == nil {
		return gesture.HandFrame{}
	}
	return gesture.HandFrame{
		IndexTip: geom.Point{X: h.Points[IndexTip].X, Y: h.Points[IndexTip].Y},
		ThumbTip: geom.Point{X: h.Points[ThumbTip].X, Y: h.Points[ThumbTip].Y},
		Present:  true,
	}
}
