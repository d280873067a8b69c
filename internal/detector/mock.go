package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, optionally playing a
// scripted sequence of per-frame results.
type MockDetector struct {
	hands    []HandLandmarks
	script   [][]HandLandmarks
	scriptAt int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
	m.script = nil
	m.scriptAt = 0
}

// SetScript sets a per-frame sequence of results. Each Detect call
// consumes one entry; the last entry repeats once the script runs out.
func (m *MockDetector) SetScript(script [][]HandLandmarks) {
	m.script = script
	m.scriptAt = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands, script entry or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		hands := m.script[m.scriptAt]
		if m.scriptAt < len(m.script)-1 {
			m.scriptAt++
		}
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PinchedHandLandmarks returns a preset hand with thumb tip and index tip
// touching at the given position, as seen while drawing.
func PinchedHandLandmarks(x, y float64) HandLandmarks {
	lm := openHandAt(x, y)

	// Bring the thumb tip onto the index tip.
	lm.Points[ThumbTip] = Point3D{X: x + 0.005, Y: y, Z: 0}
	lm.Points[ThumbIP] = Point3D{X: x + 0.02, Y: y + 0.04, Z: 0}

	return lm
}

// OpenHandLandmarks returns a preset relaxed open hand with the index tip
// at the given position and the thumb well apart from it.
func OpenHandLandmarks(x, y float64) HandLandmarks {
	return openHandAt(x, y)
}

// openHandAt builds a plausible upright hand with the index tip at (x, y).
// Only the thumb and index chains matter to the drawing core; the
// remaining fingers are filled in for HUD rendering.
func openHandAt(x, y float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: x - 0.02, Y: y + 0.30, Z: 0}

	// Thumb angled away from the palm.
	lm.Points[ThumbCMC] = Point3D{X: x + 0.04, Y: y + 0.26, Z: 0}
	lm.Points[ThumbMCP] = Point3D{X: x + 0.08, Y: y + 0.21, Z: 0}
	lm.Points[ThumbIP] = Point3D{X: x + 0.11, Y: y + 0.17, Z: 0}
	lm.Points[ThumbTip] = Point3D{X: x + 0.13, Y: y + 0.14, Z: 0}

	// Index finger extended, tip at the requested position.
	lm.Points[IndexMCP] = Point3D{X: x, Y: y + 0.20, Z: 0}
	lm.Points[IndexPIP] = Point3D{X: x, Y: y + 0.13, Z: 0}
	lm.Points[IndexDIP] = Point3D{X: x, Y: y + 0.06, Z: 0}
	lm.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0}

	// Remaining fingers loosely extended beside the index.
	for f, base := range map[int]float64{MiddleMCP: -0.03, RingMCP: -0.06, PinkyMCP: -0.09} {
		for j := 0; j < 4; j++ {
			lm.Points[f+j] = Point3D{
				X: x + base,
				Y: y + 0.20 - float64(j)*0.05,
				Z: 0,
			}
		}
	}

	return lm
}
