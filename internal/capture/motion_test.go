package capture

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, c color.RGBA) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		120, 160, gocv.MatTypeCV8UC3,
	)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	detected, percent := m.Detect(solidFrame(t, color.RGBA{}))
	if detected || percent != 0 {
		t.Errorf("first frame reported motion: %v (%.2f%%)", detected, percent)
	}
}

func TestMotionDetector_StaticScene(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := solidFrame(t, color.RGBA{R: 128, G: 128, B: 128})
	m.Detect(frame)

	for i := 0; i < 3; i++ {
		if detected, percent := m.Detect(frame); detected {
			t.Errorf("static scene frame %d reported motion (%.2f%%)", i, percent)
		}
	}
}

func TestMotionDetector_LargeChange(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(solidFrame(t, color.RGBA{}))

	// A moving bright region well past the blur and diff thresholds.
	moved := solidFrame(t, color.RGBA{})
	gocv.Rectangle(moved, image.Rect(20, 20, 140, 100), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	detected, percent := m.Detect(moved)
	if !detected {
		t.Errorf("large change not detected (%.2f%% changed)", percent)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(solidFrame(t, color.RGBA{}))
	m.Reset()

	// After reset, the next frame is a baseline again even if different.
	white := solidFrame(t, color.RGBA{R: 255, G: 255, B: 255})
	if detected, _ := m.Detect(white); detected {
		t.Error("frame after Reset should establish a new baseline")
	}
}

func TestMotionDetector_NilAndEmptyFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	if detected, _ := m.Detect(nil); detected {
		t.Error("nil frame reported motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if detected, _ := m.Detect(&empty); detected {
		t.Error("empty frame reported motion")
	}
}
