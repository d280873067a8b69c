package gesture

import (
	"testing"

	"github.com/ayusman/aircanvas/internal/geom"
)

func TestClassifier_Hysteresis(t *testing.T) {
	c, err := NewClassifier(0.03, 0.05)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}

	// Distance dips below the enter threshold, lingers in the dead band,
	// then crosses the exit threshold.
	distances := []float64{0.10, 0.02, 0.02, 0.04, 0.06}
	want := []PinchState{PinchIdle, Pinched, Pinched, Pinched, PinchIdle}

	for i, d := range distances {
		got := c.Update(d, true)
		if got != want[i] {
			t.Errorf("frame %d: distance %.2f -> %v, want %v", i+1, d, got, want[i])
		}
	}
}

func TestClassifier_NoOscillationInDeadBand(t *testing.T) {
	c, err := NewClassifier(0.03, 0.05)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}

	// Enter the pinch once.
	if got := c.Update(0.02, true); got != Pinched {
		t.Fatalf("expected Pinched after crossing enter threshold, got %v", got)
	}

	// Noise between enter and exit must never release the pinch.
	for i, d := range []float64{0.035, 0.045, 0.031, 0.049, 0.04} {
		if got := c.Update(d, true); got != Pinched {
			t.Errorf("dead-band frame %d: distance %.3f released the pinch", i, d)
		}
	}
}

func TestClassifier_AbsentHandForcesIdle(t *testing.T) {
	c, err := NewClassifier(0.03, 0.05)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}

	c.Update(0.01, true)
	if c.State() != Pinched {
		t.Fatal("expected Pinched before hand loss")
	}

	if got := c.Update(0.01, false); got != PinchIdle {
		t.Errorf("absent hand should force PinchIdle, got %v", got)
	}
}

func TestClassifier_InvalidThresholds(t *testing.T) {
	tests := []struct {
		name         string
		enter, exit  float64
	}{
		{"equal", 0.05, 0.05},
		{"inverted", 0.06, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClassifier(tt.enter, tt.exit); err == nil {
				t.Errorf("NewClassifier(%v, %v) expected error", tt.enter, tt.exit)
			}
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		prev     PinchState
		want     PinchState
	}{
		{"idle stays idle above enter", 0.04, PinchIdle, PinchIdle},
		{"idle enters at enter threshold", 0.03, PinchIdle, Pinched},
		{"pinched stays below exit", 0.049, Pinched, Pinched},
		{"pinched exits at exit threshold", 0.05, Pinched, PinchIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.distance, tt.prev, 0.03, 0.05); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.distance, tt.prev, got, tt.want)
			}
		})
	}
}

func TestHandFrame_PinchDistance(t *testing.T) {
	f := HandFrame{
		IndexTip: geom.Point{X: 0.5, Y: 0.5},
		ThumbTip: geom.Point{X: 0.5, Y: 0.4},
		Present:  true,
	}

	if got := f.PinchDistance(); got < 0.099 || got > 0.101 {
		t.Errorf("PinchDistance() = %v, want 0.1", got)
	}
}
