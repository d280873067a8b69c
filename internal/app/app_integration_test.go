package app

import (
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/aircanvas/internal/capture"
	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/geom"
	"github.com/ayusman/aircanvas/internal/session"
	"github.com/ayusman/aircanvas/internal/store"
	"github.com/ayusman/aircanvas/internal/testutil"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	app, err := New(Config{Store: s, MotionThresh: 0.05})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return app, s
}

// cameraFrame allocates a frame matching the compositor's dimensions.
func cameraFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestApp_DrawingPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, _ := newTestApp(t)

	// Inject a mock camera and a scripted hand: open, pinch while moving
	// right, then open again so the stroke is sealed.
	app.camera = capture.NewMockCamera([]*gocv.Mat{cameraFrame(t)}, true)

	script := testutil.StrokeScript(geom.Point{X: 0.30, Y: 0.60}, geom.Point{X: 0.55, Y: 0.60}, 5)

	mock := detector.NewMockDetector()
	mock.SetScript(script)
	app.SetDetector(mock)

	app.SetEnabled(true)
	if err := app.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}

	// At IdleFPS the script takes about 2 seconds to play out.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(app.Buffer().Strokes()) > 0 && app.Buffer().ActiveLen() == 0 {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	app.Stop()

	strokes := app.Buffer().Strokes()
	if len(strokes) != 1 {
		t.Fatalf("len(strokes) = %d, want 1", len(strokes))
	}
	if len(strokes[0].Points) < 2 {
		t.Errorf("len(stroke points) = %d, want at least 2", len(strokes[0].Points))
	}

	snap := app.Snapshot()
	if snap.State != session.StateIdle {
		t.Errorf("final state = %v, want idle", snap.State)
	}

	if _, ok := app.LatestJPEG(); !ok {
		t.Error("pipeline published no frames")
	}
}

func TestApp_DisabledSealsActiveStroke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, _ := newTestApp(t)
	app.camera = capture.NewMockCamera([]*gocv.Mat{cameraFrame(t)}, true)

	// A held pinch with no release: the stroke stays active.
	mock := detector.NewMockDetector()
	mock.SetScript([][]detector.HandLandmarks{
		{detector.OpenHandLandmarks(0.40, 0.60)},
		{detector.PinchedHandLandmarks(0.40, 0.60)},
	})
	app.SetDetector(mock)

	app.SetEnabled(true)
	if err := app.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if app.Buffer().ActiveLen() > 0 {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if app.Buffer().ActiveLen() == 0 {
		app.Stop()
		t.Fatal("pinch never started a stroke")
	}

	// Disabling tracking feeds the session absent-hand steps, which seal
	// the in-progress stroke.
	app.SetEnabled(false)

	deadline = time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if app.Buffer().ActiveLen() == 0 {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	app.Stop()

	if app.Buffer().ActiveLen() != 0 {
		t.Error("active stroke not sealed after disable")
	}
	if len(app.Buffer().Strokes()) != 1 {
		t.Errorf("len(strokes) = %d, want 1", len(app.Buffer().Strokes()))
	}
}

func TestApp_ApplyCalibration(t *testing.T) {
	app, _ := newTestApp(t)

	cfg := session.DefaultConfig()
	cfg.PinchEnter = 0.03
	cfg.PinchExit = 0.05
	cfg.BrushWidth = 12

	if err := app.ApplyCalibration(cfg); err != nil {
		t.Fatalf("ApplyCalibration() error = %v", err)
	}

	if got := app.Session().Config().PinchEnter; got != 0.03 {
		t.Errorf("session pinch enter = %v, want 0.03", got)
	}
	if got := app.Buffer().Hint().BrushWidth; got != 12 {
		t.Errorf("buffer brush width = %d, want 12", got)
	}

	// Inverted thresholds are rejected and nothing changes.
	bad := cfg
	bad.PinchEnter, bad.PinchExit = bad.PinchExit, bad.PinchEnter
	if err := app.ApplyCalibration(bad); err == nil {
		t.Error("ApplyCalibration() accepted inverted thresholds")
	}
	if got := app.Session().Config().PinchEnter; got != 0.03 {
		t.Errorf("rejected calibration modified session: %v", got)
	}
}

func TestApp_LoadsStoredCalibration(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	cfg := session.DefaultConfig()
	cfg.PinchEnter = 0.02
	cfg.PinchExit = 0.07
	if err := s.Settings().SaveCalibration(cfg); err != nil {
		t.Fatalf("SaveCalibration() error = %v", err)
	}

	app, err := New(Config{Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	got := app.Session().Config()
	if got.PinchEnter != 0.02 || got.PinchExit != 0.07 {
		t.Errorf("session thresholds = (%v, %v), want stored (0.02, 0.07)",
			got.PinchEnter, got.PinchExit)
	}
}

func TestApp_ClearCanvas(t *testing.T) {
	app, _ := newTestApp(t)

	app.Buffer().Begin(geom.Point{X: 0.5, Y: 0.5}, app.Session().SelectedEntry().Color, 8)
	app.Buffer().Seal()

	app.ClearCanvas()

	if len(app.Buffer().Strokes()) != 0 {
		t.Errorf("len(strokes) = %d after clear, want 0", len(app.Buffer().Strokes()))
	}
}
