// Package app provides the main application logic for the AirCanvas drawing toy.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/aircanvas/internal/canvas"
	"github.com/ayusman/aircanvas/internal/capture"
	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/palette"
	"github.com/ayusman/aircanvas/internal/render"
	"github.com/ayusman/aircanvas/internal/session"
	"github.com/ayusman/aircanvas/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no hand activity is in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while tracking and drawing.
	ActiveFPS = 30
	// IdleTimeoutMs is the time in milliseconds without motion before
	// dropping back to the idle frame rate.
	IdleTimeoutMs = 2000
	// maxReadFailures is the number of consecutive camera read errors
	// tolerated before the pipeline gives up.
	maxReadFailures = 30
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	PalettePath  string
}

// App wires the camera, hand detector, drawing session and renderer into
// one pipeline, and exposes the pieces the tray and HTTP server need.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	palette    *palette.Palette
	buffer     *canvas.Buffer
	session    *session.Session
	compositor *render.Compositor

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	// Latest composed frame and session state, published by the pipeline
	// for the HTTP stream and WebSocket feed.
	frameMu  sync.RWMutex
	lastJPEG []byte
	lastSnap session.Snapshot
}

// New creates a new App instance with the given configuration. The stored
// calibration is loaded if a store is configured.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	cfg := session.DefaultConfig()
	if config.Store != nil {
		loaded, err := config.Store.Settings().LoadCalibration()
		if err != nil {
			log.Printf("Failed to load calibration (%v), using defaults", err)
		} else {
			cfg = loaded
		}
	}

	pal := palette.Default()
	if config.PalettePath != "" {
		loaded, err := palette.Load(config.PalettePath)
		if err != nil {
			log.Printf("Failed to load palette %s (%v), using built-in", config.PalettePath, err)
		} else {
			pal = loaded
		}
	}

	hint := canvas.DefaultGlowHint()
	hint.BrushWidth = int(cfg.BrushWidth)
	buffer := canvas.NewBuffer(hint)

	sess, err := session.New(cfg, pal, buffer)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		palette:    pal,
		buffer:     buffer,
		session:    sess,
		compositor: render.NewCompositor(capture.DefaultWidth, capture.DefaultHeight),
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables hand tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Start begins the drawing pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Drawing pipeline started")
	return nil
}

// Stop halts the drawing pipeline and releases resources. An in-progress
// stroke is discarded rather than sealed.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	a.buffer.Discard()

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.compositor.Close()

	log.Println("Drawing pipeline stopped")
}

// ApplyCalibration pushes a new calibration into the running session and
// updates the brush width used for rendering.
func (a *App) ApplyCalibration(cfg session.Config) error {
	if err := a.session.SetConfig(cfg); err != nil {
		return err
	}

	hint := a.buffer.Hint()
	hint.BrushWidth = int(cfg.BrushWidth)
	a.buffer.SetHint(hint)
	return nil
}

// ClearCanvas wipes all strokes.
func (a *App) ClearCanvas() {
	a.buffer.Clear()
}

// Snapshot returns the most recent session state published by the pipeline.
func (a *App) Snapshot() session.Snapshot {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.lastSnap
}

// LatestJPEG returns the most recent composed frame as JPEG. The second
// return is false until the pipeline has published a frame.
func (a *App) LatestJPEG() ([]byte, bool) {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	if a.lastJPEG == nil {
		return nil, false
	}
	return a.lastJPEG, true
}

// publish records the latest composed frame and session state.
func (a *App) publish(jpeg []byte, snap session.Snapshot) {
	a.frameMu.Lock()
	a.lastJPEG = jpeg
	a.lastSnap = snap
	a.frameMu.Unlock()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Session returns the drawing session.
func (a *App) Session() *session.Session {
	return a.session
}

// Buffer returns the canvas buffer.
func (a *App) Buffer() *canvas.Buffer {
	return a.buffer
}

// Palette returns the color picker arc.
func (a *App) Palette() *palette.Palette {
	return a.palette
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
