package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/aircanvas/internal/detector"
	"github.com/ayusman/aircanvas/internal/gesture"
	"github.com/ayusman/aircanvas/internal/session"
)

// runPipeline is the main loop that turns camera frames into canvas strokes.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Mirror the frame so the user's hand moves like in a mirror
// 4. Run hand detection and step the drawing session
// 5. Compose strokes, glow, palette and HUD over the frame
// 6. Publish the composed frame as JPEG for the HTTP stream
// 7. After 2s with no motion and the session idle, drop back to idle mode
//
// The downshift to idle is gated on the session state: a finger holding a
// pinch perfectly still produces no motion, but the stroke must not be
// starved of frames.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()
	lastStep := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	readFailures := 0

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// While tracking is disabled, keep the session fed with
			// absent-hand steps so an in-progress stroke is sealed.
			if !a.IsEnabled() {
				now := time.Now()
				snap := a.session.Step(session.FrameInput{
					Hand: gesture.HandFrame{Present: false},
					DT:   now.Sub(lastStep).Seconds(),
				})
				lastStep = now
				a.publish(nil, snap)
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				readFailures++
				if readFailures >= maxReadFailures {
					log.Println("Camera unusable, stopping pipeline")
					a.buffer.Discard()
					return
				}
				continue
			}
			readFailures = 0

			// Mirror horizontally so motion matches what the user expects.
			gocv.Flip(*frame, frame, 1)

			// Step 1: Motion detection gates the frame rate.
			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			}

			// Step 2: Hand detection
			hands, err := a.detector.Detect(frame)
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				hands = nil
			}

			var hand gesture.HandFrame
			if len(hands) > 0 {
				hand = detector.FrameOf(&hands[0])
			}

			// Step 3: Step the drawing session
			now := time.Now()
			snap := a.session.Step(session.FrameInput{
				Hand: hand,
				DT:   now.Sub(lastStep).Seconds(),
			})
			lastStep = now

			// Step 4: Compose the output frame
			a.compositor.Compose(frame, a.buffer, a.palette, snap, hands)

			// Step 5: Publish as JPEG for the stream
			encoded, err := gocv.IMEncode(".jpg", *frame)
			frame.Close()
			if err != nil {
				log.Printf("Error encoding frame: %v", err)
				continue
			}
			jpeg := make([]byte, encoded.Len())
			copy(jpeg, encoded.GetBytes())
			encoded.Close()

			a.publish(jpeg, snap)

			// Step 6: Drop back to idle only once the session is idle too.
			if activeMode && !motionDetected && snap.State == session.StateIdle {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}
		}
	}
}
