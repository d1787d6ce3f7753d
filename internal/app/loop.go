package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/overlay"
)

// Result describes what one frame produced.
type Result struct {
	Hands    int
	Gesture  gesture.Gesture
	Executed bool
}

// Run opens the camera and processes frames until the operator quits, ctx is
// done, or a frame cannot be read. The camera, display and detector are
// released on every exit path.
func (a *App) Run(ctx context.Context) error {
	defer a.closeDetector()
	defer a.closeDisplay()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	defer a.closeCamera()

	a.logger.Info("gesture loop started", zap.Int("camera", a.cfg.CameraID))

	for {
		if ctx.Err() != nil {
			a.logger.Info("gesture loop interrupted")
			return nil
		}

		quit, err := a.iterate()
		if err != nil {
			return err
		}
		if quit {
			a.logger.Info("quit requested")
			return nil
		}
	}
}

// iterate handles one frame and the key poll that follows it.
func (a *App) iterate() (bool, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFrameCapture, err)
	}
	defer frame.Close()

	a.Step(frame, a.now())
	a.display.Show(frame)

	return a.handleKey(a.display.PollKey()), nil
}

// Step mirrors frame, recognizes a gesture, dispatches it and draws the
// overlay onto frame.
func (a *App) Step(frame *gocv.Mat, now time.Time) Result {
	if a.cfg.Mirror {
		gocv.Flip(*frame, frame, 1)
	}

	hands, err := a.detector.Detect(frame)
	a.noteDetection(err)
	if err != nil {
		hands = nil
	}

	g := gesture.None
	for i := range hands {
		overlay.DrawHand(frame, &hands[i])
		if g == gesture.None {
			g = gesture.Classify(&hands[i])
		}
	}

	executed := a.dispatcher.Dispatch(g, now)

	overlay.Draw(frame, overlay.Status{
		Gesture:      g,
		Executed:     executed,
		CooldownLeft: a.dispatcher.Remaining(now),
		PlayerReady:  a.controller.Ready(),
	})

	return Result{Hands: len(hands), Gesture: g, Executed: executed}
}

// noteDetection logs the first failure of a run of failed detections at warn
// level and the rest at debug.
func (a *App) noteDetection(err error) {
	switch {
	case err != nil && !a.detectorFailing:
		a.detectorFailing = true
		a.logger.Warn("hand detection failing", zap.Error(err))
	case err != nil:
		a.logger.Debug("hand detection failed", zap.Error(err))
	case a.detectorFailing:
		a.detectorFailing = false
		a.logger.Info("hand detection recovered")
	}
}

// handleKey applies an operator key press and reports whether to quit.
func (a *App) handleKey(key int) bool {
	if key < 0 {
		return false
	}

	switch key & 0xFF {
	case 'q', 'Q':
		return true
	case 'r', 'R':
		a.dispatcher.Reset()
		a.logger.Info("cooldown reset")
	case 's', 'S':
		// Failures are logged by the controller.
		_ = a.controller.FocusPlayer()
	}
	return false
}

func (a *App) closeCamera() {
	if err := a.camera.Close(); err != nil {
		a.logger.Warn("failed to close camera", zap.Error(err))
	}
}

func (a *App) closeDisplay() {
	if err := a.display.Close(); err != nil {
		a.logger.Warn("failed to close display", zap.Error(err))
	}
}

func (a *App) closeDetector() {
	if err := a.detector.Close(); err != nil {
		a.logger.Warn("failed to close detector", zap.Error(err))
	}
}
