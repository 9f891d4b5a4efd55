package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/nayana/internal/detector"
	"github.com/ayusman/nayana/internal/gesture"
	"github.com/ayusman/nayana/internal/overlay"
)

// Run opens the camera and processes frames until the quit key arrives,
// ctx is cancelled or the camera is lost. It returns nil on quit and on
// cancellation. Resources are released on every path.
//
// Each iteration:
// 1. Read a frame from the camera
// 2. Detect hand and face landmarks
// 3. Classify them against the session into pointer events
// 4. Dispatch the events to the OS pointer
// 5. Draw markers and the mode label, then show the frame
// 6. Poll for a key press and drain queued input
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(); err != nil {
			logrus.WithError(err).Warn("Cleanup failed")
		}
	}()

	if err := a.config.Camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	a.beginSession()
	defer a.endSession()
	a.publishStatus()

	logrus.WithField("mode", a.session.Mode.Name()).Info("Control loop started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Interrupted, shutting down")
			return nil
		default:
		}

		quit, err := a.step()
		if err != nil {
			return err
		}
		if quit {
			logrus.Info("Quit requested, shutting down")
			return nil
		}
	}
}

// step runs one loop iteration and reports whether the quit key arrived.
func (a *App) step() (bool, error) {
	frame, err := a.config.Camera.ReadFrame()
	if err != nil {
		a.failures++
		logrus.WithError(err).WithField("failures", a.failures).Warn("Error reading frame")
		if a.failures >= MaxReadFailures {
			return false, fmt.Errorf("%w after %d consecutive read errors: %v", ErrCameraLost, a.failures, err)
		}
		return a.pollInput(), nil
	}
	a.failures = 0

	a.processFrame(frame)
	frame.Close()

	return a.pollInput(), nil
}

// processFrame classifies one frame, dispatches the result and renders it.
func (a *App) processFrame(frame *gocv.Mat) {
	lm, err := a.config.Detector.Detect(frame)
	if err != nil {
		logrus.WithError(err).Warn("Error detecting landmarks")
		lm = detector.Landmarks{}
	}

	events := a.engine.Process(a.session, lm)
	applied := a.dispatcher.Dispatch(events)
	a.record(applied)

	for _, ev := range events {
		if ev.Kind == gesture.CursorMove {
			overlay.DrawMarker(frame, ev.X, ev.Y, ev.Source)
		}
	}
	overlay.DrawModeLabel(frame, a.session.Mode)
	a.config.Renderer.Show(frame)

	a.frames++
	a.publishPreview(frame)
	a.publishStatus()
}

// publishPreview hands an encoded copy of the annotated frame to the hub.
func (a *App) publishPreview(frame *gocv.Mat) {
	if a.config.Hub == nil || a.frames%uint64(a.config.PreviewEvery) != 0 {
		return
	}
	if frame == nil || frame.Empty() {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		logrus.WithError(err).Debug("Error encoding preview frame")
		return
	}
	a.config.Hub.SetFrame(buf.GetBytes())
	buf.Close()
}

// pollInput checks the renderer for a key press, then drains keys queued
// through Input. It reports whether the quit key was seen.
func (a *App) pollInput() bool {
	if a.handleKey(a.config.Renderer.PollKey(KeyPollInterval)) {
		return true
	}

	for {
		select {
		case key := <-a.inputs:
			if a.handleKey(key) {
				return true
			}
		default:
			return false
		}
	}
}

// handleKey applies one key press and reports whether it was the quit key.
func (a *App) handleKey(key int) bool {
	if key < 0 {
		return false
	}
	if key == gesture.KeyQuit {
		return true
	}
	a.switchMode(key)
	return false
}
