// Package app runs the per-frame control loop that turns camera frames into
// pointer actions.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/nayana/internal/action"
	"github.com/ayusman/nayana/internal/capture"
	"github.com/ayusman/nayana/internal/detector"
	"github.com/ayusman/nayana/internal/gesture"
	"github.com/ayusman/nayana/internal/monitor"
	"github.com/ayusman/nayana/internal/overlay"
	"github.com/ayusman/nayana/internal/store"
)

// Loop timing constants.
const (
	// MaxReadFailures is the number of consecutive failed camera reads after
	// which the loop gives up with ErrCameraLost.
	MaxReadFailures = 10
	// KeyPollInterval bounds the per-frame wait for a key press.
	KeyPollInterval = time.Millisecond
	// InputBuffer is how many queued key presses Input accepts.
	InputBuffer = 16
	// DefaultPreviewEvery publishes every second frame to the monitor hub.
	DefaultPreviewEvery = 2
)

var (
	// ErrCameraLost is returned by Run when the camera stops delivering frames.
	ErrCameraLost = errors.New("camera stopped delivering frames")
	// ErrMissingDependency is returned by New when a required collaborator is nil.
	ErrMissingDependency = errors.New("missing dependency")
)

// Config holds the loop's collaborators. Camera, Detector and Pointer are
// required; the rest are optional.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Pointer  action.Pointer
	// Renderer defaults to a headless renderer.
	Renderer overlay.Renderer

	// Store journals sessions, discrete events and mode changes.
	Store *store.Store
	// Hub receives status snapshots, preview frames and events.
	Hub *monitor.Hub
	// PreviewEvery publishes one preview frame per this many frames.
	PreviewEvery int

	// Thresholds defaults to gesture.DefaultThresholds.
	Thresholds gesture.Thresholds
	// ScrollAmount defaults to gesture.ScrollAmount.
	ScrollAmount int

	// OnModeChange is called from the loop after every mode switch.
	OnModeChange func(gesture.Mode)
	// OnEvent is called from the loop for every applied discrete event.
	OnEvent func(gesture.Event)
}

// App owns the gesture session and drives the control loop.
type App struct {
	config     Config
	engine     *gesture.Engine
	dispatcher *action.Dispatcher
	session    *gesture.Session
	inputs     chan int

	sessionID string
	startedAt time.Time
	frames    uint64
	failures  int
	cursorX   int
	cursorY   int
	lastEvent string

	closeOnce sync.Once
	closeErr  error
}

// New creates an App from config.
func New(config Config) (*App, error) {
	switch {
	case config.Camera == nil:
		return nil, fmt.Errorf("camera: %w", ErrMissingDependency)
	case config.Detector == nil:
		return nil, fmt.Errorf("detector: %w", ErrMissingDependency)
	case config.Pointer == nil:
		return nil, fmt.Errorf("pointer: %w", ErrMissingDependency)
	}

	if config.Renderer == nil {
		config.Renderer = overlay.NewHeadless()
	}
	if config.Thresholds == (gesture.Thresholds{}) {
		config.Thresholds = gesture.DefaultThresholds()
	}
	if config.ScrollAmount <= 0 {
		config.ScrollAmount = gesture.ScrollAmount
	}
	if config.PreviewEvery <= 0 {
		config.PreviewEvery = DefaultPreviewEvery
	}

	return &App{
		config:     config,
		engine:     gesture.NewEngine(config.Thresholds),
		dispatcher: action.NewDispatcher(config.Pointer, config.ScrollAmount),
		session:    gesture.NewSession(),
		inputs:     make(chan int, InputBuffer),
	}, nil
}

// NewDetector returns the MediaPipe detector. It fails when the service
// script cannot be found; there is no silent fallback.
func NewDetector(config detector.Config) (detector.Detector, error) {
	mp, err := detector.NewMediaPipeDetector(config)
	if err != nil {
		return nil, fmt.Errorf("landmark detector: %w", err)
	}
	logrus.Info("Using MediaPipe hand and face detection")
	return mp, nil
}

// Input queues a key press from outside the loop (tray, HTTP API). It never
// blocks and reports whether the key was accepted.
func (a *App) Input(key int) bool {
	select {
	case a.inputs <- key:
		return true
	default:
		logrus.WithField("key", string(rune(key))).Warn("Input queue full, dropping key")
		return false
	}
}

// Session returns a copy of the current session state. It is only safe to
// call from the loop goroutine or after Run has returned.
func (a *App) Session() gesture.Session {
	return *a.session
}

// SessionID returns the journal ID of the current run, if journaling is on.
func (a *App) SessionID() string {
	return a.sessionID
}

// Frames returns how many frames were processed.
func (a *App) Frames() uint64 {
	return a.frames
}

// Close releases the camera, renderer and detector. Only the first call
// does any work; later calls return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		if err := a.config.Camera.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close camera: %w", err))
		}
		if err := a.config.Renderer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close renderer: %w", err))
		}
		if err := a.config.Detector.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close detector: %w", err))
		}
		a.closeErr = errors.Join(errs...)
		logrus.Info("Resources released")
	})
	return a.closeErr
}

// beginSession starts the journal entry for this run.
func (a *App) beginSession() {
	a.startedAt = time.Now()
	if a.config.Store == nil {
		return
	}

	sess := &store.Session{InitialMode: a.session.Mode.Name()}
	if err := a.config.Store.Sessions().Create(sess); err != nil {
		logrus.WithError(err).Warn("Failed to record session start")
		return
	}
	a.sessionID = sess.ID
	logrus.WithField("session", sess.ID).Debug("Session started")
}

// endSession closes the journal entry with the final mode.
func (a *App) endSession() {
	if a.config.Store == nil || a.sessionID == "" {
		return
	}
	if err := a.config.Store.Sessions().End(a.sessionID, a.session.Mode.Name()); err != nil {
		logrus.WithError(err).Warn("Failed to record session end")
	}
}

// record journals and publishes applied discrete events.
func (a *App) record(events []gesture.Event) {
	for _, ev := range events {
		x, y := a.dispatcher.Target(ev)
		if ev.Kind == gesture.CursorMove {
			a.cursorX, a.cursorY = x, y
			continue
		}

		a.lastEvent = ev.Kind.String()

		if a.config.Store != nil && a.sessionID != "" {
			err := a.config.Store.Events().Record(&store.Event{
				SessionID: a.sessionID,
				Kind:      ev.Kind.String(),
				Source:    ev.Source.String(),
				X:         x,
				Y:         y,
			})
			if err != nil {
				logrus.WithError(err).Warn("Failed to record event")
			}
		}

		if a.config.Hub != nil {
			a.config.Hub.Publish(monitor.Message{
				Type:   monitor.TypeEvent,
				Kind:   ev.Kind.String(),
				Source: ev.Source.String(),
				X:      x,
				Y:      y,
			})
		}

		if a.config.OnEvent != nil {
			a.config.OnEvent(ev)
		}
	}
}

// switchMode applies a mode key and reports the change to observers.
func (a *App) switchMode(key int) {
	if !a.session.SwitchMode(key) {
		return
	}
	mode := a.session.Mode
	logrus.WithField("mode", mode.Name()).Info("Mode switched")

	if a.config.Store != nil && a.sessionID != "" {
		err := a.config.Store.ModeChanges().Record(&store.ModeChange{
			SessionID: a.sessionID,
			Mode:      mode.Name(),
		})
		if err != nil {
			logrus.WithError(err).Warn("Failed to record mode change")
		}
	}

	if a.config.Hub != nil {
		a.config.Hub.Publish(monitor.Message{Type: monitor.TypeMode, Mode: mode.Name()})
	}

	if a.config.OnModeChange != nil {
		a.config.OnModeChange(mode)
	}
	a.publishStatus()
}

// publishStatus refreshes the hub snapshot.
func (a *App) publishStatus() {
	if a.config.Hub == nil {
		return
	}
	a.config.Hub.SetStatus(monitor.Status{
		SessionID:       a.sessionID,
		Mode:            a.session.Mode.Name(),
		Dragging:        a.session.Dragging,
		ScrollCount:     a.session.ScrollCount,
		ScrollDirection: a.session.ScrollDirection,
		Frames:          a.frames,
		CursorX:         a.cursorX,
		CursorY:         a.cursorY,
		LastEvent:       a.lastEvent,
		StartedAt:       a.startedAt,
	})
}
