package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/nayana/internal/action"
	"github.com/ayusman/nayana/internal/app"
	"github.com/ayusman/nayana/internal/capture"
	"github.com/ayusman/nayana/internal/config"
	"github.com/ayusman/nayana/internal/detector"
	"github.com/ayusman/nayana/internal/gesture"
	"github.com/ayusman/nayana/internal/monitor"
	"github.com/ayusman/nayana/internal/overlay"
	"github.com/ayusman/nayana/internal/server"
	"github.com/ayusman/nayana/internal/store"
	"github.com/ayusman/nayana/internal/tray"
)

// run wires the collaborators from cfg and drives the control loop until
// quit, interrupt or camera loss.
func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg = trayDisplay(cfg, runtime.GOOS)

	st := openStore(cfg.Store.Path)
	if st != nil {
		defer st.Close()
	}

	hub := monitor.NewHub()

	var t *tray.Tray
	if cfg.Display.Tray {
		t = tray.New()
	}

	det, err := app.NewDetector(detectorConfig(cfg))
	if err != nil {
		return err
	}

	a, err := app.New(app.Config{
		Camera: capture.NewCamera(capture.Config{
			DeviceID: cfg.Camera.Device,
			Width:    cfg.Camera.Width,
			Height:   cfg.Camera.Height,
			FPS:      cfg.Camera.FPS,
			Mirror:   cfg.Camera.Mirror,
		}),
		Detector:     det,
		Pointer:      action.NewRobotPointer(),
		Renderer:     newRenderer(cfg),
		Store:        st,
		Hub:          hub,
		OnModeChange: onModeChange(t),
		OnEvent:      onEvent(t),
	})
	if err != nil {
		det.Close()
		return err
	}

	if cfg.Server.Listen != "" {
		srv := server.New(server.Config{
			Store: st,
			Hub:   hub,
			Input: a.Input,
		})
		go func() {
			if err := srv.Serve(ctx, cfg.Server.Listen); err != nil {
				logrus.WithError(err).Error("HTTP API stopped")
			}
		}()
	}

	if t == nil {
		return a.Run(ctx)
	}

	// The tray owns the main thread; the loop runs beside it and stops the
	// tray when it returns. The preview window is created and polled from
	// the loop, so the loop keeps one OS thread for its whole life.
	t.OnKey(func(key int) { a.Input(key) })
	errCh := make(chan error, 1)
	t.OnReady(func() {
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			errCh <- a.Run(ctx)
			t.Quit()
		}()
	})
	t.Run()

	return <-errCh
}

// trayDisplay turns the preview window off when the tray is on under macOS.
// HighGUI windows only work on the main thread there, and systray holds it.
func trayDisplay(cfg config.Config, goos string) config.Config {
	if cfg.Display.Tray && !cfg.Display.Headless && goos == "darwin" {
		logrus.Warn("Preview window disabled: the tray owns the main thread on macOS")
		cfg.Display.Headless = true
	}
	return cfg
}

func openStore(path string) *store.Store {
	if path == "" {
		return nil
	}
	st, err := store.New(path)
	if err != nil {
		logrus.WithError(err).Warn("Session journal disabled")
		return nil
	}
	logrus.WithField("path", path).Debug("Session journal opened")
	return st
}

func detectorConfig(cfg config.Config) detector.Config {
	dc := detector.DefaultConfig()
	if cfg.Detector.MaxHands > 0 {
		dc.MaxHands = cfg.Detector.MaxHands
	}
	if cfg.Detector.MinConfidence > 0 {
		dc.MinConfidence = cfg.Detector.MinConfidence
	}
	if cfg.Detector.MinTrackingConf > 0 {
		dc.MinTrackingConf = cfg.Detector.MinTrackingConf
	}
	dc.ScriptPath = cfg.Detector.Script
	return dc
}

func newRenderer(cfg config.Config) overlay.Renderer {
	if cfg.Display.Headless {
		return overlay.NewHeadless()
	}
	return overlay.NewWindow(cfg.Display.Title)
}

func onModeChange(t *tray.Tray) func(gesture.Mode) {
	return func(m gesture.Mode) {
		if t != nil {
			t.SetMode(m)
		}
	}
}

func onEvent(t *tray.Tray) func(gesture.Event) {
	return func(ev gesture.Event) {
		if t != nil {
			t.SetLastEvent(fmt.Sprintf("%s (%s)", ev.Kind, ev.Source))
		}
	}
}
