// Package config loads runtime settings from an optional INI file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// DirName is the per-user data directory under $HOME.
const DirName = ".nayana"

// Config holds the runtime environment. Gesture thresholds are not
// configurable here.
type Config struct {
	Camera   CameraConfig   `ini:"camera"`
	Display  DisplayConfig  `ini:"display"`
	Detector DetectorConfig `ini:"detector"`
	Server   ServerConfig   `ini:"server"`
	Store    StoreConfig    `ini:"store"`
	Log      LogConfig      `ini:"log"`
}

// CameraConfig selects and sizes the capture device.
type CameraConfig struct {
	Device int  `ini:"device"`
	Width  int  `ini:"width"`
	Height int  `ini:"height"`
	FPS    int  `ini:"fps"`
	Mirror bool `ini:"mirror"`
}

// DisplayConfig controls the preview window and tray icon.
type DisplayConfig struct {
	Headless bool   `ini:"headless"`
	Tray     bool   `ini:"tray"`
	Title    string `ini:"title"`
}

// DetectorConfig tunes the landmark service.
type DetectorConfig struct {
	Script          string  `ini:"script"`
	MaxHands        int     `ini:"max_hands"`
	MinConfidence   float64 `ini:"min_confidence"`
	MinTrackingConf float64 `ini:"min_tracking_confidence"`
}

// ServerConfig holds the monitoring API address. Empty disables the API.
type ServerConfig struct {
	Listen string `ini:"listen"`
}

// StoreConfig locates the session journal. Empty path disables it.
type StoreConfig struct {
	Path string `ini:"path"`
}

// LogConfig sets the log level name understood by logrus.
type LogConfig struct {
	Level string `ini:"level"`
}

// Dir returns the per-user data directory, falling back to the working
// directory when $HOME cannot be determined.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.ini")
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			FPS:    30,
			Mirror: true,
		},
		Display: DisplayConfig{
			Title: "Nayana",
		},
		Detector: DetectorConfig{
			MaxHands:        2,
			MinConfidence:   0.7,
			MinTrackingConf: 0.7,
		},
		Store: StoreConfig{
			Path: filepath.Join(Dir(), "nayana.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config %s: %w", path, err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := f.StrictMapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Detector.Script = expandHome(cfg.Detector.Script)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Camera.Device < 0 {
		return fmt.Errorf("camera device must not be negative, got %d", c.Camera.Device)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 || c.Camera.FPS < 0 {
		return errors.New("camera width, height and fps must not be negative")
	}
	if c.Detector.MaxHands < 0 {
		return fmt.Errorf("detector max_hands must not be negative, got %d", c.Detector.MaxHands)
	}
	for name, v := range map[string]float64{
		"min_confidence":          c.Detector.MinConfidence,
		"min_tracking_confidence": c.Detector.MinTrackingConf,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("detector %s must be within [0, 1], got %g", name, v)
		}
	}
	return nil
}

// Save writes c to path, creating the parent directory.
func (c Config) Save(path string) error {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, &c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
