// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logger. verbose forces debug level, which
// includes the per-frame gesture signals.
func Setup(level string, verbose bool) error {
	return setup(logrus.StandardLogger(), os.Stderr, level, verbose)
}

func setup(logger *logrus.Logger, out io.Writer, level string, verbose bool) error {
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		return nil
	}

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	return nil
}
