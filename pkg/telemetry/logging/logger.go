// Package logging configures the process-wide structured logger.
//
// The server logs through log/slog everywhere; this package translates the
// logging section of the configuration into an slog handler and installs it
// as the default logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
)

// Setup builds a logger from the configuration and installs it as the slog
// default. The returned logger is the same instance slog.Default() will
// hand out afterwards.
func Setup(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json", "":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q (must be json or text)", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// ParseLevel converts a configuration level string to an slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", level)
	}
}
