// Package logging builds the zerolog logger shared by the binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/config"
)

// New builds a logger from the logging configuration. The returned closer
// owns the log file when the output points at one and is a no-op for the
// standard streams.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file %s: %w", cfg.Output, err)
		}
		out = f
		closer = f
	}

	if strings.ToLower(cfg.Format) == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeFormat(cfg),
			NoColor:    cfg.Output != "stdout" && cfg.Output != "stderr",
		}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

func timeFormat(cfg config.LoggingConfig) string {
	if cfg.TimeFormat != "" {
		return cfg.TimeFormat
	}
	return time.RFC3339
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
