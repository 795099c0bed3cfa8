package picking

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the package logger. It discards everything until SetLogger is
// called.
var logger = zerolog.Nop()

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return &logger
}

// NewLogger builds a logger from cfg: JSON lines to stderr, or a human
// readable console writer when cfg.PrettyLog is set.
func NewLogger(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.PrettyLog {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("module", "picking").Logger()
}
