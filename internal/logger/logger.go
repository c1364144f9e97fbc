package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func New(level string) *zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter falls back to info level when level is empty or unknown.
func NewWithWriter(out io.Writer, level string) *zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	log := zerolog.New(out).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", "booking-notifier").
		Logger()

	return &log
}
