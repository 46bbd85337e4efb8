package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	return NewWithWriter(os.Stdout)
}

func NewWithWriter(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", "mastery-service").
		Logger()
}

// Nop is used by tests that do not assert on log output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

var Module = fx.Provide(New)
