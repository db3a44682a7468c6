package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the process logger.
//   - level: trace, debug, info, warn, error, fatal, panic (unknown → info)
//   - format: "pretty" for console output, anything else for JSON lines
func Setup(level, format string) zerolog.Logger {
	return New(os.Stdout, level, format)
}

// New is Setup with an explicit sink, used by tests and CLIs.
func New(out io.Writer, level, format string) zerolog.Logger {
	writer := out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Str("service", "school-crm").
		Logger()
}

// Component derives a child logger tagged with the emitting component.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
