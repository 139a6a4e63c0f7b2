// Package logger holds the process-global logger shared by gomilp
// components.
//
// The default logger writes human-readable output to stdout through
// github.com/rs/zerolog and is silenced while running under "go test".
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set replaces the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable turns the global logger off.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the global logger; components derive sub-loggers from it.
func Logger() zerolog.Logger {
	return logger
}
