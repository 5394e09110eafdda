// Package logger provides verbose logging for the hedwig CLI.
// When verbose mode is enabled via the --verbose flag, progress messages
// are printed to stderr through zerolog. Without it only Error reaches the
// output; Debug, Section, Info and Warn are dropped.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatText
	log               = build()
)

// build creates the zerolog logger for the current settings (caller holds mu
// or runs during package init).
func build() zerolog.Logger {
	var w io.Writer = output
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: "15:04:05"}
	}

	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build()
}

// SetFormat selects console text or JSON lines. Unknown values select text.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	format = f
	log = build()
}

// Logger returns the underlying zerolog logger for structured fields.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug prints a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	l := Logger()
	l.Debug().Msgf(msg, args...)
}

// Section prints a section header. It is dropped unless verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Info().Str("section", name).Msgf("=== %s ===", name)
}

// Info prints an informational message. It is dropped unless verbose mode
// is enabled, so anything a user must see belongs in command output instead.
func Info(msg string, args ...any) {
	l := Logger()
	l.Info().Msgf(msg, args...)
}

// Warn prints a warning message. It is dropped unless verbose mode is enabled.
func Warn(msg string, args ...any) {
	l := Logger()
	l.Warn().Msgf(msg, args...)
}

// Error prints an error regardless of verbose mode.
func Error(err error, msg string, args ...any) {
	l := Logger()
	l.Error().Err(err).Msgf(msg, args...)
}
