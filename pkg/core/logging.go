package core

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the structured logger used by the renderer and its collaborators
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "pathtracer",
	})
	l.SetLevel(level)
	return l
}

// ParseLevel converts a level name such as "debug" or "info" into a log level
func ParseLevel(name string) (log.Level, error) {
	return log.ParseLevel(name)
}

// DiscardLogger returns a logger that drops everything, for tests and quiet callers
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}

// LoggerOrDiscard returns l, or a discarding logger when l is nil
func LoggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return DiscardLogger()
	}
	return l
}
