package meadow

import (
	"io"

	"github.com/sirupsen/logrus"
)

// logger is the active package logger. meadow is single-threaded, so the
// pointer is swapped without synchronization; call SetLogger during bootstrap.
var logger = newNopLogger()

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger configures the logger for meadow and all its sub-packages.
// By default, meadow produces no log output. Pass nil to restore the
// default silent behavior.
//
// Log levels used by meadow:
//   - Trace: construction and teardown of caches, renderers and cameras
//   - Debug: loads, cache hits on Load, unloads and clears
//   - Warn: cache misses on Get, unloading keys that are not loaded
//   - Error: failed loads, invalid regions and rejected backend calls
//
// Example:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	meadow.SetLogger(l)
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	logger = l
}

// Logger returns the current logger used by meadow.
// Backend packages call this to share the same configuration.
func Logger() *logrus.Logger {
	return logger
}
