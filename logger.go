package flat2d

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can race with asset loaders logging from other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.Default())
}

// SetLogger configures the logger used by flat2d and flat2d/ecs.
// Pass nil to restore slog.Default().
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame batch statistics
//   - [slog.LevelWarn]: quads dropped because their assets are not loaded
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
