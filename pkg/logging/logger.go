package logging

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

// Get returns the current diagnostic logger, building the stderr default on
// first use.
func Get() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}
	return logger
}

// Set replaces the diagnostic logger. Pass nil to restore the default on
// the next Get.
func Set(l *slog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// WithComponent creates a logger tagged with the originating component.
//
// Example:
//
//	log := logging.WithComponent("multilock")
//	log.Debug("acquisition retrying", "rounds", n)
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}
