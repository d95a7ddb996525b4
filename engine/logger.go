// Package engine holds ambient runtime facilities shared by the core and
// the REPL front-end — currently just the logger.
package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.Mutex
)

// Logger returns the package-level logger. It is a no-op logger until
// SetDebug(true) is called, matching the REPL's default of silent
// operation unless -debug is passed on the command line.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetDebug switches the logger between a no-op and a development logger
// that writes debug-level traces to stderr.
func SetDebug(enabled bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if !enabled {
		logger = zap.NewNop()
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}
