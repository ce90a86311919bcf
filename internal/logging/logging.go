// Package logging wires up the application logger.
package logging

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. With debug set, the development config
// is used (human-readable, DEBUG level); otherwise production JSON at INFO.
// Falls back to a no-op logger if construction fails.
func New(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
