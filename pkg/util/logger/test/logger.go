// Package test provides loggers for unit tests.
package test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewLogger returns a logger writing to t. Debug records are dropped
// unless debug is set.
func NewLogger(t testing.TB, debug bool) *zap.Logger {
	lvl := zap.InfoLevel
	if debug {
		lvl = zap.DebugLevel
	}
	return zaptest.NewLogger(t, zaptest.Level(lvl))
}
