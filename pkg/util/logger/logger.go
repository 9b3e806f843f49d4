// Package logger builds zap loggers for the tree applications.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

// Prm groups logger parameters. The zero value is a console logger at the
// info level.
type Prm struct {
	level    zapcore.Level
	encoding string
}

// SetLevelString sets the minimum level, one of "debug", "info", "warn",
// "error", "dpanic", "panic" and "fatal".
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets records encoding, "console" or "json".
func (p *Prm) SetEncoding(s string) error {
	switch s = strings.ToLower(s); s {
	case formatConsole, formatJSON:
		p.encoding = s
		return nil
	default:
		return fmt.Errorf("unsupported log encoding %q", s)
	}
}

// NewLogger returns a logger writing human-readable records with ISO8601
// timestamps to stderr.
func NewLogger(p Prm) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(p.level)
	c.Encoding = formatConsole
	if p.encoding != "" {
		c.Encoding = p.encoding
	}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.Sampling = nil

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return l, nil
}
