// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Instruction
// tracing is logged at debug level and therefore enables it.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug, opts.Trace:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
