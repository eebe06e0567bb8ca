package logging

// Package logging builds the process-wide zap logger. Services receive the
// logger explicitly; nothing logs through a package global.

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs the pipeline logger. Console encoding keeps operator output
// readable on an HPC login node; verbose drops the level to debug.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
