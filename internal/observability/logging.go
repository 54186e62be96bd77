// Package observability provides structured logging for simulator runs.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/champsim/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// Every entry carries the component field.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, component string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Batch runs log one line per champion; sampling would drop them.
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build(zap.Fields(zap.String("component", component)))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// RunLogger returns a child of logger tagged with the run's id and mode.
//
// Precondition: logger must be non-nil.
func RunLogger(logger *zap.Logger, runID uuid.UUID, mode string) *zap.Logger {
	return logger.With(zap.Stringer("run_id", runID), zap.String("mode", mode))
}
