package core

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger replaces the global logger with a production logger at level.
func NewLogger(level string) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		zap.L().Warn("Invalid log level, keeping info", zap.String("level", level))
		parsed = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}
	zap.ReplaceGlobals(logger)
}
