package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init builds the global logger for the given environment.
// "production" emits JSON; anything else emits colored console output
// suitable for local development. Level falls back to the config
// default when it cannot be parsed.
func Init(environment string, level string) error {
	var cfg zap.Config

	switch environment {
	case "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if parsed, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	globalLogger = built
	return nil
}

// Get returns the global logger. Before Init it returns a no-op
// logger so early callers never panic.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// Sync flushes buffered entries. Safe to call before Init.
func Sync() {
	if globalLogger != nil {
		globalLogger.Sync()
	}
}
