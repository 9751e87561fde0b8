package utils

import (
	"log"
	"sync"

	"chairbid/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. Use GetLogger.
var Logger *zap.Logger

var loggerOnce sync.Once

// NewLogger builds a JSON logger for production and a coloured console logger
// otherwise. level overrides the default (info in production, debug elsewhere)
// when it parses.
func NewLogger(production bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	return cfg.Build()
}

// InitializeLogger sets up the global logger from config once.
func InitializeLogger() {
	loggerOnce.Do(func() {
		l, err := NewLogger(config.IsProduction(), config.AppConfig.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		Logger = l
		zap.ReplaceGlobals(l)
	})
}

// GetLogger retrieves the global logger.
func GetLogger() *zap.Logger {
	InitializeLogger()
	return Logger
}
