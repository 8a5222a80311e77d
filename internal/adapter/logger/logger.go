package logger

import (
	"fmt"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "pointsweep"

// NewLogger builds a zap logger for the configured mode and level.
// Every entry carries the service name so pipeline logs can be filtered
// out of shared sinks.
func NewLogger(conf *config.App) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level: %w", err)
	}

	if conf.Mode == config.AppModeDevelop {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = lvl
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": serviceName}
	return cfg.Build()
}
