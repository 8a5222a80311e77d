package logger_test

import (
	"testing"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	l, err := logger.NewLogger(&config.App{Mode: config.AppModeProduction, LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	_, err = logger.NewLogger(&config.App{Mode: config.AppModeDevelop, LogLevel: "loud"})
	assert.Error(t, err)
}
