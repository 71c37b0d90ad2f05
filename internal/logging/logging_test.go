package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"unbounded-life/internal/config"
)

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "console", resolveFormat("auto", true))
	assert.Equal(t, "json", resolveFormat("auto", false))
	assert.Equal(t, "json", resolveFormat("", false))
	assert.Equal(t, "console", resolveFormat("console", false))
	assert.Equal(t, "json", resolveFormat("json", true))
}

func TestZapConfig(t *testing.T) {
	cfg := zapConfig(config.LoggingConfig{Level: "debug", Format: "json"}, true)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())

	cfg = zapConfig(config.LoggingConfig{Level: "nonsense", Format: "console"}, false)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
	assert.True(t, cfg.DisableCaller)
}

func TestBuild(t *testing.T) {
	log, err := build(config.LoggingConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
