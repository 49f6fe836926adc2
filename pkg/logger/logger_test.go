package logger

import (
	"microhabits_backend/internal/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetMode(t *testing.T) {
	SetMode("debug")
	assert.Equal(t, zap.DebugLevel, Level())

	SetMode("release")
	assert.Equal(t, zap.InfoLevel, Level())
}

func TestInitLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug", LogFile: filepath.Join(t.TempDir(), "app.log")}}
	InitLogger(cfg)

	assert.NotNil(t, Log)
	assert.True(t, Log.Core().Enabled(zap.DebugLevel))
	SetMode("release")
	assert.False(t, Log.Core().Enabled(zap.DebugLevel))
}
