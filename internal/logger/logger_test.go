package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.LogConfig
		env  string
	}{
		{name: "blank development", env: "development"},
		{name: "blank production", env: "production"},
		{name: "stderr debug console", cfg: models.LogConfig{Level: "debug", Format: "console", Output: "stderr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg, tt.env)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_ProductionDefaultsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecomdash.log")

	l, err := New(models.LogConfig{Output: path}, "production")
	require.NoError(t, err)

	l.Info("dataset loaded")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"dataset loaded"`)
	assert.Contains(t, string(data), `"logger":"ecomdash"`)
}

func TestNew_UnwritablePath(t *testing.T) {
	_, err := New(models.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "ecomdash.log")}, "")
	assert.Error(t, err)
}

func TestNew_Level(t *testing.T) {
	l, err := New(models.LogConfig{Level: "debug", Output: "stderr"}, "production")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(models.LogConfig{Output: "stderr"}, "development")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
