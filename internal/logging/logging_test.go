package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "focusd", cfg.Fields["service"])
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"json format", Config{Level: "info", Format: "json"}, false},
		{"console format", Config{Level: "debug", Format: "console"}, false},
		{"bad format", Config{Level: "info", Format: "logfmt"}, true},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"empty field key", Config{Level: "info", Format: "json", Fields: map[string]string{"": "x"}}, true},
		{"empty field value", Config{Level: "info", Format: "json", Fields: map[string]string{"k": ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New(&Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(&Config{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&Config{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	_, err = parseLevel("trace")
	assert.Error(t, err)
}
