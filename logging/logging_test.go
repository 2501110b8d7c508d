package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want zapcore.Level
	}{
		{"explicit_warn", Config{Level: "warn"}, zapcore.WarnLevel},
		{"default_production", Config{}, zapcore.InfoLevel},
		{"default_development", Config{Development: true}, zapcore.DebugLevel},
		{"explicit_error_development", Config{Development: true, Level: "error"}, zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.cfg)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	l, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.Nil(t, l)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l, err := New(Config{})
	require.NoError(t, err)
	assert.Same(t, l, OrNop(l))
}
