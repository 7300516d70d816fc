package utils

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogLevelHonorsEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		env      string
		want     zapcore.Level
	}{
		{"explicit warn", "warn", "development", zapcore.WarnLevel},
		{"explicit error in production", "error", "production", zapcore.ErrorLevel},
		{"unset in development", "", "development", zapcore.DebugLevel},
		{"unset in production", "", "production", zapcore.InfoLevel},
		{"garbage falls back", "loud", "production", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("ENV", tt.env)
			if got := logLevel(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
