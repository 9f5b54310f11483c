package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_URL", "SERVER_ADDR", "GIN_MODE", "LOG_LEVEL", "CONTENT_DIR", "SESSION_SECRET",
	"CONTACT_DELAY", "CONTACT_RESET_AFTER", "CONTACT_RATE_RPS", "CONTACT_RATE_BURST",
	"CONTACT_RATE_WINDOW", "CONTENT_WATCH", "REDIS_ADDR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ContentDir)
	assert.Equal(t, time.Second, cfg.ContactDelay)
	assert.Equal(t, 3*time.Second, cfg.ContactResetAfter)
	assert.InDelta(t, 0.2, cfg.ContactRateRPS, 1e-9)
	assert.Equal(t, 3, cfg.ContactRateBurst)
	assert.Equal(t, time.Minute, cfg.ContactRateWindow)
	assert.False(t, cfg.ContentWatch)
	assert.Empty(t, cfg.RedisAddr)
	assert.True(t, cfg.UsingDevSecret())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("CONTENT_DIR", "/srv/blog")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("CONTACT_DELAY", "250ms")
	t.Setenv("CONTACT_RATE_BURST", "10")
	t.Setenv("CONTENT_WATCH", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.Equal(t, "/srv/blog", cfg.ContentDir)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.False(t, cfg.UsingDevSecret())
	assert.Equal(t, 250*time.Millisecond, cfg.ContactDelay)
	assert.Equal(t, 10, cfg.ContactRateBurst)
	assert.True(t, cfg.ContentWatch)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"CONTACT_DELAY", "-1s"},
		{"CONTACT_RESET_AFTER", "-5s"},
		{"CONTACT_RATE_RPS", "0"},
		{"CONTACT_RATE_BURST", "-1"},
		{"CONTENT_WATCH", "true"},
		{"CONTACT_DELAY", "abc"},
		{"CONTACT_RESET_AFTER", "soon"},
		{"CONTACT_RATE_WINDOW", "1 minute"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
