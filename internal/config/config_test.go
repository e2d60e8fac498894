package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://eventreg.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "ADMIN2025SECRET", cfg.AdminSecretCode)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/eventreg?sslmode=disable")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADMIN_SECRET_CODE", "letmein")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5432/eventreg?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "letmein", cfg.AdminSecretCode)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "SESSION_SECRET"},
		{"short secret", map[string]string{"SESSION_SECRET": "short"}, "at least 16"},
		{"bad scheme", map[string]string{"SESSION_SECRET": testSecret, "DATABASE_URL": "mysql://db/app"}, "unsupported scheme"},
		{"postgres without host", map[string]string{"SESSION_SECRET": testSecret, "DATABASE_URL": "postgres:///app"}, "missing host"},
		{"bad timezone", map[string]string{"SESSION_SECRET": testSecret, "APP_TIMEZONE": "Nowhere/City"}, "APP_TIMEZONE"},
		{"bad level", map[string]string{"SESSION_SECRET": testSecret, "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad format", map[string]string{"SESSION_SECRET": testSecret, "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
