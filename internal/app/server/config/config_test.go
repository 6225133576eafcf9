package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":3000", cfg.Server.RunAddress)
	assert.Equal(t, DriverFS, cfg.Storage.Driver)
	assert.Equal(t, "entries", cfg.Storage.EntriesDir)
	assert.Equal(t, AuthNone, cfg.Auth.Mode)
	assert.Equal(t, SecretKey, cfg.Auth.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.ScopeByOwner())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/notive.db")
	t.Setenv("AUTH_MODE", "legacy")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local ,")
	t.Setenv("VALIDATE_DATE_KEYS", "true")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/notive.db", cfg.Storage.SQLitePath)
	assert.Equal(t, AuthLegacy, cfg.Auth.Mode)
	assert.True(t, cfg.ScopeByOwner())
	assert.True(t, cfg.Entry.ValidateDateKeys)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown driver",
			env:  map[string]string{"STORAGE_DRIVER": "mongo"},
		},
		{
			name: "postgres without dsn",
			env:  map[string]string{"STORAGE_DRIVER": "postgres"},
		},
		{
			name: "unknown auth mode",
			env:  map[string]string{"AUTH_MODE": "oauth"},
		},
		{
			name: "jwt with zero ttl",
			env:  map[string]string{"AUTH_MODE": "jwt", "SESSION_TTL": "0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(viper.New())
			assert.Error(t, err)
		})
	}
}
