package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBoard_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_URL", "API_TIMEOUT", "SESSION_TTL", "MAX_SESSIONS", "SECURE_COOKIE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadBoard()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.False(t, cfg.SecureCookie)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadBoard_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "http://api:8000")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("MAX_SESSIONS", "50")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadBoard()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://api:8000", cfg.APIURL)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 50, cfg.MaxSessions)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadBoard_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "API_TIMEOUT", value: "soon"},
		{key: "SESSION_TTL", value: "10"},
		{key: "MAX_SESSIONS", value: "lots"},
		{key: "SECURE_COOKIE", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadBoard()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadAPI(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		wantErr bool
	}{
		{name: "default store", store: ""},
		{name: "postgres", store: StorePostgres},
		{name: "sqlite", store: StoreSQLite},
		{name: "unknown store", store: "mongo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE", tt.store)
			t.Setenv("DB_NAME", "")

			cfg, err := LoadAPI()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.store == "" {
				assert.Equal(t, StoreMemory, cfg.Store)
			} else {
				assert.Equal(t, tt.store, cfg.Store)
			}
			assert.Equal(t, "activities", cfg.Database.DBName)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "activities", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=activities sslmode=disable", c.DSN())
}
