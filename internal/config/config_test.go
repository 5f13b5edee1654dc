package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("database_url", "postgres://localhost/eventhub")
	v.Set("jwt_secret", "secret")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, StoreDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.Escrow.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("store_driver", "MEMORY")
	v.Set("jwt_secret", "secret")
	v.Set("api_prefix", "v1/")
	v.Set("cors_allowed_origins", "https://a.example.com, https://b.example.com,")
	v.Set("rate_limit_window", "2m")
	v.Set("escrow_base_url", "https://escrow.example.com/api/")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Database.Driver)
	assert.Equal(t, "/v1", cfg.Server.APIPrefix)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "https://escrow.example.com/api", cfg.Escrow.BaseURL)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		wantErr  error
	}{
		{
			name:     "postgres without url",
			settings: map[string]any{"jwt_secret": "s"},
			wantErr:  ErrMissingDatabaseURL,
		},
		{
			name:     "missing secret",
			settings: map[string]any{"store_driver": "memory"},
			wantErr:  ErrMissingJWTSecret,
		},
		{
			name:     "unsupported algorithm",
			settings: map[string]any{"store_driver": "memory", "jwt_secret": "s", "jwt_alg": "RS256"},
			wantErr:  ErrInvalidJWTAlgorithm,
		},
		{
			name:     "unknown driver",
			settings: map[string]any{"store_driver": "mongo", "jwt_secret": "s"},
			wantErr:  ErrInvalidStoreDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.settings {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
