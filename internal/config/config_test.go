package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/products-api/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("PRODUCTS_PRIMARY.ENV", "test")
	t.Setenv("PRODUCTS_SERVER.PORT", "8080")
	t.Setenv("PRODUCTS_SERVER.READ_TIMEOUT", "30")
	t.Setenv("PRODUCTS_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("PRODUCTS_SERVER.IDLE_TIMEOUT", "60")
}

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults for optional blocks", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 30, cfg.Server.ReadTimeout)
		assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, config.DefaultNameCheckDelay, cfg.Validation.NameCheckDelay)
		assert.Equal(t, config.DefaultServiceDelay, cfg.Features.ServiceDelay)
		assert.Zero(t, cfg.Validation.MaxConcurrentRules)

		require.NotNil(t, cfg.Observability)
		assert.Equal(t, config.ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "test", cfg.Observability.Environment)
		assert.False(t, cfg.Observability.NewRelicEnabled())
	})

	t.Run("reads explicit values", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PRODUCTS_SERVER.CORS_ALLOWED_ORIGINS", "http://a.dev,http://b.dev")
		t.Setenv("PRODUCTS_VALIDATION.MAX_CONCURRENT_RULES", "4")
		t.Setenv("PRODUCTS_VALIDATION.NAME_CHECK_DELAY", "0s")
		t.Setenv("PRODUCTS_FEATURES.SERVICE_DELAY", "250ms")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a.dev", "http://b.dev"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, 4, cfg.Validation.MaxConcurrentRules)
		assert.Equal(t, time.Duration(0), cfg.Validation.NameCheckDelay)
		assert.Equal(t, 250*time.Millisecond, cfg.Features.ServiceDelay)
	})

	t.Run("fails without required values", func(t *testing.T) {
		t.Setenv("PRODUCTS_PRIMARY.ENV", "test")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PRODUCTS_OBSERVABILITY.LOGGING.LEVEL", "verbose")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "invalid logging level")
	})
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  string
		set  string
		want string
	}{
		{name: "production default", env: "production", want: "info"},
		{name: "development default", env: "development", want: "debug"},
		{name: "explicit level wins", env: "production", set: "warn", want: "warn"},
		{name: "unknown env default", env: "staging", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultObservabilityConfig()
			cfg.Environment = tt.env
			cfg.Logging.Level = tt.set

			assert.Equal(t, tt.want, cfg.GetLogLevel())
		})
	}
}
