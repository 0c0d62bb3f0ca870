// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), applies defaults for
// optional blocks and validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (validation, features, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: PRODUCTS_
	- Keys are normalized (lowercased, prefix removed)
	- Nested struct fields are mapped via "dot notation" using the "." delimiter
	  e.g. PRODUCTS_SERVER.PORT -> server.port -> Config.Server.Port
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "PRODUCTS_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Validation    ValidationConfig     `koanf:"validation"`
	Features      FeaturesConfig       `koanf:"features"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// ValidationConfig tunes the request validation engine.
type ValidationConfig struct {
	// MaxConcurrentRules bounds how many rules of one argument are evaluated
	// at the same time. Zero means unbounded.
	MaxConcurrentRules int `koanf:"max_concurrent_rules" validate:"min=0"`

	// NameCheckDelay simulates the latency of the asynchronous product name
	// lookup performed by the add-product ruleset.
	NameCheckDelay time.Duration `koanf:"name_check_delay" validate:"min=0s"`
}

// FeaturesConfig holds settings for the feature services.
type FeaturesConfig struct {
	// ServiceDelay is the artificial latency of the stub product services.
	ServiceDelay time.Duration `koanf:"service_delay" validate:"min=0s"`
}

// Defaults used when the corresponding variables are not set.
const (
	DefaultNameCheckDelay = time.Second
	DefaultServiceDelay   = 2 * time.Second
)

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix PRODUCTS_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Applies defaults for optional blocks
//   - Validates struct tags, then the observability block's own rules
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

		// List values are comma separated, e.g. "http://a.dev,http://b.dev".
		if key == "server.cors_allowed_origins" {
			return key, strings.Split(value, ",")
		}

		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults(k)

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment are forced so telemetry stays consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional settings that were not provided.
//
// Durations are only defaulted when the key is absent, so an explicit "0s"
// disables the simulated latency.
func (c *Config) applyDefaults(k *koanf.Koanf) {
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	if !k.Exists("validation.name_check_delay") {
		c.Validation.NameCheckDelay = DefaultNameCheckDelay
	}

	if !k.Exists("features.service_delay") {
		c.Features.ServiceDelay = DefaultServiceDelay
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}
