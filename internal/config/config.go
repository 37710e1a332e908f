// Package config loads service configuration from layered sources:
// built-in defaults, an optional YAML file, then environment variables with
// the CATALOG_ prefix (highest priority). CATALOG_SERVER_PORT overrides
// server.port, CATALOG_MEDIA_BASE_URL overrides media.base_url, and so on.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the service's environment variables.
const EnvPrefix = "CATALOG_"

// ConfigPathEnvVar points at an explicit config file location.
const ConfigPathEnvVar = EnvPrefix + "CONFIG"

// defaultConfigPaths are searched in order when no explicit path is given.
var defaultConfigPaths = []string{
	"catalog.yaml",
	"/etc/catalog/catalog.yaml",
}

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Spanner SpannerConfig `koanf:"spanner"`
	Media   MediaConfig   `koanf:"media"`
	Auth    AuthConfig    `koanf:"auth"`
	Cache   CacheConfig   `koanf:"cache"`
	Log     LogConfig     `koanf:"log"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	AllowedOrigins  []string      `koanf:"allowed_origins" validate:"min=1"`
	WriteRateLimit  int           `koanf:"write_rate_limit" validate:"min=1"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SpannerConfig identifies the Cloud Spanner database.
type SpannerConfig struct {
	// Database is the fully qualified path:
	// projects/<p>/instances/<i>/databases/<d>.
	Database string `koanf:"database" validate:"required"`
}

// MediaConfig points at the external image host.
type MediaConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// AuthConfig controls bearer-token verification on mutation endpoints.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required,min=16"`
	Issuer    string `koanf:"issuer"`
}

// CacheConfig controls the listing result cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			WriteRateLimit:  30,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Media: MediaConfig{
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the layered configuration. path may be empty, in which case the
// default locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransform maps environment variable names to config paths. The config
// tree is exactly two levels deep, so the first underscore separates the
// section and the rest keeps its underscores:
//
//	CATALOG_SERVER_PORT             -> server.port
//	CATALOG_MEDIA_BASE_URL          -> media.base_url
//	CATALOG_SERVER_WRITE_RATE_LIMIT -> server.write_rate_limit
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return section
	}
	return section + "." + rest
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}
	for _, candidate := range defaultConfigPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Addr returns the host:port string for the HTTP listener.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
