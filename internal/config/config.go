package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/testdino/testdino-mcp/internal/common"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "TESTDINO_"

// Transport names accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server" envPrefix:"MCP_"`
	API     APIConfig            `toml:"api" envPrefix:"API_"`
	Logging common.LoggingConfig `toml:"logging" envPrefix:"LOG_"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport" env:"TRANSPORT"`
	Host      string `toml:"host" env:"HOST"`
	Port      int    `toml:"port" env:"PORT"`
}

// APIConfig describes the remote TestDino API.
// Key is only read from the environment so tokens never live in config files.
type APIConfig struct {
	URL            string `toml:"url" env:"URL"`
	Key            string `toml:"-" env:"KEY"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// Timeout returns the HTTP client timeout. Zero means no client-side limit.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BaseURL returns URL without trailing slashes.
func (c APIConfig) BaseURL() string {
	return strings.TrimRight(c.URL, "/")
}

// Addr returns the listen address for the HTTP transport.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// A missing file is not an error; defaults and env still apply.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies TESTDINO_* environment variable overrides to config.
// Unset variables leave the current value untouched.
func applyEnvOverrides(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, transport string, port int, level string) {
	if transport != "" {
		config.Server.Transport = transport
	}
	if port > 0 {
		config.Server.Port = port
	}
	if level != "" {
		config.Logging.Level = level
	}
}

// Validate reports configuration the server cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported transport %q (want %s or %s)", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if c.API.BaseURL() == "" {
		return fmt.Errorf("api url must not be empty")
	}
	if c.Server.Transport == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}
