package config

import "github.com/testdino/testdino-mcp/internal/common"

// Defaults shared with the command line help.
const (
	DefaultServerName = "@testdino/mcp"
	DefaultAPIURL     = "https://api.testdino.com"
	DefaultPort       = 4250
)

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      DefaultServerName,
			Transport: TransportStdio,
			Host:      "localhost",
			Port:      DefaultPort,
		},
		API: APIConfig{
			URL: DefaultAPIURL,
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console"},
		},
	}
}
