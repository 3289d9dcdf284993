// Package common provides shared utilities for the TestDino MCP server.
package common

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string   `toml:"level" env:"LEVEL"`
	Format     string   `toml:"format" env:"FORMAT"`
	Outputs    []string `toml:"outputs" env:"OUTPUTS" envSeparator:","`
	FilePath   string   `toml:"file_path" env:"FILE_PATH"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}
