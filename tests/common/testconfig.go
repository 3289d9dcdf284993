package common

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// TestConfig holds integration test settings read from test_config.toml.
type TestConfig struct {
	Results struct {
		Dir string `toml:"dir"`
	} `toml:"results"`
	WireMock struct {
		Image string `toml:"image"`
		// URL points at an already running WireMock; no container is started.
		URL string `toml:"url"`
	} `toml:"wiremock"`
}

var (
	globalConfig     *TestConfig
	globalConfigOnce sync.Once
)

func LoadTestConfig() *TestConfig {
	globalConfigOnce.Do(func() {
		globalConfig = &TestConfig{}
		globalConfig.Results.Dir = "tests/results"
		globalConfig.WireMock.Image = "wiremock/wiremock:3.9.1"

		configPaths := []string{
			"tests/test_config.toml",
			"test_config.toml",
		}

		if wd, err := os.Getwd(); err == nil {
			if filepath.Base(wd) == "api" {
				configPaths = append([]string{filepath.Join("..", "test_config.toml")}, configPaths...)
			}
		}

		for _, path := range configPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := toml.Unmarshal(data, globalConfig); err == nil {
				return
			}
		}
	})
	return globalConfig
}

// GetMockURL returns the URL of an externally managed WireMock, if any.
func GetMockURL() string {
	if url := os.Getenv("TESTDINO_TEST_MOCK_URL"); url != "" {
		return url
	}
	return LoadTestConfig().WireMock.URL
}

// GetResultsDir returns the directory container logs are collected into.
func GetResultsDir() string {
	if dir := os.Getenv("TESTDINO_TEST_RESULTS_DIR"); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}
	return LoadTestConfig().Results.Dir
}
