package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	DefaultConfigPath     = "config.yaml"
	DefaultAPIPort        = "8080"
	DefaultImplicitWaitMs = 10000
	DefaultScenarioDir    = "scenarios"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Version        string           `yaml:"version"`
	Debug          bool             `yaml:"debug"`
	Headless       bool             `yaml:"headless"`
	ApiPort        string           `yaml:"api-port"`
	ImplicitWaitMs int              `yaml:"implicit-wait-ms"`
	ClearCookies   bool             `yaml:"clear-cookies"`
	ScenarioDir    string           `yaml:"scenario-dir"`
	LogFile        string           `yaml:"log-file,omitempty"`
	Browser        AppConfigBrowser `yaml:"browser"`
}

type AppConfigBrowser struct {
	ChromePath  string   `yaml:"chrome-path"`
	Args        []string `yaml:"args"`
	UserDataDir string   `yaml:"user-data-dir,omitempty"`
	UserAgent   string   `yaml:"user-agent,omitempty"`
}

// LoadConfig reads the YAML configuration at path and fills in defaults.
// An empty path falls back to DefaultConfigPath.
func LoadConfig(path string) (*AppConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML document into an AppConfig and applies defaults.
func Parse(data []byte) (*AppConfig, error) {
	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	config.applyDefaults()
	if config.ImplicitWaitMs < 0 {
		return nil, fmt.Errorf("implicit-wait-ms must not be negative, got %d", config.ImplicitWaitMs)
	}
	return &config, nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	config := &AppConfig{Headless: true}
	config.applyDefaults()
	return config
}

func (c *AppConfig) applyDefaults() {
	if c.ApiPort == "" {
		c.ApiPort = DefaultAPIPort
	}
	if c.ImplicitWaitMs == 0 {
		c.ImplicitWaitMs = DefaultImplicitWaitMs
	}
	if c.ScenarioDir == "" {
		c.ScenarioDir = DefaultScenarioDir
	}
	if c.Browser.ChromePath == "" {
		c.Browser.ChromePath = os.Getenv("CHROME_BIN")
	}
}
