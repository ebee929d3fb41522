package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration accepted by the CLI.
// Every field overrides the corresponding flag/env default when set.
type FileConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	TimeoutSecs int     `yaml:"timeout_seconds"`
	MaxRetries  *int    `yaml:"max_retries"`
	RetryDelay  float64 `yaml:"retry_delay_seconds"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
