package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppName names the configuration directory
const AppName = "tui-jsonviewer"

// Config holds application configuration
type Config struct {
	Theme       string `toml:"theme"`
	IndentWidth int    `toml:"indent_width"`
	Mouse       bool   `toml:"mouse"`
	FuzzySearch bool   `toml:"fuzzy_search"`
	ScrollLines int    `toml:"scroll_lines"`
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. Keys missing from the file
// keep their default values.
func LoadFromFile(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Theme == "" {
		c.Theme = "tokyo-night"
	}
	if c.IndentWidth < 0 || c.IndentWidth > 16 {
		return fmt.Errorf("indent_width must be between 0 and 16, got %d", c.IndentWidth)
	}
	if c.ScrollLines < 1 {
		return fmt.Errorf("scroll_lines must be at least 1, got %d", c.ScrollLines)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:       "tokyo-night",
		IndentWidth: 2,
		Mouse:       true,
		FuzzySearch: false,
		ScrollLines: 3,
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName), nil
}
