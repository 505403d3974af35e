package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-jsonviewer/internal/config"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Key                string `toml:"key"`
		String             string `toml:"string"`
		Number             string `toml:"number"`
		Boolean            string `toml:"boolean"`
		Null               string `toml:"null"`
		Bracket            string `toml:"bracket"`
		Marker             string `toml:"marker"`
		Tilde              string `toml:"tilde"`
		SelectedText       string `toml:"selected_text"`
		SelectedBackground string `toml:"selected_background"`
		Breadcrumb         string `toml:"breadcrumb"`
		StatusText         string `toml:"status_text"`
		StatusBackground   string `toml:"status_background"`
		StatusMessage      string `toml:"status_message"`
		StatusError        string `toml:"status_error"`
		SearchLabel        string `toml:"search_label"`
		SearchText         string `toml:"search_text"`
		SearchMatch        string `toml:"search_match"`
		HelpBackground     string `toml:"help_background"`
		HelpBorder         string `toml:"help_border"`
		HelpTitle          string `toml:"help_title"`
		HelpContent        string `toml:"help_content"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if dir, err := config.GetConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "themes"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", config.AppName, "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var cfg ThemeConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(cfg), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme; colors the file leaves
// out come from Tokyo Night
func configToTheme(cfg ThemeConfig) *Theme {
	t := TokyoNight()
	c := &cfg.Colors

	overrides := []struct {
		value  string
		target *tcell.Color
	}{
		{c.Key, &t.Colors.Key},
		{c.String, &t.Colors.String},
		{c.Number, &t.Colors.Number},
		{c.Boolean, &t.Colors.Boolean},
		{c.Null, &t.Colors.Null},
		{c.Bracket, &t.Colors.Bracket},
		{c.Marker, &t.Colors.Marker},
		{c.Tilde, &t.Colors.Tilde},
		{c.SelectedText, &t.Colors.SelectedText},
		{c.SelectedBackground, &t.Colors.SelectedBackground},
		{c.Breadcrumb, &t.Colors.Breadcrumb},
		{c.StatusText, &t.Colors.StatusText},
		{c.StatusBackground, &t.Colors.StatusBackground},
		{c.StatusMessage, &t.Colors.StatusMessage},
		{c.StatusError, &t.Colors.StatusError},
		{c.SearchLabel, &t.Colors.SearchLabel},
		{c.SearchText, &t.Colors.SearchText},
		{c.SearchMatch, &t.Colors.SearchMatch},
		{c.HelpBackground, &t.Colors.HelpBackground},
		{c.HelpBorder, &t.Colors.HelpBorder},
		{c.HelpTitle, &t.Colors.HelpTitle},
		{c.HelpContent, &t.Colors.HelpContent},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = ParseColorString(o.value)
		}
	}

	if cfg.Name != "" {
		t.Name = cfg.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name. The built-in names never touch
// the file system; an unknown name falls back to Tokyo Night together with
// the error that caused it.
func LoadThemeOrDefault(themeName string) (*Theme, error) {
	switch themeName {
	case "default":
		return Default(), nil
	case "tokyo-night", "":
		return TokyoNight(), nil
	}

	t, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight(), err
	}

	return t, nil
}
