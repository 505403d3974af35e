package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected default theme 'tokyo-night', got '%s'", cfg.Theme)
	}
	if cfg.IndentWidth != 2 {
		t.Errorf("Expected default indent width 2, got %d", cfg.IndentWidth)
	}
	if !cfg.Mouse {
		t.Errorf("Expected mouse to be enabled by default")
	}
	if cfg.FuzzySearch {
		t.Errorf("Expected fuzzy search to be disabled by default")
	}
	if cfg.ScrollLines != 3 {
		t.Errorf("Expected default scroll lines 3, got %d", cfg.ScrollLines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}
	if *cfg != *defaultConfig() {
		t.Errorf("Expected defaults for a missing file, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "theme = \"default\"\nfuzzy_search = true\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Expected theme 'default', got '%s'", cfg.Theme)
	}
	if !cfg.FuzzySearch {
		t.Errorf("Expected fuzzy search to be enabled")
	}
	if cfg.IndentWidth != 2 || cfg.ScrollLines != 3 || !cfg.Mouse {
		t.Errorf("Expected unspecified keys to keep defaults, got %+v", cfg)
	}
}

func TestLoadEmptyThemeFallsBack(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "theme = \"\"\n"))
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}
	if cfg.Theme != "tokyo-night" {
		t.Errorf("Expected theme 'tokyo-night', got '%s'", cfg.Theme)
	}
}

func TestLoadInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"Broken TOML", "theme = \n", "failed to parse config file"},
		{"Wrong type", "indent_width = \"four\"\n", "failed to parse config file"},
		{"Negative indent", "indent_width = -1\n", "indent_width"},
		{"Zero scroll lines", "scroll_lines = 0\n", "scroll_lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("Expected an error for %q", tt.content)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir returned error: %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("Expected config dir to end in %s, got %s", AppName, dir)
	}
}
