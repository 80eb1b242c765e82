package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.API.BaseURL != "http://localhost:8080/api" {
			t.Errorf("Expected default base URL, got %q", config.API.BaseURL)
		}
		if config.API.TimeoutSeconds != 15 {
			t.Errorf("Expected timeout 15, got %d", config.API.TimeoutSeconds)
		}
		if config.API.PageSize != 10 {
			t.Errorf("Expected page size 10, got %d", config.API.PageSize)
		}

		if config.Storage.Driver != "sqlite" {
			t.Errorf("Expected storage driver 'sqlite', got %q", config.Storage.Driver)
		}

		if config.Auth.Username != "admin" {
			t.Errorf("Expected username 'admin', got %q", config.Auth.Username)
		}
		if config.Auth.Password != "admin1234" {
			t.Errorf("Expected password 'admin1234', got %q", config.Auth.Password)
		}

		if config.Theme.Default != "light" {
			t.Errorf("Expected theme 'light', got %q", config.Theme.Default)
		}
		if config.Theme.SyntaxHighlighting.DefaultDark != "gruvbox" {
			t.Errorf("Expected dark syntax theme 'gruvbox', got %q", config.Theme.SyntaxHighlighting.DefaultDark)
		}
		if config.Theme.SyntaxHighlighting.DefaultLight != "catppuccin-latte" {
			t.Errorf("Expected light syntax theme 'catppuccin-latte', got %q", config.Theme.SyntaxHighlighting.DefaultLight)
		}

		if config.Editor.AutosaveSeconds != 10 {
			t.Errorf("Expected autosave interval 10, got %d", config.Editor.AutosaveSeconds)
		}
		if config.Cache.ListingFreshMinutes != 5 {
			t.Errorf("Expected listing fresh window 5, got %d", config.Cache.ListingFreshMinutes)
		}
		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField  string  `default:"test-string"`
			BoolField    bool    `default:"true"`
			IntField     int     `default:"42"`
			Float64Field float64 `default:"3.14"`
		}

		s := &TestStruct{}
		applyDefaults(s)

		if s.StringField != "test-string" {
			t.Errorf("Expected 'test-string', got %q", s.StringField)
		}
		if !s.BoolField {
			t.Error("Expected true")
		}
		if s.IntField != 42 {
			t.Errorf("Expected 42, got %d", s.IntField)
		}
		if s.Float64Field != 3.14 {
			t.Errorf("Expected 3.14, got %f", s.Float64Field)
		}
	})

	t.Run("Defaults do not overwrite set values", func(t *testing.T) {
		config := &Config{}
		config.API.BaseURL = "https://blog.example.com/api"
		applyDefaults(config)

		// applyDefaults runs before unmarshalling, so a pre-set value is
		// overwritten here; LoadConfig relies on that ordering.
		if config.API.BaseURL != "http://localhost:8080/api" {
			t.Errorf("Expected defaults to apply unconditionally, got %q", config.API.BaseURL)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.ErrorLevel))

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		if err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("Expected no error for missing config, got %v", err)
		}
		if AppConfig.API.BaseURL != "http://localhost:8080/api" {
			t.Errorf("Expected default base URL, got %q", AppConfig.API.BaseURL)
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "api:\n  base_url: https://blog.example.com/api\nlogging:\n  level: debug\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := LoadConfig(path); err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if AppConfig.API.BaseURL != "https://blog.example.com/api" {
			t.Errorf("Expected overridden base URL, got %q", AppConfig.API.BaseURL)
		}
		if AppConfig.Logging.Level != "debug" {
			t.Errorf("Expected overridden log level, got %q", AppConfig.Logging.Level)
		}
		// Untouched sections keep their defaults.
		if AppConfig.Editor.AutosaveSeconds != 10 {
			t.Errorf("Expected default autosave interval, got %d", AppConfig.Editor.AutosaveSeconds)
		}
	})

	t.Run("Malformed YAML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("api: [broken"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := LoadConfig(path); err == nil {
			t.Error("Expected error for malformed config")
		}
	})
}
