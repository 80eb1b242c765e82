// Package config loads the client configuration and holds shared constants.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Theme   ThemeConfig   `yaml:"theme"`
	Editor  EditorConfig  `yaml:"editor"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url" default:"http://localhost:8080/api"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"15"`
	PageSize       int    `yaml:"page_size" default:"10"`
}

type StorageConfig struct {
	// Driver selects the durable local storage backend: sqlite, fs, s3 or memory.
	Driver string   `yaml:"driver" default:"sqlite"`
	Path   string   `yaml:"path" default:"./techboard.db"`
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	AccessKeyID     string `yaml:"access_key_id" default:""`
	AccessKeySecret string `yaml:"access_key_secret" default:""`
	Endpoint        string `yaml:"endpoint" default:""`
	Bucket          string `yaml:"bucket" default:""`
}

type AuthConfig struct {
	Username string `yaml:"username" default:"admin"`
	Password string `yaml:"password" default:"admin1234"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"light"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

type EditorConfig struct {
	AutosaveSeconds int `yaml:"autosave_seconds" default:"10"`
}

// AutosaveInterval returns the autosave cadence as a duration.
func (e EditorConfig) AutosaveInterval() time.Duration {
	if e.AutosaveSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.AutosaveSeconds) * time.Second
}

type CacheConfig struct {
	// Fresh window for the low-churn category and tag lists.
	ListingFreshMinutes int `yaml:"listing_fresh_minutes" default:"5"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
