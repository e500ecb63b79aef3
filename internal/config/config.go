// Package config loads application configuration from an optional YAML file,
// a .env file, and environment variables. Environment always wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional YAML configuration file looked up in the
// working directory.
const ConfigFile = "author.yaml"

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

// Config holds all application configuration.
//
// Precedence per field: environment variable > author.yaml > built-in default.
// envconfig leaves a field untouched when its variable is unset, which is what
// makes the layering work.
type Config struct {
	// Server settings
	Env  string `envconfig:"ENV"  yaml:"env"`
	Port string `envconfig:"PORT" yaml:"port"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" yaml:"hsts_max_age"`
	CSPMode    string `envconfig:"CSP_MODE"     yaml:"csp_mode"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" yaml:"log_level"`

	// Generation settings
	Provider           string  `envconfig:"AUTHOR_PROVIDER"            yaml:"provider"`
	Model              string  `envconfig:"AUTHOR_MODEL"               yaml:"model"`
	CreatorTemperature float64 `envconfig:"AUTHOR_CREATOR_TEMPERATURE" yaml:"creator_temperature"`
	EditorTemperature  float64 `envconfig:"AUTHOR_EDITOR_TEMPERATURE"  yaml:"editor_temperature"`

	// Output settings
	OutputDir string `envconfig:"AUTHOR_OUTPUT_DIR" yaml:"output_dir"`
	WebDir    string `envconfig:"AUTHOR_WEB_DIR"    yaml:"web_dir"`

	// Credentials (never read from the YAML file)
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY" yaml:"-"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"    yaml:"-"`
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Env:                "development",
		Port:               "8080",
		HSTSMaxAge:         31536000,
		CSPMode:            "relaxed",
		LogLevel:           "info",
		Provider:           "anthropic",
		CreatorTemperature: 0.5,
		EditorTemperature:  0.2,
		OutputDir:          ".",
		WebDir:             "./web",
	}
}

// LoadConfig loads configuration from author.yaml, .env, and environment
// variables. Both files are optional.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Error loading .env file", "error", err)
		}
	}

	config := Defaults()

	if err := loadYAML(ConfigFile, &config); err != nil {
		return nil, err
	}

	// Parse environment variables into config struct
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIAPIKey
	}

	return c.AnthropicAPIKey
}

func loadYAML(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
