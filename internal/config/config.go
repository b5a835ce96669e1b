package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for canonjson
type Config struct {
	Decode   DecodeConfig   `yaml:"decode"`
	Render   RenderConfig   `yaml:"render"`
	Envelope EnvelopeConfig `yaml:"envelope"`
	Dev      DevConfig      `yaml:"dev"`
}

// DecodeConfig controls how input text is decoded
type DecodeConfig struct {
	ParseDates bool `yaml:"parse_dates"`
}

// RenderConfig controls how the result is written
type RenderConfig struct {
	SortKeys bool   `yaml:"sort_keys"`
	Indent   string `yaml:"indent"`
}

// EnvelopeConfig controls wrapping the result in a message envelope
type EnvelopeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			ParseDates: false,
		},
		Render: RenderConfig{
			SortKeys: true,
			Indent:   "",
		},
		Envelope: EnvelopeConfig{
			Enabled: false,
			Type:    "json",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".canonjson.yml", ".canonjson.yaml", "canonjson.yml", "canonjson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option values that YAML decoding cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Render.Indent) != "" {
		return fmt.Errorf("render.indent must contain only spaces or tabs, got %q", c.Render.Indent)
	}
	if c.Envelope.Enabled && strings.TrimSpace(c.Envelope.Type) == "" {
		return fmt.Errorf("envelope.type must not be empty when the envelope is enabled")
	}
	return nil
}

// CLIOverrides holds flag values that take precedence over the config file.
// Boolean flags can only switch an option on, so a file setting stays in
// effect when the flag is absent.
type CLIOverrides struct {
	ParseDates bool
	Envelope   bool
	Indent     string
	Debug      bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.ParseDates {
		cfg.Decode.ParseDates = true
	}
	if cli.Envelope {
		cfg.Envelope.Enabled = true
	}
	if cli.Indent != "" {
		cfg.Render.Indent = cli.Indent
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
