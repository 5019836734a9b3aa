// Package config loads and saves the decode-policy configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bifrostdb/bifrost/pkg/codec"
)

// Config represents the bifrost configuration
type Config struct {
	FixedStrings FixedStrings `yaml:"fixed_strings"`
	UInt64       UInt64       `yaml:"uint64"`
}

// FixedStrings configures how FixedString columns are rendered
type FixedStrings struct {
	Method    string `yaml:"method"`     // raw, decode or hex
	Encoding  string `yaml:"encoding"`   // IANA charset name, empty for UTF-8
	OnInvalid string `yaml:"on_invalid"` // hex or placeholder
}

// UInt64 configures the effective signedness of UInt64 columns
type UInt64 struct {
	Mode string `yaml:"mode"` // unsigned or signed
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		FixedStrings: FixedStrings{
			Method:    "raw",
			Encoding:  "utf-8",
			OnInvalid: "hex",
		},
		UInt64: UInt64{
			Mode: "unsigned",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Apply translates the configuration onto a decode policy.
func (c *Config) Apply(pol *codec.Policy) error {
	method, err := codec.ParseFixedStringMethod(c.FixedStrings.Method)
	if err != nil {
		return fmt.Errorf("fixed_strings.method: %w", err)
	}
	onInvalid, err := codec.ParseInvalidTextFallback(c.FixedStrings.OnInvalid)
	if err != nil {
		return fmt.Errorf("fixed_strings.on_invalid: %w", err)
	}
	if err := pol.SetFixedStringHandling(codec.FixedStringOptions{
		Method:    method,
		Encoding:  c.FixedStrings.Encoding,
		OnInvalid: onInvalid,
	}); err != nil {
		return fmt.Errorf("fixed_strings.encoding: %w", err)
	}

	mode, err := codec.ParseUInt64Mode(c.UInt64.Mode)
	if err != nil {
		return fmt.Errorf("uint64.mode: %w", err)
	}
	pol.SetUInt64Handling(mode)
	return nil
}
