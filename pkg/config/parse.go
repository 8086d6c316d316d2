package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfigYAML parses a Config from YAML bytes on top of DefaultConfig and
// validates it. Fields missing from the document keep their defaults.
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ParseConfigYAMLString parses a Config from a YAML string and validates it.
func ParseConfigYAMLString(yamlText string) (*Config, error) {
	return ParseConfigYAML([]byte(yamlText))
}

// ParseSeedYAML parses a Seed from YAML bytes and validates it.
func ParseSeedYAML(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	if err := validateSeed(&seed); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	return &seed, nil
}

// ParseSeedYAMLString parses a Seed from a YAML string and validates it.
func ParseSeedYAMLString(yamlText string) (*Seed, error) {
	return ParseSeedYAML([]byte(yamlText))
}
