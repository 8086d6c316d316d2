package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadSeed loads and parses a seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	seed, err := ParseSeedYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// Validate checks cfg after callers apply their own overrides (e.g. flags).
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("invalid log_format: %s (must be json or text)", cfg.LogFormat)
	}

	if strings.TrimSpace(cfg.HTTPAddr) == "" && strings.TrimSpace(cfg.GRPCAddr) == "" {
		return fmt.Errorf("at least one of http_addr or grpc_addr must be set")
	}

	if err := validateSuggestions(&cfg.Suggestions); err != nil {
		return fmt.Errorf("suggestions validation failed: %w", err)
	}

	if err := validateRequests(&cfg.Requests); err != nil {
		return fmt.Errorf("requests validation failed: %w", err)
	}

	return nil
}

// validateSuggestions validates the suggestion engine settings
func validateSuggestions(s *SuggestionsConfig) error {
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative, got %d", s.CacheSize)
	}
	if s.DFSMaxDepth < 0 {
		return fmt.Errorf("dfs_max_depth cannot be negative, got %d", s.DFSMaxDepth)
	}
	if s.MaxResults < 0 {
		return fmt.Errorf("max_results cannot be negative, got %d", s.MaxResults)
	}
	if s.DFSOrder != DFSOrderMutualCount && s.DFSOrder != DFSOrderDiscovery {
		return fmt.Errorf("invalid dfs_order: %s (must be %s or %s)", s.DFSOrder, DFSOrderMutualCount, DFSOrderDiscovery)
	}
	return nil
}

// validateRequests validates the friend request throttle
func validateRequests(r *RequestsConfig) error {
	if r.RatePerMinute < 0 {
		return fmt.Errorf("rate_per_minute cannot be negative, got %d", r.RatePerMinute)
	}
	if r.MaxTracked < 0 {
		return fmt.Errorf("max_tracked cannot be negative, got %d", r.MaxTracked)
	}
	if r.RatePerMinute > 0 && r.Burst <= 0 {
		return fmt.Errorf("burst must be positive when rate_per_minute is set, got %d", r.Burst)
	}
	return nil
}

// validateSeed checks ids and rejects self edges
func validateSeed(s *Seed) error {
	for i, pair := range s.Friendships {
		if len(pair) != 2 {
			return fmt.Errorf("friendship %d: expected 2 users, got %d", i, len(pair))
		}
		if !pair[0].Valid() || !pair[1].Valid() {
			return fmt.Errorf("friendship %d: user id cannot be empty", i)
		}
		if pair[0] == pair[1] {
			return fmt.Errorf("friendship %d: %s cannot befriend themselves", i, pair[0])
		}
	}

	for i, req := range s.Requests {
		if !req.From.Valid() {
			return fmt.Errorf("request %d: 'from' cannot be empty", i)
		}
		if !req.To.Valid() {
			return fmt.Errorf("request %d: 'to' cannot be empty", i)
		}
		if req.From == req.To {
			return fmt.Errorf("request %d: %s cannot request themselves", i, req.From)
		}
	}

	return nil
}
