package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings
const (
	EnvLogLevel = "SOCIALGRAPH_LOG_LEVEL"
	EnvHTTPAddr = "SOCIALGRAPH_HTTP_ADDR"
	EnvGRPCAddr = "SOCIALGRAPH_GRPC_ADDR"
	EnvSeedFile = "SOCIALGRAPH_SEED_FILE"
)

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides cfg with any SOCIALGRAPH_* variables that are set and
// re-validates the result.
func ApplyEnv(cfg *Config) error {
	cfg.LogLevel = firstNonEmpty(strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))), cfg.LogLevel)
	cfg.HTTPAddr = normalizeAddr(firstNonEmpty(strings.TrimSpace(os.Getenv(EnvHTTPAddr)), cfg.HTTPAddr))
	cfg.GRPCAddr = normalizeAddr(firstNonEmpty(strings.TrimSpace(os.Getenv(EnvGRPCAddr)), cfg.GRPCAddr))
	cfg.SeedFile = firstNonEmpty(strings.TrimSpace(os.Getenv(EnvSeedFile)), cfg.SeedFile)
	return validateConfig(cfg)
}

// normalizeAddr turns a bare port like "8080" into ":8080".
func normalizeAddr(addr string) string {
	if addr == "" || strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
