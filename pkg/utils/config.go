package utils

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

type ServerConfig struct {
	HTTPAddr    string `env:"GALVANI_HTTP_ADDR" envDefault:":8080"`
	LiveAddr    string `env:"GALVANI_LIVE_ADDR" envDefault:":9090"`
	GRPCAddr    string `env:"GALVANI_GRPC_ADDR" envDefault:":9092"`
	MCPAddr     string `env:"GALVANI_MCP_ADDR" envDefault:":8090"`
	Catalog     string `env:"GALVANI_CATALOG" envDefault:"extended"`
	LogLevel    string `env:"GALVANI_LOG_LEVEL" envDefault:"info"`
	Environment string `env:"GALVANI_ENV" envDefault:"development"`
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

type AuthConfig struct {
	JWTSecret   string        `env:"GALVANI_JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer   string        `env:"GALVANI_JWT_ISSUER" envDefault:"galvani"`
	TTLHours    int           `env:"GALVANI_JWT_TTL_HOURS" envDefault:"24"`
	JWTDuration time.Duration `env:"-"`
}

// LoadAuthConfig never fails: a malformed variable falls back to the dev
// defaults so the CLI and servers still start.
func LoadAuthConfig() AuthConfig {
	var cfg AuthConfig
	if err := ParseEnv(&cfg); err != nil || cfg.TTLHours <= 0 {
		cfg = defaultAuthConfig(cfg)
	}
	cfg.JWTDuration = time.Duration(cfg.TTLHours) * time.Hour
	return cfg
}

func defaultAuthConfig(partial AuthConfig) AuthConfig {
	cfg := AuthConfig{
		JWTSecret: "dev-secret-change-me",
		JWTIssuer: "galvani",
		TTLHours:  24,
	}
	if partial.JWTSecret != "" {
		cfg.JWTSecret = partial.JWTSecret
	}
	if partial.JWTIssuer != "" {
		cfg.JWTIssuer = partial.JWTIssuer
	}
	return cfg
}
