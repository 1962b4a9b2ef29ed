package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config is read from the environment at startup.
type Config struct {
	Event       string `env:"EVBUS_DEMO_EVENT"      envDefault:"show"`
	Message     string `env:"EVBUS_DEMO_MESSAGE"`
	Development bool   `env:"EVBUS_LOG_DEVELOPMENT" envDefault:"false"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg Config) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
