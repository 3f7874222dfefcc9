// Package config содержит логику чтения конфигурации сервиса записи МПП.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultRunAddress = "localhost:8080"

const defaultQueueTickInterval = 10 * time.Second

// Config содержит параметры конфигурации сервиса записи МПП.
type Config struct {
	RunAddress        string        `env:"RUN_ADDRESS"`
	QueueTickInterval time.Duration `env:"QUEUE_TICK_INTERVAL"`
	AuthSecret        string        `env:"AUTH_SECRET"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envQueueTickInterval := cfg.QueueTickInterval
	envAuthSecret := cfg.AuthSecret

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.DurationVar(&cfg.QueueTickInterval, "i", defaultQueueTickInterval, "queue simulation tick interval")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret key for session cookie signing")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envQueueTickInterval != 0 {
		cfg.QueueTickInterval = envQueueTickInterval
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.QueueTickInterval <= 0 {
		cfg.QueueTickInterval = defaultQueueTickInterval
	}

	return cfg, nil
}
