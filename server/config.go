package server

import (
	"github.com/caarlos0/env/v9"
)

// Config holds server settings read from the environment
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"tidytask.db"` // postgres:// URL or SQLite path
	LogLevel    string `env:"TIDYTASK_LOG_LEVEL" envDefault:"INFO"`
}

// LoadConfig parses Config from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
