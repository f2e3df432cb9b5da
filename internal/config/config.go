package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr            string        `env:"SCA_ADDR" envDefault:":8080"`
	DatabaseDSN     string        `env:"SCA_DB_DSN" envDefault:"user:password@/spycatagency?parseTime=true"`
	BreedAPIURL     string        `env:"SCA_BREED_API_URL" envDefault:"https://api.thecatapi.com/v1/breeds"`
	BreedAPITimeout time.Duration `env:"SCA_BREED_API_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SCA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables, falling back to the
// defaults above.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
