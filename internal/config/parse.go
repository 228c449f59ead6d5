package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var errEmptyDatabaseURL = errors.New("parse cfg: DATABASE_URL is empty")

func Parse() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errEmptyDatabaseURL
	}

	return cfg, nil
}
