package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "./config.yaml"
	defaultEnvFile    = ".env"
)

// Load builds the configuration with priority ENV > YAML > env-default tags.
//
// Variables from a dotenv file (ENV_FILE, default ./.env) are merged into the
// environment first and never override variables that are already set. The
// YAML path comes from CONFIG_PATH and defaults to ./config.yaml. Missing
// default files are skipped; missing explicit ones are an error.
func Load() (*Config, error) {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg, err := read(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("config: env file %s: %w", path, err)
	}
}

func read(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
