package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"example.com/rps-commit/internal/commit"
)

// Config describes all runtime settings for the game.
//
// Loaded once in main, validated, then passed down explicitly.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"dev"` // dev|prod

	Log struct {
		Format string `env:"LOG_FORMAT" envDefault:"auto"` // auto|text|json
		Level  string `env:"LOG_LEVEL" envDefault:"warn"`  // debug|info|warn|error
	}

	Commit struct {
		Alg      string `env:"COMMIT_ALG" envDefault:"HS256"`
		KeyBytes int    `env:"COMMIT_KEY_BYTES" envDefault:"32"`
	}

	Output struct {
		Format string `env:"OUTPUT_FORMAT" envDefault:"text"` // text|json
	}
}

func LoadFromEnv() (Config, error) {
	return load(env.Options{})
}

// LoadFromMap is LoadFromEnv over an explicit environment instead of os.Environ.
func LoadFromMap(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want auto|text|json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL=%q (want debug|info|warn|error)", c.Log.Level)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported OUTPUT_FORMAT=%q (want text|json)", c.Output.Format)
	}
	if c.Commit.KeyBytes < commit.MinKeySize {
		return fmt.Errorf("COMMIT_KEY_BYTES=%d is below the %d byte minimum", c.Commit.KeyBytes, commit.MinKeySize)
	}
	if _, err := commit.NewEngine(c.Commit.Alg); err != nil {
		return fmt.Errorf("COMMIT_ALG: %w", err)
	}
	if c.Env == "prod" && c.Log.Level == "debug" {
		return errors.New("refuse to log at debug level in prod (commitments would be logged)")
	}
	return nil
}
