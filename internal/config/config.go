// /internal/config/config.go
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DiscordToken           string  `env:"DISCORD_TOKEN"`
	StoragePath            string  `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DeveloperID            string  `env:"DEVELOPER_ID"`
	Prefix                 string  `env:"COMMAND_PREFIX" envDefault:"!"`
	UnknownCommandResponse bool    `env:"UNKNOWN_COMMAND_RESPONSE" envDefault:"true"`
	StrictEntityLookup     bool    `env:"STRICT_ENTITY_LOOKUP" envDefault:"false"`
	LookupRate             float64 `env:"LOOKUP_RATE" envDefault:"5"`
	LogLevel               string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFile                string  `env:"LOG_FILE"`
	LogFileMaxSizeMB       int     `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"10"`
	LogFileMaxBackups      int     `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
	CommandsFile           string  `env:"COMMANDS_FILE"`
	OTelEndpoint           string  `env:"OTEL_ENDPOINT"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Prefix == "" {
		return nil, errors.New("COMMAND_PREFIX must not be empty")
	}
	if cfg.LookupRate <= 0 {
		return nil, fmt.Errorf("LOOKUP_RATE must be positive, got %v", cfg.LookupRate)
	}
	return cfg, nil
}

// RequireToken fails when no Discord token is configured.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}
	return nil
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
