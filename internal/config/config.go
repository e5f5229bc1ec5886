// internal/config/config.go
//
// Client configuration.
// Responsibilities:
//   - Load a local .env file when present.
//   - Read WORDLE_* environment variables with defaults.
//   - Parse the log level once for main.
//
// Environment variables:
//   WORDLE_API_URL=http://localhost:3000
//   WORDLE_LOG_LEVEL=info
//   WORDLE_DB_PATH=./data/client.db
//   WORDLE_REQUEST_TIMEOUT=10s
//   WORDLE_ROUND_INTERVAL=5m
//   WORDLE_USERNAME / WORDLE_PASSWORD (non-interactive subcommands only)

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every variable name.
const Prefix = "WORDLE"

type Config struct {
	APIURL         string        `envconfig:"API_URL" default:"http://localhost:3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	DBPath         string        `envconfig:"DB_PATH" default:"./data/client.db"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	RoundInterval  time.Duration `envconfig:"ROUND_INTERVAL" default:"5m"`

	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
}

// Load reads .env files (missing files are ignored) and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APIURL == "" {
		return Config{}, fmt.Errorf("%s_API_URL must not be empty", Prefix)
	}
	if c.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("%s_REQUEST_TIMEOUT must be positive, got %s", Prefix, c.RequestTimeout)
	}
	return c, nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Override applies non-empty command-line values on top of the environment.
func (c *Config) Override(apiURL, dbPath string) {
	if apiURL != "" {
		c.APIURL = strings.TrimRight(apiURL, "/")
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
}
