// internal/config/config.go
//
// Server configuration read from the environment.
// A .env file in the working directory is loaded first (development), then
// variables are parsed into Config with the defaults below.
//
// Environment variables:
//   PORT                  listen port (5175)
//   LOG_LEVEL             zerolog level (info)
//   STORAGE               "sqlite" | "memory" (sqlite)
//   DB_PATH               SQLite file (./data/cricket.db)
//   CLIENT_ORIGIN         CORS origin (http://localhost:5173)
//   JWT_SECRET            HS256 signing key for scorer sessions
//   JWT_EXPIRES_DAYS      scorer token lifetime (14)
//   COOKIE_NAME           auth cookie (cricket_token)
//   NODE_ENV              "production" enables Secure cookies
//   SCORER_USERNAME       scorer login name (scorer)
//   SCORER_PASSWORD_HASH  bcrypt hash; empty leaves scoring routes open
//   HISTORY_LIMIT         max undo steps, 0 = unlimited
//   REQUEST_TIMEOUT       per-request handler timeout (10s)

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config is the full server configuration.
type Config struct {
	Port               string        `env:"PORT" envDefault:"5175"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	Storage            string        `env:"STORAGE" envDefault:"sqlite"`
	DBPath             string        `env:"DB_PATH" envDefault:"./data/cricket.db"`
	ClientOrigin       string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays     int           `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName         string        `env:"COOKIE_NAME" envDefault:"cricket_token"`
	Env                string        `env:"NODE_ENV"`
	ScorerUsername     string        `env:"SCORER_USERNAME" envDefault:"scorer"`
	ScorerPasswordHash string        `env:"SCORER_PASSWORD_HASH"`
	HistoryLimit       int           `env:"HISTORY_LIMIT" envDefault:"0"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool { return c.Env == "production" }

// AuthEnabled reports whether scoring routes require a scorer login.
func (c Config) AuthEnabled() bool { return c.ScorerPasswordHash != "" }

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment into a Config and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE %q", c.Storage)
	}
	if c.Storage == StorageSQLite && c.DBPath == "" {
		return errors.New("config: DB_PATH is required for sqlite storage")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: HISTORY_LIMIT must be >= 0, got %d", c.HistoryLimit)
	}
	if c.JWTExpiresDays <= 0 {
		return fmt.Errorf("config: JWT_EXPIRES_DAYS must be positive, got %d", c.JWTExpiresDays)
	}
	return nil
}
