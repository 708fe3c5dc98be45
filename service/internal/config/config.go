// Package config loads simulation settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting of a simulation run.
type Config struct {
	Games         int
	Players       int
	Suits         int
	Seed          uint64
	Workers       int
	Finesse       bool
	Bot           string
	LogLevel      logrus.Level
	TranscriptDir string
	DBPath        string
	RedisURL      string
	ChartPath     string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Games:    100,
		Players:  4,
		Suits:    6,
		Seed:     1,
		Finesse:  true,
		Bot:      "agent",
		LogLevel: logrus.InfoLevel,
	}
}

// Load reads envFile when it exists, then overlays HANABI_* environment
// variables on the defaults. Variables already set in the environment win
// over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var errs []error
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	strVar := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	intVar("HANABI_GAMES", &c.Games)
	intVar("HANABI_PLAYERS", &c.Players)
	intVar("HANABI_SUITS", &c.Suits)
	intVar("HANABI_WORKERS", &c.Workers)
	strVar("HANABI_BOT", &c.Bot)
	strVar("HANABI_TRANSCRIPT_DIR", &c.TranscriptDir)
	strVar("HANABI_DB_PATH", &c.DBPath)
	strVar("HANABI_REDIS_URL", &c.RedisURL)
	strVar("HANABI_CHART_PATH", &c.ChartPath)

	if v, ok := lookup("HANABI_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("HANABI_SEED: %w", err))
		} else {
			c.Seed = n
		}
	}
	if v, ok := lookup("HANABI_FINESSE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HANABI_FINESSE: %w", err))
		} else {
			c.Finesse = b
		}
	}
	if v, ok := lookup("HANABI_LOG_LEVEL"); ok && v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HANABI_LOG_LEVEL: %w", err))
		} else {
			c.LogLevel = lvl
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
