// internal/config/config.go
//
// Runtime configuration.
//
// Sources, later ones win:
//   1. Built-in defaults.
//   2. An optional YAML file named by CONFIG_FILE.
//   3. The process environment, after .env has been loaded into it.
//
// Environment variables:
//   PORT, LOG_LEVEL, WORDS_ANSWERS_FILE, WORDS_ALLOWED_FILE, DB_PATH,
//   JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, CLIENT_ORIGIN, PRODUCTION,
//   DAILY_SALT, POOL_THRESHOLD, TOP_K, WORKERS, FIRST_GUESS, CACHE_FILE,
//   ANSWERS_ONLY

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the CLI and the HTTP service.
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	AnswersFile string `yaml:"answers_file"`
	AllowedFile string `yaml:"allowed_file"`

	DBPath         string `yaml:"db_path"`
	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
	ClientOrigin   string `yaml:"client_origin"`
	Production     bool   `yaml:"production"`
	DailySalt      string `yaml:"daily_salt"`

	// PoolThreshold: above this many candidates every allowed word is
	// scored; at or below it only the candidates are.
	PoolThreshold int    `yaml:"pool_threshold"`
	TopK          int    `yaml:"top_k"`
	Workers       int    `yaml:"workers"` // 0 = runtime.NumCPU()
	FirstGuess    string `yaml:"first_guess"`
	CacheFile     string `yaml:"cache_file"`

	// AnswersOnly starts sessions from the answer list rather than every
	// allowed word. Off by default.
	AnswersOnly bool `yaml:"answers_only"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		DBPath:         "./data/solver.db",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		CookieName:     "wordle_token",
		ClientOrigin:   "http://localhost:5173",
		DailySalt:      "local_dev_salt",
		PoolThreshold:  20,
		TopK:           5,
		FirstGuess:     "salet",
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the
// environment (including .env if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.AnswersFile = getEnv("WORDS_ANSWERS_FILE", c.AnswersFile)
	c.AllowedFile = getEnv("WORDS_ALLOWED_FILE", c.AllowedFile)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.CookieName = getEnv("COOKIE_NAME", c.CookieName)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.FirstGuess = getEnv("FIRST_GUESS", c.FirstGuess)
	c.CacheFile = getEnv("CACHE_FILE", c.CacheFile)

	var errs []error
	ints := []struct {
		key string
		dst *int
	}{
		{"JWT_EXPIRES_DAYS", &c.JWTExpiresDays},
		{"POOL_THRESHOLD", &c.PoolThreshold},
		{"TOP_K", &c.TopK},
		{"WORKERS", &c.Workers},
	}
	for _, f := range ints {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		*f.dst = n
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"PRODUCTION", &c.Production},
		{"ANSWERS_ONLY", &c.AnswersOnly},
	}
	for _, f := range bools {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		*f.dst = b
	}
	return errors.Join(errs...)
}

// Validate rejects settings the solver cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.PoolThreshold < 0 {
		errs = append(errs, errors.New("pool_threshold must be >= 0"))
	}
	if c.TopK <= 0 {
		errs = append(errs, errors.New("top_k must be > 0"))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers must be >= 0"))
	}
	if c.JWTExpiresDays <= 0 {
		errs = append(errs, errors.New("jwt_expires_days must be > 0"))
	}
	return errors.Join(errs...)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
