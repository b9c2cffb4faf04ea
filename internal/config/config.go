package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"5009"`
	DBDriver        string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN           string        `env:"DB_DSN" envDefault:"users.db"` // sqlite file in the working dir
	LogFile         string        `env:"LOG_FILE"`
	AccessLog       bool          `env:"ACCESS_LOG" envDefault:"true"`
	PasswordScheme  string        `env:"PASSWORD_SCHEME" envDefault:"prefix"`
	BodyLimit       int           `env:"BODY_LIMIT" envDefault:"1048576"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s PASSWORD_SCHEME=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDriver, cfg.PasswordScheme, cfg.LogFile)
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or pgx, got %q", c.DBDriver)
	}
	switch c.PasswordScheme {
	case "prefix", "bcrypt":
	default:
		return fmt.Errorf("PASSWORD_SCHEME must be prefix or bcrypt, got %q", c.PasswordScheme)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is empty")
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT must be positive")
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.Port }
