package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит настройки приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Pagination PaginationConfig

	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	SeedOnStart        bool     `env:"SEED_ON_START" envDefault:"false"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName          string `env:"DB_NAME" envDefault:"workforce"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	Path            string `env:"DB_PATH" envDefault:"workforce.db"`
	ConnectAttempts int    `env:"DB_CONNECT_ATTEMPTS" envDefault:"30"`
}

// PaginationConfig - размеры страниц для списков
type PaginationConfig struct {
	DefaultSize int `env:"PAGE_SIZE_DEFAULT" envDefault:"10"`
	MaxSize     int `env:"PAGE_SIZE_MAX" envDefault:"100"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Pagination.DefaultSize < 1 || c.Pagination.MaxSize < c.Pagination.DefaultSize {
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.Pagination.DefaultSize, c.Pagination.MaxSize)
	}
	if c.Database.ConnectAttempts < 1 {
		c.Database.ConnectAttempts = 1
	}
	return nil
}

// SlogLevel переводит LOG_LEVEL в уровень slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
