// Package config загружает настройки клиента: дефолты, затем YAML файл, затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath переменная окружения с путем к YAML файлу
const EnvConfigPath = "STOREFRONT_CONFIG"

// Config содержит конфигурацию клиента
type Config struct {
	ServerURL         string        `yaml:"server_url" env:"STOREFRONT_SERVER_URL"`
	DBPath            string        `yaml:"db_path" env:"STOREFRONT_DB_PATH"`
	LogLevel          string        `yaml:"log_level" env:"STOREFRONT_LOG_LEVEL"`
	LogFormat         string        `yaml:"log_format" env:"STOREFRONT_LOG_FORMAT"`
	SessionPassphrase string        `yaml:"-" env:"STOREFRONT_SESSION_PASSPHRASE"`
	HTTPTimeout       time.Duration `yaml:"http_timeout" env:"STOREFRONT_HTTP_TIMEOUT"`
	SearchDebounce    time.Duration `yaml:"search_debounce" env:"STOREFRONT_SEARCH_DEBOUNCE"`
	SearchPageSize    int           `yaml:"search_page_size" env:"STOREFRONT_SEARCH_PAGE_SIZE"`
}

// Default возвращает конфигурацию для локальной разработки
func Default() Config {
	return Config{
		ServerURL:      "http://localhost:3000",
		DBPath:         "storefront.db",
		LogLevel:       "warn",
		LogFormat:      "console",
		HTTPTimeout:    30 * time.Second,
		SearchDebounce: 500 * time.Millisecond,
		SearchPageSize: 12,
	}
}

// Load собирает конфигурацию.
// path - YAML файл; если пустой, берется из STOREFRONT_CONFIG, если и он пустой - файл не читается.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Не заданные переменные окружения не трогают значения
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	var errs []error

	if c.ServerURL == "" {
		errs = append(errs, errors.New("server url is required"))
	} else if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid server url: %q", c.ServerURL))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http timeout must not be negative"))
	}
	if c.SearchDebounce < 0 {
		errs = append(errs, errors.New("search debounce must not be negative"))
	}
	if c.SearchPageSize <= 0 {
		errs = append(errs, errors.New("search page size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Fields поля для лога, passphrase не выводится
func (c Config) Fields() []zap.Field {
	return []zap.Field{
		zap.String("server_url", c.ServerURL),
		zap.String("db_path", c.DBPath),
		zap.String("log_level", c.LogLevel),
		zap.Duration("http_timeout", c.HTTPTimeout),
		zap.Duration("search_debounce", c.SearchDebounce),
		zap.Int("search_page_size", c.SearchPageSize),
		zap.Bool("session_encrypted", c.SessionPassphrase != ""),
	}
}
