// Package config loads orderlens settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/orderlens/engine"
)

// EnvDataPath overrides data.path when set.
const EnvDataPath = "ORDERLENS_DATA"

// Config is the full settings file.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Server   ServerConfig   `yaml:"server"`
	Currency CurrencyConfig `yaml:"currency"`
	Limits   LimitsConfig   `yaml:"limits"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type DataConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

type CurrencyConfig struct {
	Code   string `yaml:"code" validate:"required,iso4217"`
	Locale string `yaml:"locale" validate:"required,bcp47_language_tag"`
}

type LimitsConfig struct {
	RFMTop     int `yaml:"rfm_top" validate:"min=1,max=100"`
	SpendTop   int `yaml:"spend_top" validate:"min=1,max=100"`
	ProductTop int `yaml:"product_top" validate:"min=1,max=100"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Data:   DataConfig{Path: "data/all_data.csv"},
		Server: ServerConfig{Addr: "localhost:8080"},
		Currency: CurrencyConfig{
			Code:   engine.DefaultCurrency,
			Locale: engine.DefaultLocale,
		},
		Limits: LimitsConfig{
			RFMTop:     engine.DefaultRFMTopN,
			SpendTop:   engine.DefaultSpendTopN,
			ProductTop: engine.DefaultProductTopN,
		},
		Log: LogConfig{Level: "info"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path over the defaults, applies the environment override and
// validates the result. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvDataPath)); v != "" {
		cfg.Data.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("invalid config: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// EngineOptions maps the currency and limit settings onto engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithRFMTopN(c.Limits.RFMTop),
		engine.WithSpendTopN(c.Limits.SpendTop),
		engine.WithProductTopN(c.Limits.ProductTop),
		engine.WithCurrency(c.Currency.Code, c.Currency.Locale),
	}
}

// SlogLevel converts log.level into a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
