// Package config loads hspflow settings from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/hspflow/internal/batch"
	"github.com/aria-lang/hspflow/internal/hit"
)

var validate = validator.New()

// Config is the top-level configuration file.
type Config struct {
	Flavour        string       `yaml:"flavour" validate:"oneof=blastn blastp blastx tblastn tblastx"`
	Workers        int          `yaml:"workers" validate:"gte=0,lte=1024"`
	OnError        batch.Policy `yaml:"on_error" validate:"oneof=skip abort"`
	StrictResidues bool         `yaml:"strict_residues"`
	Server         ServerConfig `yaml:"server"`
	Log            LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Flavour: hit.FlavourBlastx,
		Workers: 0,
		OnError: batch.PolicySkip,
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			AllowedOrigins:  []string{"http://localhost:*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Flavour = strings.ToLower(cfg.Flavour)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Multipliers returns the coordinate multipliers of the configured flavour.
func (c *Config) Multipliers() (hit.Multipliers, error) {
	return hit.MultipliersFor(c.Flavour)
}

// BatchOptions returns runner options derived from the configuration.
func (c *Config) BatchOptions() (batch.Options, error) {
	m, err := c.Multipliers()
	if err != nil {
		return batch.Options{}, err
	}
	return batch.Options{Workers: c.Workers, Policy: c.OnError, Multipliers: m}, nil
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// NewLogger builds a slog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (l LogConfig) level() slog.Level {
	switch strings.ToLower(l.Level) {
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
