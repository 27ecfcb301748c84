// Package config loads settings for the simplehtml CLI and HTTP API.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from YAML.
type Config struct {
	Environment string       `yaml:"environment"` // "development" or "production"
	Log         LogConfig    `yaml:"log"`
	Server      ServerConfig `yaml:"server"`
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 1 << 20

	envPrefix = "SIMPLEHTML_"
)

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Default returns a Config with every field set to its default.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

// Load reads an optional .env file, then the YAML file at path (skipped
// when path is empty), applies SIMPLEHTML_* environment overrides and
// defaults, and validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the production environment is selected.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "ENV"); ok {
		cfg.Environment = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(envPrefix + "ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(envPrefix + "MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_BODY_BYTES: %v", ErrInvalid, envPrefix, err)
		}
		cfg.Server.MaxBodyBytes = n
	}
	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.Environment == EnvProduction {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
}

func validate(cfg Config) error {
	switch cfg.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalid, cfg.Environment)
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, cfg.Log.Format)
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalid, cfg.Server.MaxBodyBytes)
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     cfg.Server.ReadTimeout,
		"write_timeout":    cfg.Server.WriteTimeout,
		"idle_timeout":     cfg.Server.IdleTimeout,
		"shutdown_timeout": cfg.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
