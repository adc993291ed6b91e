// Package config loads the proxy's tunables. Values come from built-in
// defaults, then an optional TOML file, then POINTERPROXY_* environment
// variables, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Mode is one of "synthesize", "native" or "vendor".
	Mode string `toml:"mode" env:"MODE"`
	// TouchCapable is false on hosts without touch input, which disables
	// duplicate suppression.
	TouchCapable bool `toml:"touch_capable" env:"TOUCH_CAPABLE"`
	// SuppressThreshold is the per-axis distance, in client units, under
	// which a mouse event is attributed to a recent touch start.
	SuppressThreshold float32 `toml:"suppress_threshold" env:"SUPPRESS_THRESHOLD"`
	// SuppressWindow is how long touch starts are remembered.
	SuppressWindow time.Duration `toml:"suppress_window" env:"SUPPRESS_WINDOW"`

	LogLevel  string `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"LOG_FORMAT"`
}

const envPrefix = "POINTERPROXY_"

// Default returns the built-in configuration. The suppression constants match
// the delays observed between touches and their compatibility mouse events.
func Default() Config {
	return Config{
		Mode:              "synthesize",
		TouchCapable:      true,
		SuppressThreshold: 20,
		SuppressWindow:    1550 * time.Millisecond,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load returns the configuration from path, if not empty, with environment
// overrides applied.
func Load(path string) (Config, error) {
	return load(path, nil)
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config file %s: unknown keys %v", path, undecoded)
		}
	}

	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if level, err := NormalizeLogLevel(cfg.LogLevel); err == nil {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var errs []error
	switch cfg.Mode {
	case "synthesize", "native", "vendor":
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", cfg.Mode))
	}
	if cfg.SuppressThreshold <= 0 {
		errs = append(errs, errors.New("suppress threshold must be positive"))
	}
	if cfg.SuppressWindow <= 0 {
		errs = append(errs, errors.New("suppress window must be positive"))
	}
	if _, err := NormalizeLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NormalizeLogLevel lower-cases level and checks that it names a known level.
// An empty level means info.
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "":
		return "info", nil
	case "debug", "info", "warn", "error":
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}
