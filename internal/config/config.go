// Package config loads worldsim settings from defaults, an optional YAML
// file and WORLDSIM_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WORLDSIM_"

type Config struct {
	World WorldConfig `koanf:"world"`
	Sim   SimConfig   `koanf:"sim"`
	DB    DBConfig    `koanf:"db"`
	Log   LogConfig   `koanf:"log"`
}

type WorldConfig struct {
	Seed   int64 `koanf:"seed"`
	Radius int   `koanf:"radius"`
}

type SimConfig struct {
	Ticks    uint64        `koanf:"ticks"`    // 0 runs until interrupted
	Interval time.Duration `koanf:"interval"` // pause between ticks
	Journal  uint64        `koanf:"journal"`  // ticks between director journal entries
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

// Load reads the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("world.seed", 42)
	k.Set("world.radius", 22)
	k.Set("sim.ticks", 360)
	k.Set("sim.interval", "0s")
	k.Set("sim.journal", 1)
	k.Set("db.path", "data/worldsim.db")
	k.Set("log.level", "info")
	k.Set("log.format", "text")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.Radius < 1 {
		return fmt.Errorf("config: world.radius must be positive, got %d", c.World.Radius)
	}
	if c.Sim.Interval < 0 {
		return fmt.Errorf("config: sim.interval must not be negative, got %s", c.Sim.Interval)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("config: db.path is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// log at info; "off" silences everything.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "disabled", "none", "off":
		return slog.Level(99)
	default:
		return slog.LevelInfo
	}
}

// Logger builds a structured logger writing to w.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.ToLower(l.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
