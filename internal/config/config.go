package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Address           string  `yaml:"address"`
		MaxWatchers       int64   `yaml:"max_watchers"`
		CommandsPerSecond float64 `yaml:"commands_per_second"`
	} `yaml:"server"`

	Playback struct {
		TickInterval time.Duration `yaml:"tick_interval"`
	} `yaml:"playback"`

	Transcript struct {
		Path string `yaml:"path"`
	} `yaml:"transcript"`

	Health struct {
		Enabled       bool    `yaml:"enabled"`
		LoadThreshold float64 `yaml:"load_threshold"`
	} `yaml:"health"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	// Telemetry.ConfigPath points at an opentelemetry-configuration file.
	// Empty or missing disables telemetry.
	Telemetry struct {
		ConfigPath string `yaml:"config_path"`
	} `yaml:"telemetry"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	var c Config
	c.Server.Address = ":50051"
	c.Server.MaxWatchers = 16
	c.Server.CommandsPerSecond = 50
	c.Playback.TickInterval = 100 * time.Millisecond
	c.Transcript.Path = "transcript.json"
	c.Health.Enabled = true
	c.Health.LoadThreshold = 0.8
	c.Log.Level = "debug"
	return c
}

func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Address) == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.MaxWatchers <= 0 {
		errs = append(errs, fmt.Errorf("server.max_watchers must be positive, got %d", c.Server.MaxWatchers))
	}
	if c.Playback.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("playback.tick_interval must be positive, got %s", c.Playback.TickInterval))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel parses log.level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
