// SPDX-License-Identifier: EPL-2.0

// Package config loads voxmix settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. VOXMIX_ENGINE_VOICES.
const EnvPrefix = "VOXMIX"

// Config holds all configuration for the application
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Device  DeviceConfig  `mapstructure:"device"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig sizes the voice pool and paces the host loop
type EngineConfig struct {
	Voices       int           `mapstructure:"voices"`
	BlockFrames  int           `mapstructure:"block_frames"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// AssetsConfig locates assets on disk and in the bundle
type AssetsConfig struct {
	Root     string        `mapstructure:"root"`    // native filesystem root; empty means the working directory
	Archive  string        `mapstructure:"archive"` // zip bundle; empty means none
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Watch    bool          `mapstructure:"watch"`
}

// DeviceConfig tunes the audio output device
type DeviceConfig struct {
	Buffer time.Duration `mapstructure:"buffer"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("engine.voices", 5)
	v.SetDefault("engine.block_frames", 1024)
	v.SetDefault("engine.tick_interval", "16ms")
	v.SetDefault("assets.root", "")
	v.SetDefault("assets.archive", "")
	v.SetDefault("assets.cache_ttl", "0s")
	v.SetDefault("assets.watch", false)
	v.SetDefault("device.buffer", "50ms")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration into v. When file is empty the usual locations
// are searched and a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.voxmix")
		v.AddConfigPath("/etc/voxmix")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else {
		slog.Debug("using config file", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks ranges and enumerations. The first problem found is
// returned as an *Error.
func (c *Config) Validate() error {
	switch {
	case c.Engine.Voices <= 0:
		return &Error{Field: "engine.voices", Message: "must be at least 1"}
	case c.Engine.BlockFrames <= 0:
		return &Error{Field: "engine.block_frames", Message: "must be at least 1"}
	case c.Engine.TickInterval <= 0:
		return &Error{Field: "engine.tick_interval", Message: "must be positive"}
	case c.Assets.CacheTTL < 0:
		return &Error{Field: "assets.cache_ttl", Message: "must not be negative"}
	case c.Assets.Watch && c.Assets.CacheTTL == 0:
		return &Error{Field: "assets.watch", Message: "requires assets.cache_ttl"}
	case c.Device.Buffer < 0:
		return &Error{Field: "device.buffer", Message: "must not be negative"}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &Error{Field: "logging.format", Message: fmt.Sprintf("unknown format %q (text, json)", c.Logging.Format)}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &Error{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}

	return nil
}

// Error represents a configuration validation error
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
