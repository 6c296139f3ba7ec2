// Package config loads server settings from defaults, an optional config
// file, environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Brownie44l1/webserver/internal/server"
)

// EnvPrefix prefixes every environment variable, e.g. HTTPSERVER_ADDR.
const EnvPrefix = "HTTPSERVER"

// Config is the full set of runtime settings.
type Config struct {
	Addr           string        `mapstructure:"addr"`
	PublicPath     string        `mapstructure:"public_path"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxConnections int64         `mapstructure:"max_connections"`
	Log            LogConfig     `mapstructure:"log"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	srv := server.DefaultConfig()
	return &Config{
		Addr:           srv.Addr,
		PublicPath:     "./public",
		ReadTimeout:    srv.ReadTimeout,
		WriteTimeout:   srv.WriteTimeout,
		MaxConnections: srv.MaxConnections,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"addr":            "addr",
	"public-path":     "public_path",
	"read-timeout":    "read_timeout",
	"write-timeout":   "write_timeout",
	"max-connections": "max_connections",
	"log-level":       "log.level",
	"log-format":      "log.format",
}

// RegisterFlags adds the flags understood by Load to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("addr", d.Addr, "address to listen on")
	fs.String("public-path", d.PublicPath, "directory served by the website handler (env PUBLIC_PATH)")
	fs.Duration("read-timeout", d.ReadTimeout, "deadline for reading the request line")
	fs.Duration("write-timeout", d.WriteTimeout, "deadline for writing the response")
	fs.Int64("max-connections", d.MaxConnections, "connections served at once (1 = sequential)")
	fs.String("log-level", d.Log.Level, "log level: debug, info, warn, error")
	fs.String("log-format", d.Log.Format, "log format: text or json")
}

// Load builds the configuration. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("public_path", d.PublicPath)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("write_timeout", d.WriteTimeout)
	v.SetDefault("max_connections", d.MaxConnections)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("public_path", "PUBLIC_PATH", EnvPrefix+"_PUBLIC_PATH"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Addr == "" {
		return &ConfigError{Field: "addr", Message: "must not be empty"}
	}
	if c.PublicPath == "" {
		return &ConfigError{Field: "public_path", Message: "must not be empty"}
	}
	if c.ReadTimeout <= 0 {
		return &ConfigError{Field: "read_timeout", Message: "must be positive"}
	}
	if c.WriteTimeout <= 0 {
		return &ConfigError{Field: "write_timeout", Message: "must be positive"}
	}
	if c.MaxConnections <= 0 {
		return &ConfigError{Field: "max_connections", Message: "must be positive"}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return &ConfigError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}

// Server returns the connection-loop settings.
func (c *Config) Server() server.Config {
	cfg := server.DefaultConfig()
	cfg.Addr = c.Addr
	cfg.ReadTimeout = c.ReadTimeout
	cfg.WriteTimeout = c.WriteTimeout
	cfg.MaxConnections = c.MaxConnections
	return cfg
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, &ConfigError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", l.Level)}
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
