// Package config loads truvida settings from a TOML file, a .env file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvBackend    = "TRUVIDA_BACKEND"
	EnvRedisAddr  = "TRUVIDA_REDIS_ADDR"
	EnvStepsToken = "TRUVIDA_STEPS_TOKEN"
)

// Config holds all truvida configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Storage    StorageConfig    `toml:"storage"`
	Water      WaterConfig      `toml:"water"`
	Steps      StepsConfig      `toml:"steps"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	Timezone    string `toml:"timezone,omitempty"`
}

// StorageConfig selects and configures the record store.
type StorageConfig struct {
	Backend       string `toml:"backend"`
	SQLitePath    string `toml:"sqlite_path,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
	RedisPrefix   string `toml:"redis_prefix,omitempty"`
}

// WaterConfig holds water logging preferences.
type WaterConfig struct {
	DefaultGlassML int `toml:"default_glass_ml"`
}

// StepsConfig holds the optional external step provider.
type StepsConfig struct {
	ProviderURL   string `toml:"provider_url,omitempty"`
	ProviderToken string `toml:"provider_token,omitempty"`
}

// DaemonConfig holds reminder daemon settings.
type DaemonConfig struct {
	Addr     string `toml:"addr"`
	Interval string `toml:"interval"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 7,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Water: WaterConfig{
			DefaultGlassML: 250,
		},
		Daemon: DaemonConfig{
			Addr:     "127.0.0.1:8787",
			Interval: "1m",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "truvida")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "truvida")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database,
// daemon pid file and logs.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "truvida")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "truvida")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	_ = godotenv.Load()
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from TRUVIDA_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisAddr)); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStepsToken)); v != "" {
		cfg.Steps.ProviderToken = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// SQLitePath returns the configured database path, or the default under DataDir.
func (c Config) SQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(DataDir(), "truvida.db")
}

// Location resolves the configured timezone, falling back to local time.
func (c Config) Location() (*time.Location, error) {
	if c.General.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("loading timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// PollInterval parses the daemon interval, defaulting to one minute.
func (c Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Daemon.Interval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Set assigns a dotted key such as "water.default_glass_ml".
func (c *Config) Set(key, value string) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", key, value)
		}
		return n, nil
	}

	switch key {
	case "general.default_days":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.General.DefaultDays = n
	case "general.timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.General.Timezone = value
	case "storage.backend":
		c.Storage.Backend = value
	case "storage.sqlite_path":
		c.Storage.SQLitePath = value
	case "storage.redis_addr":
		c.Storage.RedisAddr = value
	case "storage.redis_password":
		c.Storage.RedisPassword = value
	case "storage.redis_db":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.Storage.RedisDB = n
	case "storage.redis_prefix":
		c.Storage.RedisPrefix = value
	case "water.default_glass_ml":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.Water.DefaultGlassML = n
	case "steps.provider_url":
		c.Steps.ProviderURL = value
	case "steps.provider_token":
		c.Steps.ProviderToken = value
	case "daemon.addr":
		c.Daemon.Addr = value
	case "daemon.interval":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Daemon.Interval = value
	case "appearance.theme":
		c.Appearance.Theme = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
