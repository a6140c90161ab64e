// Package config provides persistent configuration for waktu-solat.
//
// Configuration is stored as JSON at ~/.config/waktu-solat/config.json
// (XDG-compliant). The merge priority is:
// CLI flags > WAKTU_SOLAT_* environment (and .env) > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
)

const (
	configDirName  = "waktu-solat"
	configFileName = "config.json"

	// EnvPrefix prefixes environment overrides, e.g. WAKTU_SOLAT_ZONE.
	EnvPrefix = "WAKTU_SOLAT_"

	// DefaultSource is the directory the yearly tables are published in.
	DefaultSource = "jadual_solat_malaysia_2025"
	// DefaultListen is the address `serve` binds to.
	DefaultListen = ":8080"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"zone",
	"source",
	"time_column",
	"time_format",
	"format",
	"cache_dir",
	"cache_backend",
	"cache_ttl",
	"redis_addr",
	"listen",
	"log_level",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Zone         string `json:"zone,omitempty"`
	Source       string `json:"source,omitempty"`
	TimeColumn   *int   `json:"time_column,omitempty"` // pointer so we can distinguish "not set" from 0
	TimeFormat   string `json:"time_format,omitempty"` // "12h" or "24h"
	Format       string `json:"format,omitempty"`      // status-line format mode or template
	CacheDir     string `json:"cache_dir,omitempty"`
	CacheBackend string `json:"cache_backend,omitempty"` // "file", "redis" or "none"
	CacheTTL     string `json:"cache_ttl,omitempty"`     // Go duration, e.g. "24h"
	RedisAddr    string `json:"redis_addr,omitempty"`
	Listen       string `json:"listen,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	col := 3
	return Config{
		Source:       DefaultSource,
		TimeColumn:   &col,
		TimeFormat:   "12h",
		Format:       prayer.FormatNameAndRemaining,
		CacheBackend: CacheFile,
		CacheTTL:     "24h",
		Listen:       DefaultListen,
		LogLevel:     "warn",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate runs every set field through the same checks as Set.
func (c Config) Validate() error {
	var checked Config
	for _, key := range ValidKeys {
		v, _ := c.Get(key)
		if v == "" {
			continue
		}
		if err := checked.Set(key, v); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

var zonePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "zone":
		if !zonePattern.MatchString(value) {
			return fmt.Errorf("invalid zone %q: use a code such as SGR01", value)
		}
		c.Zone = strings.ToUpper(value)
	case "source":
		c.Source = value
	case "time_column":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid time_column %q: must be an integer", value)
		}
		if v < 1 {
			return fmt.Errorf("invalid time_column %q: must be at least 1 (column 0 is the date)", value)
		}
		c.TimeColumn = &v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "format":
		if !prayer.ValidFormat(value) {
			return fmt.Errorf("invalid format %q", value)
		}
		c.Format = value
	case "cache_dir":
		c.CacheDir = value
	case "cache_backend":
		switch value {
		case CacheFile, CacheRedis, CacheNone:
		default:
			return fmt.Errorf("invalid cache_backend %q: must be file, redis or none", value)
		}
		c.CacheBackend = value
	case "cache_ttl":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid cache_ttl %q: must be a duration such as 24h", value)
		}
		c.CacheTTL = value
	case "redis_addr":
		c.RedisAddr = value
	case "listen":
		c.Listen = value
	case "log_level":
		if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil || value == "" {
			return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", value)
		}
		c.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "zone":
		return c.Zone, nil
	case "source":
		return c.Source, nil
	case "time_column":
		if c.TimeColumn == nil {
			return "", nil
		}
		return strconv.Itoa(*c.TimeColumn), nil
	case "time_format":
		return c.TimeFormat, nil
	case "format":
		return c.Format, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "cache_backend":
		return c.CacheBackend, nil
	case "cache_ttl":
		return c.CacheTTL, nil
	case "redis_addr":
		return c.RedisAddr, nil
	case "listen":
		return c.Listen, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Merge returns a copy of c with every set field of over applied on top.
func (c Config) Merge(over Config) Config {
	for _, key := range ValidKeys {
		v, _ := over.Get(key)
		if v != "" {
			// over comes from Set, FromEnv or LoadFrom, all of which validate.
			_ = c.Set(key, v)
		}
	}
	return c
}

// FromEnv builds a Config from WAKTU_SOLAT_<KEY> variables.
// lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	for _, key := range ValidKeys {
		v, ok := lookup(EnvPrefix + strings.ToUpper(key))
		if !ok || v == "" {
			continue
		}
		if err := cfg.Set(key, v); err != nil {
			return Config{}, fmt.Errorf("%s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// TimeColumnOrDefault returns the time column, falling back to def.
func (c *Config) TimeColumnOrDefault(def int) int {
	if c.TimeColumn != nil {
		return *c.TimeColumn
	}
	return def
}

// TTL parses CacheTTL, falling back to def when unset or invalid.
func (c *Config) TTL(def time.Duration) time.Duration {
	if c.CacheTTL == "" {
		return def
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return def
	}
	return d
}
