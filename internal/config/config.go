// Package config loads and persists trakt-watch settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRAKT_WATCH_LOG_LEVEL.
const EnvPrefix = "TRAKT_WATCH"

// Config holds the effective settings after file and environment are merged.
type Config struct {
	ClientID       string `mapstructure:"client_id" json:"client_id"`
	APIURL         string `mapstructure:"api_url" json:"api_url"`
	WebHost        string `mapstructure:"web_host" json:"web_host"`
	PinnedShow     string `mapstructure:"pinned_show" json:"pinned_show,omitempty"`
	LogLevel       string `mapstructure:"log_level" json:"log_level"`
	RequestTimeout string `mapstructure:"request_timeout" json:"request_timeout"` // Go duration string like "30s"
	CacheTTL       string `mapstructure:"cache_ttl" json:"cache_ttl"`             // "0" disables the response cache
	RateLimit      int    `mapstructure:"rate_limit" json:"rate_limit"`           // requests per 10 seconds, 0 disables
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"client_id",
	"api_url",
	"web_host",
	"pinned_show",
	"log_level",
	"request_timeout",
	"cache_ttl",
	"rate_limit",
}

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		APIURL:         "https://api.trakt.tv",
		WebHost:        "trakt.tv",
		LogLevel:       "warn",
		RequestTimeout: "30s",
		CacheTTL:       "10m",
		RateLimit:      100,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".trakt-watch", "config.json"), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}

func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")

	d := DefaultConfig()
	v.SetDefault("client_id", d.ClientID)
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("web_host", d.WebHost)
	v.SetDefault("pinned_show", d.PinnedShow)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("rate_limit", d.RateLimit)

	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
		_ = v.BindEnv("pinned_show", EnvPrefix+"_SHOW", EnvPrefix+"_PINNED_SHOW")
		_ = v.BindEnv("client_id", EnvPrefix+"_CLIENT_ID", "TRAKT_CLIENT_ID")
	}
	return v
}

// readFile loads path into v. A missing file is not an error.
func readFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads the configuration from path, or from ConfigPath when path is
// empty, and applies environment overrides. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	v := newViper(true)
	if err := readFile(v, path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to disk
func (cfg *Config) Save(path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Set persists a single key to the file at path. Environment overrides are
// not written back.
func Set(path, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w %q, expected one of: %s", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}

	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	v := newViper(false)
	if err := readFile(v, path); err != nil {
		return err
	}
	v.Set(key, value)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.Save(path)
}

// Validate checks that every setting can be used.
func (cfg *Config) Validate() error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", cfg.APIURL)
	}
	if strings.TrimSpace(cfg.WebHost) == "" || strings.Contains(cfg.WebHost, "/") {
		return fmt.Errorf("invalid web_host %q", cfg.WebHost)
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
		}
	}
	if _, err := parseDuration("request_timeout", cfg.RequestTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("cache_ttl", cfg.CacheTTL); err != nil {
		return err
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit %d, must be >= 0", cfg.RateLimit)
	}
	return nil
}

// Timeout returns the request timeout.
func (cfg *Config) Timeout() time.Duration {
	d, _ := parseDuration("request_timeout", cfg.RequestTimeout)
	return d
}

// TTL returns the response cache lifetime. Zero disables caching.
func (cfg *Config) TTL() time.Duration {
	d, _ := parseDuration("cache_ttl", cfg.CacheTTL)
	return d
}

// Redacted returns a copy safe to print, with the client id masked.
func (cfg *Config) Redacted() Config {
	c := *cfg
	if n := len(c.ClientID); n > 4 {
		c.ClientID = strings.Repeat("*", n-4) + c.ClientID[n-4:]
	} else if n > 0 {
		c.ClientID = strings.Repeat("*", n)
	}
	return c
}

func parseDuration(key, s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q, expected a duration like \"30s\"", key, s)
	}
	return d, nil
}
