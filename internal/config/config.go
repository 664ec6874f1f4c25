// Package config loads the host settings from an optional YAML file and then
// overlays the environment, so a container can run with env vars alone.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = "8080"
	DefaultTimezone        = "UTC"
	DefaultLanguage        = "en"
	DefaultSessionTTL      = 30 * time.Minute
	DefaultSessionSweep    = "@every 5m"
	DefaultRangeSpanDays   = 20
	minimumSecretKeyLength = 32
)

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort = errors.New("SECRET_KEY must be at least 32 characters")
	ErrPortInvalid       = errors.New("PORT must be between 1 and 65535")
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string        `yaml:"port"`
	DBPath          string        `yaml:"db_path"`
	Timezone        string        `yaml:"timezone"`
	SecretKey       string        `yaml:"secret_key"`
	DefaultLanguage string        `yaml:"default_language"`
	CookieSecure    bool          `yaml:"cookie_secure"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	SessionSweep    string        `yaml:"session_sweep"`
	DefaultSpanDays int           `yaml:"default_span_days"`
}

func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		DBPath:          filepath.Join("data", "rangepicker.db"),
		Timezone:        DefaultTimezone,
		DefaultLanguage: DefaultLanguage,
		SessionTTL:      DefaultSessionTTL,
		SessionSweep:    DefaultSessionSweep,
		DefaultSpanDays: DefaultRangeSpanDays,
	}
}

// Normalize fills zero values so a partial file still yields a usable config.
func (c *Config) Normalize() {
	defaults := Default()

	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = defaults.Port
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = defaults.DBPath
	}
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = defaults.Timezone
	}
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = defaults.DefaultLanguage
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaults.SessionTTL
	}
	if strings.TrimSpace(c.SessionSweep) == "" {
		c.SessionSweep = defaults.SessionSweep
	}
	if c.DefaultSpanDays <= 0 {
		c.DefaultSpanDays = defaults.DefaultSpanDays
	}
}

// Load reads path when it exists. An empty path or a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overlays non-empty environment values on top of c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get("PORT"); ok {
		c.Port = value
	}
	if value, ok := get("DB_PATH"); ok {
		c.DBPath = value
	}
	if value, ok := get("TZ"); ok {
		c.Timezone = value
	}
	if value, ok := get("SECRET_KEY"); ok {
		c.SecretKey = value
	}
	if value, ok := get("DEFAULT_LANGUAGE"); ok {
		c.DefaultLanguage = value
	}
	if value, ok := get("COOKIE_SECURE"); ok {
		secure, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse COOKIE_SECURE %q: %w", value, err)
		}
		c.CookieSecure = secure
	}
	if value, ok := get("SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse SESSION_TTL %q: %w", value, err)
		}
		c.SessionTTL = ttl
	}
	if value, ok := get("SESSION_SWEEP"); ok {
		c.SessionSweep = value
	}
	if value, ok := get("DEFAULT_SPAN_DAYS"); ok {
		span, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse DEFAULT_SPAN_DAYS %q: %w", value, err)
		}
		c.DefaultSpanDays = span
	}

	c.Normalize()
	return nil
}

// Validate checks the settings the HTTP host cannot run without.
func (c *Config) Validate() error {
	secret, err := ResolveSecretKey(c.SecretKey)
	if err != nil {
		return err
	}
	c.SecretKey = secret

	port, err := ResolvePort(c.Port)
	if err != nil {
		return err
	}
	c.Port = port
	return nil
}

// Location loads Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", c.Timezone)
		return time.UTC
	}
	return location
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyInsecure
	}
	if len(secret) < minimumSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return DefaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("%w: got %q", ErrPortInvalid, raw)
	}
	return strconv.Itoa(value), nil
}
