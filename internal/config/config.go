// Package config resolves settings from defaults, a TOML file, the
// environment and .env files, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	BaseURL        string
	AuthURL        string
	Timeout        time.Duration
	ArrivalDelay   time.Duration
	Modes          []string
	Store          string
	DataDir        string
	LogLevel       string
	Addr           string
	AllowedOrigins []string
}

const (
	defaultConfigPath   = "~/.config/gomate/config.toml"
	defaultBaseURL      = "https://api.tfl.gov.uk"
	defaultAuthURL      = "https://dummyjson.com/auth/login"
	defaultTimeout      = 10 * time.Second
	defaultArrivalDelay = 800 * time.Millisecond
	defaultStore        = "file"
	defaultLogLevel     = "info"
	defaultAddr         = "127.0.0.1:8787"

	envPrefix = "GOMATE_"
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		AuthURL:        defaultAuthURL,
		Timeout:        defaultTimeout,
		ArrivalDelay:   defaultArrivalDelay,
		Modes:          []string{"tube", "bus", "train"},
		Store:          defaultStore,
		LogLevel:       defaultLogLevel,
		Addr:           defaultAddr,
		AllowedOrigins: []string{"*"},
	}
}

// fileConfig mirrors the TOML layout
type fileConfig struct {
	BaseURL      string   `toml:"base_url"`
	AuthURL      string   `toml:"auth_url"`
	Timeout      string   `toml:"timeout"`
	ArrivalDelay string   `toml:"arrival_delay"`
	Modes        []string `toml:"modes"`
	Store        string   `toml:"store"`
	DataDir      string   `toml:"data_dir"`
	LogLevel     string   `toml:"log_level"`
	Server       struct {
		Addr           string   `toml:"addr"`
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"server"`
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the config file at path (the default location when empty) and
// applies GOMATE_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved) //nolint:gosec // path comes from the user's own flag or default location
	switch {
	case err == nil:
		if err := cfg.applyFile(data); err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.DataDir != "" {
		cfg.DataDir = mustExpand(cfg.DataDir)
	}
	return cfg, nil
}

func (c *Config) applyFile(data []byte) error {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&c.BaseURL, raw.BaseURL)
	setString(&c.AuthURL, raw.AuthURL)
	setString(&c.Store, raw.Store)
	setString(&c.DataDir, raw.DataDir)
	setString(&c.LogLevel, raw.LogLevel)
	setString(&c.Addr, raw.Server.Addr)

	if err := setDuration(&c.Timeout, raw.Timeout, "timeout"); err != nil {
		return err
	}
	if err := setDuration(&c.ArrivalDelay, raw.ArrivalDelay, "arrival_delay"); err != nil {
		return err
	}
	if modes := cleanList(raw.Modes); len(modes) > 0 {
		c.Modes = modes
	}
	if origins := cleanList(raw.Server.AllowedOrigins); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.BaseURL, os.Getenv(envPrefix+"BASE_URL"))
	setString(&c.AuthURL, os.Getenv(envPrefix+"AUTH_URL"))
	setString(&c.Store, os.Getenv(envPrefix+"STORE"))
	setString(&c.DataDir, os.Getenv(envPrefix+"DATA_DIR"))
	setString(&c.LogLevel, os.Getenv(envPrefix+"LOG_LEVEL"))
	setString(&c.Addr, os.Getenv(envPrefix+"ADDR"))

	if err := setDuration(&c.Timeout, os.Getenv(envPrefix+"TIMEOUT"), envPrefix+"TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.ArrivalDelay, os.Getenv(envPrefix+"ARRIVAL_DELAY"), envPrefix+"ARRIVAL_DELAY"); err != nil {
		return err
	}
	if modes := SplitList(os.Getenv(envPrefix + "MODES")); len(modes) > 0 {
		c.Modes = modes
	}
	if origins := SplitList(os.Getenv(envPrefix + "ALLOWED_ORIGINS")); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	return nil
}

// SlogLevel returns the configured log level, info when unrecognized
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SplitList splits a comma-separated list, dropping blanks
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, value, name string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if d < 0 {
		return fmt.Errorf("parse %s: negative duration %s", name, v)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
