package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings read from config.toml.
type Config struct {
	APIBase        string
	APIToken       string
	RequestTimeout time.Duration
	RateLimit      float64
	PageSize       int
	Debounce       time.Duration
	LogDir         string
	LogLevel       string
	RedisAddr      string
	CacheTTL       time.Duration
}

const (
	defaultConfigPath     = "~/.config/tally/config.toml"
	defaultAPIBase        = "http://127.0.0.1:8080/api"
	defaultLogDir         = "~/.local/state/tally"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 15 * time.Second
	defaultPageSize       = 10
	defaultDebounce       = 400 * time.Millisecond
	defaultCacheTTL       = 10 * time.Minute
	maxPageSize           = 500
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		RequestTimeout: defaultRequestTimeout,
		PageSize:       defaultPageSize,
		Debounce:       defaultDebounce,
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
		CacheTTL:       defaultCacheTTL,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		APIToken       string `toml:"api_token"`
		RequestTimeout any    `toml:"request_timeout"`
		RateLimit      any    `toml:"rate_limit"`
		PageSize       *int   `toml:"page_size"`
		DebounceMS     *int   `toml:"debounce_ms"`
		LogDir         string `toml:"log_dir"`
		LogLevel       string `toml:"log_level"`
		RedisAddr      string `toml:"redis_addr"`
		CacheTTL       any    `toml:"cache_ttl"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	if raw.RequestTimeout != nil {
		v, err := number("request_timeout", raw.RequestTimeout)
		if err != nil {
			return Config{}, err
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be positive, got %v", v)
		}
		cfg.RequestTimeout = seconds(v)
	}
	if raw.RateLimit != nil {
		v, err := number("rate_limit", raw.RateLimit)
		if err != nil {
			return Config{}, err
		}
		if v < 0 {
			return Config{}, fmt.Errorf("rate_limit must not be negative, got %v", v)
		}
		cfg.RateLimit = v
	}
	if raw.PageSize != nil {
		if err := checkPageSize(*raw.PageSize); err != nil {
			return Config{}, err
		}
		cfg.PageSize = *raw.PageSize
	}
	if raw.DebounceMS != nil {
		if *raw.DebounceMS < 0 {
			return Config{}, fmt.Errorf("debounce_ms must not be negative, got %d", *raw.DebounceMS)
		}
		cfg.Debounce = time.Duration(*raw.DebounceMS) * time.Millisecond
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.RedisAddr = strings.TrimSpace(raw.RedisAddr)
	if raw.CacheTTL != nil {
		v, err := number("cache_ttl", raw.CacheTTL)
		if err != nil {
			return Config{}, err
		}
		if v < 0 {
			return Config{}, fmt.Errorf("cache_ttl must not be negative, got %v", v)
		}
		cfg.CacheTTL = seconds(v)
	}

	return cfg, nil
}

// WithPageSize overrides the page size, e.g. from a flag. Zero keeps the
// configured value.
func (c Config) WithPageSize(size int) (Config, error) {
	if size == 0 {
		return c, nil
	}
	if err := checkPageSize(size); err != nil {
		return c, err
	}
	c.PageSize = size
	return c, nil
}

// LogPath returns the path to the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/tally.log")
	}
	return filepath.Join(c.LogDir, "tally.log")
}

// PrefsPath returns the preferences file next to the default config.
func PrefsPath() string {
	return mustExpand("~/.config/tally/prefs.toml")
}

func checkPageSize(size int) error {
	if size <= 0 || size > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", maxPageSize, size)
	}
	return nil
}

// number accepts TOML integers and floats.
func number(key string, v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%s must be a number, got %T", key, v)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
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
