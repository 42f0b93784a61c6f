// Package config loads the service configuration from an optional YAML file
// overlaid by IPTV_* environment variables. Environment values win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	// HTTP server settings
	Port string `yaml:"port"`

	// Feed sources. Either may be empty, which degrades the service to an
	// empty (or playlist-only) directory instead of refusing to start.
	M3UURL string `yaml:"m3u_url"`
	EPGURL string `yaml:"epg_url"`

	// Refresh settings
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`

	// Feed cache settings
	CachePath string        `yaml:"cache_path"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	// Circuit breaker settings shared by both feeds
	BreakerFailureThreshold int           `yaml:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout"`

	// Keepalive self-ping (optional)
	PingURL      string        `yaml:"ping_url"`
	PingInterval time.Duration `yaml:"ping_interval"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	PrettyLog bool   `yaml:"pretty_log"`

	// Shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Port:                    "8080",
		RefreshInterval:         time.Hour,
		FetchTimeout:            15 * time.Second,
		CachePath:               "iptv-directory.db",
		CacheTTL:                24 * time.Hour,
		BreakerFailureThreshold: 3,
		BreakerTimeout:          5 * time.Minute,
		PingInterval:            2 * time.Minute,
		LogLevel:                "info",
		ShutdownTimeout:         5 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// IPTV_CONFIG_FILE (if set), then IPTV_* environment variables on top.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("IPTV_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	parser := &envParser{}
	parser.parseString("IPTV_PORT", &cfg.Port)
	parser.parseString("IPTV_M3U_URL", &cfg.M3UURL)
	parser.parseString("IPTV_EPG_URL", &cfg.EPGURL)
	parser.parseDuration("IPTV_REFRESH_INTERVAL", &cfg.RefreshInterval)
	parser.parseDuration("IPTV_FETCH_TIMEOUT", &cfg.FetchTimeout)
	parser.parseString("IPTV_CACHE_PATH", &cfg.CachePath)
	parser.parseDuration("IPTV_CACHE_TTL", &cfg.CacheTTL)
	parser.parseInt("IPTV_BREAKER_FAILURE_THRESHOLD", &cfg.BreakerFailureThreshold)
	parser.parseDuration("IPTV_BREAKER_TIMEOUT", &cfg.BreakerTimeout)
	parser.parseString("IPTV_PING_URL", &cfg.PingURL)
	parser.parseDuration("IPTV_PING_INTERVAL", &cfg.PingInterval)
	parser.parseString("IPTV_LOG_LEVEL", &cfg.LogLevel)
	parser.parseBool("IPTV_PRETTY_LOG", &cfg.PrettyLog)
	parser.parseDuration("IPTV_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	if len(parser.errors) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(parser.errors, "\n  - "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate performs validation on the configuration. Missing feed URLs are
// deliberately not an error: the service starts with an empty directory.
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "port is required")
	}
	if c.RefreshInterval <= 0 {
		errors = append(errors, "refresh interval must be positive")
	}
	if c.FetchTimeout <= 0 {
		errors = append(errors, "fetch timeout must be positive")
	}
	if c.CachePath == "" {
		errors = append(errors, "cache path is required")
	}
	if c.CacheTTL < 0 {
		errors = append(errors, "cache TTL must not be negative")
	}
	if c.BreakerFailureThreshold <= 0 {
		errors = append(errors, "breaker failure threshold must be positive")
	}
	if c.BreakerTimeout <= 0 {
		errors = append(errors, "breaker timeout must be positive")
	}
	if c.PingURL != "" && c.PingInterval <= 0 {
		errors = append(errors, "ping interval must be positive when a ping url is set")
	}
	if c.ShutdownTimeout <= 0 {
		errors = append(errors, "shutdown timeout must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, "log level must be one of: debug, info, warn, error")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// envParser collects parse failures so all problems are reported at once.
type envParser struct {
	errors []string
}

func (p *envParser) parseString(envName string, target *string) {
	if val := os.Getenv(envName); val != "" {
		*target = val
	}
}

func (p *envParser) parseDuration(envName string, target *time.Duration) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s must be a valid duration (e.g. 30s, 5m): %v", envName, err))
		return
	}
	*target = parsed
}

func (p *envParser) parseInt(envName string, target *int) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s must be an integer: %v", envName, err))
		return
	}
	*target = parsed
}

func (p *envParser) parseBool(envName string, target *bool) {
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("%s must be a boolean: %v", envName, err))
		return
	}
	*target = parsed
}
