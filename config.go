package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"qordleweb/internal/suggest"
)

// Config holds the server configuration.
type Config struct {
	Port         string
	IsProduction bool

	BaseURL       string
	Variant       suggest.Variant
	Timeout       time.Duration
	CacheTTL      time.Duration
	UpstreamRPS   float64
	UpstreamBurst int

	RateLimitRPS   int
	RateLimitBurst int

	SessionDir     string
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
}

// fileConfig is the optional YAML or TOML file named by SUGGEST_CONFIG.
type fileConfig struct {
	Upstream struct {
		BaseURL  string  `yaml:"baseURL" toml:"base_url"`
		Timeout  string  `yaml:"timeout" toml:"timeout"`
		CacheTTL string  `yaml:"cacheTTL" toml:"cache_ttl"`
		RPS      float64 `yaml:"rps" toml:"rps"`
		Burst    int     `yaml:"burst" toml:"burst"`
	} `yaml:"upstream" toml:"upstream"`
	Variant suggest.Variant `yaml:"variant" toml:"variant"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() *Config {
	return &Config{
		Port:           DefaultPort,
		BaseURL:        DefaultBaseURL,
		Variant:        suggest.VariantQordle,
		Timeout:        suggest.DefaultTimeout,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		SessionDir:     DefaultSessionDir,
		SessionTimeout: DefaultSessionTimeout,
		CookieMaxAge:   DefaultCookieMaxAge,
		StaticCacheAge: DefaultStaticCacheAge,
	}
}

// loadConfig builds the configuration from defaults, the optional config
// file, then environment variables, each overriding the previous.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := getEnvString("SUGGEST_CONFIG", ""); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
		logInfo("Loaded configuration file %s", path)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadConfigFile decodes a YAML or TOML file, chosen by extension, into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("error decoding config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("error decoding config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}

	if fc.Upstream.BaseURL != "" {
		cfg.BaseURL = fc.Upstream.BaseURL
	}
	if fc.Upstream.Timeout != "" {
		d, err := time.ParseDuration(fc.Upstream.Timeout)
		if err != nil {
			return fmt.Errorf("invalid upstream timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.Upstream.CacheTTL != "" {
		d, err := time.ParseDuration(fc.Upstream.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid upstream cacheTTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if fc.Upstream.RPS > 0 {
		cfg.UpstreamRPS = fc.Upstream.RPS
	}
	if fc.Upstream.Burst > 0 {
		cfg.UpstreamBurst = fc.Upstream.Burst
	}
	if fc.Variant != (suggest.Variant{}) {
		v, err := mergeVariant(fc.Variant)
		if err != nil {
			return err
		}
		cfg.Variant = v
	}
	return nil
}

// mergeVariant fills unset fields of v from the built-in variant it names.
// A variant with a name that is not built in must set every field.
func mergeVariant(v suggest.Variant) (suggest.Variant, error) {
	if v.Name == "" {
		v.Name = "custom"
	}
	base, err := suggest.LookupVariant(v.Name)
	if err != nil {
		return v, v.Validate()
	}
	if v.RoutePrefix == "" {
		v.RoutePrefix = base.RoutePrefix
	}
	if v.Delimiter == "" {
		v.Delimiter = base.Delimiter
	}
	return v, nil
}

// applyEnv overrides cfg with any environment variables that are set.
func applyEnv(cfg *Config) error {
	cfg.Port = getEnvString("PORT", cfg.Port)
	cfg.IsProduction = os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"

	cfg.BaseURL = getEnvString("SUGGEST_BASE_URL", cfg.BaseURL)
	if name := getEnvString("SUGGEST_VARIANT", ""); name != "" {
		v, err := suggest.LookupVariant(name)
		if err != nil {
			return err
		}
		cfg.Variant = v
	}
	cfg.Variant.RoutePrefix = getEnvString("SUGGEST_ROUTE_PREFIX", cfg.Variant.RoutePrefix)
	if delim := os.Getenv("SUGGEST_DELIMITER"); delim != "" {
		cfg.Variant.Delimiter = delim
	}
	cfg.Timeout = getEnvDuration("SUGGEST_TIMEOUT", cfg.Timeout)
	cfg.CacheTTL = getEnvDuration("SUGGEST_CACHE_TTL", cfg.CacheTTL)
	cfg.UpstreamRPS = getEnvFloat("UPSTREAM_RPS", cfg.UpstreamRPS)
	cfg.UpstreamBurst = getEnvInt("UPSTREAM_BURST", cfg.UpstreamBurst)

	cfg.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	cfg.SessionDir = getEnvString("SESSION_DIR", cfg.SessionDir)
	cfg.SessionTimeout = getEnvDuration("SESSION_TIMEOUT", cfg.SessionTimeout)
	cfg.CookieMaxAge = getEnvDuration("COOKIE_MAX_AGE", cfg.CookieMaxAge)
	cfg.StaticCacheAge = getEnvDuration("STATIC_CACHE_AGE", cfg.StaticCacheAge)
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("suggestion base URL is required")
	}
	if err := c.Variant.Validate(); err != nil {
		return err
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("session timeout must be positive")
	}
	return nil
}

// envName describes the running mode for logs and the health check.
func (c *Config) envName() string {
	return map[bool]string{true: "production", false: "development"}[c.IsProduction]
}
