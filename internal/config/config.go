package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/2beens/gyminsights/pkg"

	"github.com/BurntSushi/toml"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// insights
	CacheBackend           string   `toml:"cache_backend"`
	CacheTTLSeconds        int      `toml:"cache_ttl_seconds"`
	MemoryCacheSizeMB      int      `toml:"memory_cache_size_mb"`
	BatchConcurrency       int      `toml:"batch_concurrency"`
	MaxBatchUsers          int      `toml:"max_batch_users"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	APIKeyHashes           []string `toml:"api_key_hashes"`
	MaxRequestBodyKB       int      `toml:"max_request_body_kb"`

	Thresholds ThresholdsConfig `toml:"thresholds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file and returns the section for env with defaults
// filled in. Extra API key hashes can be passed through
// INSIGHTS_API_KEY_HASHES as a comma separated list.
func Load(env, path string) (*Config, error) {
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, fmt.Errorf("check config file %s: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("config file %s not found", path)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	if extra := os.Getenv("INSIGHTS_API_KEY_HASHES"); extra != "" {
		for _, h := range strings.Split(extra, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.APIKeyHashes = append(cfg.APIKeyHashes, h)
			}
		}
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.CacheBackend == "" {
		c.CacheBackend = CacheBackendMemory
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = 600
	}
	if c.MemoryCacheSizeMB == 0 {
		c.MemoryCacheSizeMB = 32
	}
	if c.BatchConcurrency == 0 {
		c.BatchConcurrency = 8
	}
	if c.MaxBatchUsers == 0 {
		c.MaxBatchUsers = 100
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.MaxRequestBodyKB == 0 {
		c.MaxRequestBodyKB = 2048
	}
}

func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend: %s", c.CacheBackend)
	}
	if c.CacheTTLSeconds < 0 {
		return errors.New("cache ttl cannot be negative")
	}
	if c.BatchConcurrency < 0 || c.MaxBatchUsers < 0 {
		return errors.New("batch limits cannot be negative")
	}
	return c.Thresholds.Validate()
}
