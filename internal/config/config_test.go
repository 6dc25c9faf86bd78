package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/gyminsights/internal/config"
	"github.com/2beens/gyminsights/internal/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
environment = "development"
port = 9100
log_level = "debug"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "gyminsights"
cache_backend = "redis"
api_key_hashes = ["$2a$12$abc"]

[development.thresholds]
max_weekly_sets = 120
underworked_ratio = 0.6
warmup_keywords = ["warm", "mobility"]

[production]
environment = "production"
port = 9000
cache_backend = "memory"
cache_ttl_seconds = 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := config.Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, config.CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 600, cfg.CacheTTLSeconds)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, "postgres", cfg.PostgresUser)
	assert.Equal(t, []string{"$2a$12$abc"}, cfg.APIKeyHashes)
	assert.Equal(t, 2048, cfg.MaxRequestBodyKB)

	th := cfg.Thresholds.Apply(insights.DefaultThresholds())
	assert.Equal(t, 120, th.MaxWeeklySets)
	assert.Equal(t, 0.6, th.UnderworkedRatio)
	assert.Equal(t, []string{"warm", "mobility"}, th.WarmupKeywords)
	// untouched keys keep the engine defaults
	assert.Equal(t, 6, th.MaxWorkoutDays)
	assert.Equal(t, 3, th.MinPredictionSessions)

	prodCfg, err := config.Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, config.CacheBackendMemory, prodCfg.CacheBackend)
	assert.Equal(t, 60, prodCfg.CacheTTLSeconds)
	assert.Equal(t, insights.DefaultThresholds(), prodCfg.Thresholds.Apply(insights.DefaultThresholds()))
}

func TestLoad_APIKeyHashesFromEnv(t *testing.T) {
	t.Setenv("INSIGHTS_API_KEY_HASHES", "$2a$12$one, ,$2a$12$two")
	cfg, err := config.Load("development", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"$2a$12$abc", "$2a$12$one", "$2a$12$two"}, cfg.APIKeyHashes)
}

func TestLoad_Errors(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, err := config.Load("staging", path)
	assert.EqualError(t, err, "unknown env: staging")

	_, err = config.Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "not found")

	_, err = config.Load("dev", t.TempDir())
	assert.ErrorContains(t, err, "not a file")

	_, err = config.Load("dev", writeConfig(t, "[production]\nport = 1\n"))
	assert.ErrorContains(t, err, "missing")

	_, err = config.Load("dev", writeConfig(t, "[development]\ncache_backend = \"memcached\"\n"))
	assert.ErrorContains(t, err, "unknown cache backend")

	_, err = config.Load("dev", writeConfig(t, "[development.thresholds]\nunderworked_ratio = 1.5\n"))
	assert.ErrorContains(t, err, "underworked_ratio")
}
