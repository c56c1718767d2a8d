package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/dfa/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
generate:
  limit: 25
store:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
    ttl: 90s
metrics:
  enabled: false
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 25, cfg.Generate.Limit)
	assert.Equal(t, 20, cfg.Generate.MaxLength, "unset keys keep defaults")
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, "dfa:", cfg.Store.Redis.Prefix)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "generate:\n  limit: 25\nstore:\n  backend: memory\n")
	t.Setenv("DFA_GENERATE_LIMIT", "7")
	t.Setenv("DFA_STORE_BACKEND", "loam")
	t.Setenv("DFA_REDIS_TTL", "1m")
	t.Setenv("DFA_METRICS_ENABLED", "false")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Generate.Limit)
	assert.Equal(t, config.BackendLoam, cfg.Store.Backend)
	assert.Equal(t, time.Minute, cfg.Store.Redis.TTL)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown backend": "store:\n  backend: s3\n",
		"unknown key":     "colour: blue\n",
		"bad bounds":      "generate:\n  limit: -1\n",
		"bad syntax":      "log: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
