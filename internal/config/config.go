// Package config loads application settings from an optional YAML file and
// DFA_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/dfa/pkg/generator"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DFA_"

// Backends accepted by store.backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendLoam   = "loam"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type GenerateConfig struct {
	Limit     int `mapstructure:"limit" yaml:"limit"`
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`
}

type StoreConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend"`
	Dir     string      `mapstructure:"dir" yaml:"dir"`
	Redis   RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Generate: GenerateConfig{Limit: generator.DefaultLimit, MaxLength: generator.DefaultMaxLength},
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".dfa/automata",
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "dfa:"},
		},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// envKeys maps each environment variable suffix to its dotted setting.
var envKeys = map[string]string{
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
	"GENERATE_LIMIT":      "generate.limit",
	"GENERATE_MAX_LENGTH": "generate.max_length",
	"STORE_BACKEND":       "store.backend",
	"STORE_DIR":           "store.dir",
	"REDIS_ADDR":          "store.redis.addr",
	"REDIS_PASSWORD":      "store.redis.password",
	"REDIS_DB":            "store.redis.db",
	"REDIS_PREFIX":        "store.redis.prefix",
	"REDIS_TTL":           "store.redis.ttl",
	"HTTP_ADDR":           "http.addr",
	"METRICS_ENABLED":     "metrics.enabled",
}

// Load reads path (if not empty), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}
	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for suffix, key := range envKeys {
		if val, ok := lookup(EnvPrefix + suffix); ok {
			set(raw, strings.Split(key, "."), val)
		}
	}
}

func set(m map[string]any, path []string, val string) {
	if len(path) == 1 {
		m[path[0]] = val
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[path[0]] = child
	}
	set(child, path[1:], val)
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendLoam:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.Generate.Limit < 0 || c.Generate.MaxLength < 0 {
		return fmt.Errorf("%w: generate bounds must be non-negative", ErrInvalidConfig)
	}
	return nil
}
