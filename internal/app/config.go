package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abdos10/think-like-genius/internal/history"
	"github.com/abdos10/think-like-genius/internal/observability"
	"github.com/abdos10/think-like-genius/internal/platform/envutil"
	"github.com/abdos10/think-like-genius/internal/platform/openai"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogMode  string `yaml:"log_mode"`

	Store       StoreConfig              `yaml:"store"`
	OpenAI      openai.Config            `yaml:"openai"`
	History     history.Config           `yaml:"history"`
	Otel        observability.OtelConfig `yaml:"otel"`
	CORSOrigins []string                 `yaml:"cors_origins"`
	Metrics     bool                     `yaml:"metrics_enabled"`
	BadgeFont   string                   `yaml:"badge_font"`
	Shutdown    time.Duration            `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

func DefaultConfig() Config {
	return Config{
		HTTPAddr: ":5000",
		LogMode:  "development",
		Store:    StoreConfig{Driver: StoreMemory},
		OpenAI:   openai.DefaultConfig(),
		History: history.Config{
			Timeout:         10 * time.Second,
			RedisPrefix:     "tlg",
			RedisMaxEntries: 100,
		},
		Otel:     observability.OtelConfig{ServiceName: "think-like-genius", SampleRatio: 0.1},
		Metrics:  true,
		Shutdown: 10 * time.Second,
	}
}

// LoadConfig layers defaults, the YAML file at path (if any) and the
// environment, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config file %s not found", path)
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg = cfg.withEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withEnv() Config {
	c.HTTPAddr = envutil.String("HTTP_ADDR", c.HTTPAddr)
	if port := envutil.String("PORT", ""); port != "" && os.Getenv("HTTP_ADDR") == "" {
		c.HTTPAddr = ":" + port
	}
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)

	c.Store.Driver = strings.ToLower(envutil.String("STORE_DRIVER", c.Store.Driver))
	c.Store.DSN = envutil.String("STORE_DSN", c.Store.DSN)

	c.OpenAI = c.OpenAI.WithEnv()

	h := &c.History
	h.Backend = envutil.String("HISTORY_BACKEND", h.Backend)
	h.SupabaseURL = envutil.String("SUPABASE_URL", h.SupabaseURL)
	h.SupabaseKey = envutil.String("SUPABASE_SERVICE_KEY", envutil.String("SUPABASE_ANON_KEY", h.SupabaseKey))
	h.Timeout = envutil.Seconds("SUPABASE_TIMEOUT_SECONDS", h.Timeout)
	h.RedisAddr = envutil.String("REDIS_ADDR", h.RedisAddr)
	h.RedisPassword = envutil.String("REDIS_PASSWORD", h.RedisPassword)
	h.RedisDB = envutil.Int("REDIS_DB", h.RedisDB)
	h.RedisPrefix = envutil.String("REDIS_PREFIX", h.RedisPrefix)
	h.RedisMaxEntries = envutil.Int("REDIS_MAX_ENTRIES", h.RedisMaxEntries)
	// Supabase credentials alone turn the mirror on.
	if strings.TrimSpace(h.Backend) == "" && h.SupabaseURL != "" && h.SupabaseKey != "" {
		h.Backend = history.BackendSupabase
	}

	o := &c.Otel
	o.Enabled = envutil.Bool("OTEL_ENABLED", o.Enabled)
	o.ServiceName = envutil.String("OTEL_SERVICE_NAME", o.ServiceName)
	o.Environment = envutil.String("APP_ENV", o.Environment)
	o.Version = envutil.String("APP_VERSION", o.Version)
	o.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", o.Endpoint)
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""); raw != "" {
		o.Headers = observability.ParseHeaders(raw)
	}
	o.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", o.Insecure)
	o.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", o.SampleRatio)

	c.CORSOrigins = envutil.List("CORS_ORIGINS", c.CORSOrigins)
	c.Metrics = envutil.Bool("METRICS_ENABLED", c.Metrics)
	c.BadgeFont = envutil.String("BADGE_FONT", c.BadgeFont)
	c.Shutdown = envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", c.Shutdown)
	return c
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return errors.New("STORE_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	return nil
}
