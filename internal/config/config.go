package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App      AppConfig      `koanf:"app"`
	API      APIConfig      `koanf:"api"`
	Session  SessionConfig  `koanf:"session"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	Logger   LoggerConfig   `koanf:"logger"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `koanf:"name"`
	Env                   string `koanf:"env"`
	Host                  string `koanf:"host"`
	Port                  string `koanf:"port"`
	Version               string `koanf:"version"`
	RequestTimeoutSeconds int    `koanf:"request_timeout_seconds"`
}

// APIConfig points the portal at the remote staffing API.
type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// SessionConfig selects where session tokens live and how the cookie is issued.
type SessionConfig struct {
	Store        string `koanf:"store"`
	CookieName   string `koanf:"cookie_name"`
	CookieSecure bool   `koanf:"cookie_secure"`
	KeyPrefix    string `koanf:"key_prefix"`
}

// PostgresConfig holds DB connection values for the postgres session store.
type PostgresConfig struct {
	DSN            string `koanf:"dsn"`
	MaxConns       int32  `koanf:"max_conns"`
	MinConns       int32  `koanf:"min_conns"`
	RunMigrations  bool   `koanf:"run_migrations"`
	ConnMaxIdleSec int32  `koanf:"conn_max_idle_seconds"`
	ConnMaxLifeSec int32  `koanf:"conn_max_life_seconds"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `koanf:"level"`
}

// MetricsConfig configures the prometheus exporter.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Name:                  "staffing-portal",
			Env:                   "development",
			Host:                  "0.0.0.0",
			Port:                  "3000",
			Version:               "dev",
			RequestTimeoutSeconds: 30,
		},
		API: APIConfig{
			BaseURL:        "http://localhost:8080/prod",
			TimeoutSeconds: 10,
		},
		Session: SessionConfig{
			Store:      SessionStoreMemory,
			CookieName: "portal_session",
			KeyPrefix:  "portal:session",
		},
		Postgres: PostgresConfig{
			MaxConns:       10,
			MinConns:       2,
			RunMigrations:  true,
			ConnMaxIdleSec: 30,
			ConnMaxLifeSec: 300,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "portal",
		},
	}
}

// Load reads configuration by layering defaults, an optional YAML file
// (PORTAL_CONFIG_FILE) and environment variables, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("PORTAL_CONFIG_FILE")); path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", strconv.Itoa(cfg.Redis.DB)))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnv("APP_PORT", cfg.App.Port)
	cfg.App.Version = getEnv("APP_VERSION", cfg.App.Version)
	cfg.App.RequestTimeoutSeconds = getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", cfg.App.RequestTimeoutSeconds)

	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSeconds = getEnvAsInt("API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)

	cfg.Session.Store = strings.ToLower(getEnv("SESSION_STORE", cfg.Session.Store))
	cfg.Session.CookieName = getEnv("SESSION_COOKIE_NAME", cfg.Session.CookieName)
	cfg.Session.CookieSecure = getEnvAsBool("SESSION_COOKIE_SECURE", cfg.Session.CookieSecure)
	cfg.Session.KeyPrefix = getEnv("SESSION_KEY_PREFIX", cfg.Session.KeyPrefix)

	cfg.Postgres.DSN = getEnv("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Postgres.MaxConns = int32(getEnvAsInt("POSTGRES_MAX_CONNS", int(cfg.Postgres.MaxConns)))
	cfg.Postgres.MinConns = int32(getEnvAsInt("POSTGRES_MIN_CONNS", int(cfg.Postgres.MinConns)))
	cfg.Postgres.RunMigrations = getEnvAsBool("POSTGRES_RUN_MIGRATIONS", cfg.Postgres.RunMigrations)
	cfg.Postgres.ConnMaxIdleSec = int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", int(cfg.Postgres.ConnMaxIdleSec)))
	cfg.Postgres.ConnMaxLifeSec = int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", int(cfg.Postgres.ConnMaxLifeSec)))

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = redisDB

	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)

	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Namespace = getEnv("METRICS_NAMESPACE", cfg.Metrics.Namespace)
	return nil
}

// Validate rejects configurations the portal cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: API_BASE_URL must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return fmt.Errorf("%w: SESSION_COOKIE_NAME must not be empty", ErrInvalidConfig)
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("%w: POSTGRES_DSN is required when SESSION_STORE=postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SESSION_STORE %q", ErrInvalidConfig, c.Session.Store)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound HTTP client timeout.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
