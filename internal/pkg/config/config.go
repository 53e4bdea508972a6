package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Forms   FormsConfig

	DispatchWorkers int `env:"DISPATCH_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

// BackendConfig points at the external REST API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:3001"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	Store        string        `env:"SESSION_BACKEND, default=memory"`
	CookieName   string        `env:"SESSION_COOKIE,  default=jobboard_sid"`
	TTL          time.Duration `env:"SESSION_TTL,     default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
}

type FormsConfig struct {
	DraftTTL      time.Duration `env:"DRAFT_TTL,       default=2h"`
	SubmitLockTTL time.Duration `env:"SUBMIT_LOCK_TTL, default=30s"`
	MaxUploadMB   int64         `env:"MAX_UPLOAD_MB,   default=5"`
}

// MongoConfig is read when SESSION_BACKEND=mongo.
type MongoConfig struct {
	URI      string `env:"MONGO_URI,       default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,        default=jobboard_web"`
	PoolSize uint64 `env:"MONGO_POOL_SIZE, default=20"`
}

// RedisConfig is read when SESSION_BACKEND=redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

// Development reports whether the process runs with ENV=development.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Store)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: BACKEND_URL must be an absolute http(s) URL, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("config: BACKEND_TIMEOUT must be positive")
	}
	if c.Forms.SubmitLockTTL <= 0 {
		return fmt.Errorf("config: SUBMIT_LOCK_TTL must be positive")
	}
	if c.Forms.MaxUploadMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive")
	}
	if c.DispatchWorkers <= 0 {
		return fmt.Errorf("config: DISPATCH_WORKERS must be positive")
	}
	return nil
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
