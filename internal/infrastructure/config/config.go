package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=5000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Mutation MutationConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenExpire time.Duration `env:"AUTH_TOKEN_EXPIRE, default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=social_media"`
}

type RedisConfig struct {
	Addr            string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password        string        `env:"REDIS_PASSWORD"`
	DB              int           `env:"REDIS_DB,          default=0"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL, default=10m"`
}

type MutationConfig struct {
	Workers int `env:"MUTATION_WORKERS, default=8"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom reads configuration from the given lookuper instead of the process environment.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
