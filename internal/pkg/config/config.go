package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs session tokens. When empty a random key is
	// generated per process and sessions do not survive a restart.
	SessionSecret string `env:"SESSION_SECRET"`

	StoreDriver string `env:"STORE_DRIVER, default=sqlite"`

	SQLite SQLiteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Twilio TwilioConfig
}

type SQLiteConfig struct {
	Path string `env:"DATABASE_PATH, default=organ.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=organ_match"`
}

// RedisConfig enables server-side sessions when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_SID"`
	AuthToken  string `env:"TWILIO_TOKEN"`
	From       string `env:"TWILIO_NUMBER"`
	BaseURL    string `env:"TWILIO_BASE_URL, default=https://api.twilio.com"`
}

// Enabled reports whether all three credentials are present.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMongo, cfg.StoreDriver)
	}
	return &cfg, nil
}
