package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Files    FilesConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT"              env-default:"8080"`
	CORSOrigins     string        `env:"CORS_ORIGINS"      env-default:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"  env-default:"10s"`
}

// StoreConfig selects the record store backend: "postgres" or "memory".
// The memory backend serves the built-in fixture catalog.
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" env-default:"postgres"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"              env-default:"host=db user=postgres password=1234 dbname=testdb port=5432 sslmode=disable"`
	ConnectAttempts int           `env:"DATABASE_CONNECT_ATTEMPTS" env-default:"5"`
	RetryDelay      time.Duration `env:"DATABASE_RETRY_DELAY"      env-default:"2s"`
	Seed            bool          `env:"SEED_ON_START"             env-default:"false"`
}

type SessionConfig struct {
	Key    string        `env:"SESSION_KEY"    env-default:"super-secret-default-key"`
	Secure bool          `env:"SESSION_SECURE" env-default:"false"`
	MaxAge time.Duration `env:"SESSION_MAX_AGE" env-default:"168h"`
}

// RedisConfig enables the catalog cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       env-default:"0"`
	TTL      time.Duration `env:"REDIS_CACHE_TTL" env-default:"60s"`
}

type FilesConfig struct {
	BaseURL string `env:"FILES_BASE_URL" env-default:"http://127.0.0.1:8090"`
}

type LogConfig struct {
	Mode string `env:"LOG_MODE" env-default:"dev"`
}

const defaultSessionKey = "super-secret-default-key"

// DefaultSessionKey reports whether the development session key is in use.
func (c SessionConfig) DefaultSessionKey() bool { return c.Key == defaultSessionKey }
