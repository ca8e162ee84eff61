package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks values that cleanenv cannot express as tags.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.Store.Driver))
	}

	if c.Database.ConnectAttempts < 1 {
		errs = append(errs, errors.New("DATABASE_CONNECT_ATTEMPTS: must be at least 1"))
	}
	if c.Store.Driver == "postgres" && c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL: required for the postgres driver"))
	}

	if c.Session.Key == "" {
		errs = append(errs, errors.New("SESSION_KEY: must not be empty"))
	}
	if isProd(c.Log.Mode) && c.Session.DefaultSessionKey() {
		errs = append(errs, errors.New("SESSION_KEY: the development key is not allowed in production"))
	}

	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("REDIS_CACHE_TTL: must be positive"))
	}

	return errors.Join(errs...)
}

func isProd(mode string) bool {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return true
	}
	return false
}
