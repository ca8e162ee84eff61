package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/s/lms/internal/config"
	"github.com/s/lms/internal/logger"
)

// NewClient connects to redis and pings it once.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// readThrough returns the cached value under key, or calls load and caches
// its result. Redis failures are logged and fall back to load.
func readThrough[V any](ctx context.Context, rdb goredis.Cmdable, log *logger.Logger, key string, ttl time.Duration, load func() (V, error)) (V, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v V
		jerr := json.Unmarshal(raw, &v)
		if jerr == nil {
			return v, nil
		}
		log.Warn("cache entry corrupt, reloading", "key", key, "error", jerr)
	case !errors.Is(err, goredis.Nil):
		log.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	raw, err = json.Marshal(v)
	if err != nil {
		log.Warn("cache encode failed", "key", key, "error", err)
		return v, nil
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}
