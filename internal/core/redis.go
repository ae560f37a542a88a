// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/apartment-api/internal/config"
)

const redisPingTimeout = 5 * time.Second

// Redis backs the rate limiters. Every key the service writes goes through
// Key so deployments sharing one instance stay apart.
type Redis struct {
	Client *redis.Client
	prefix string
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	r := &Redis{
		Client: redis.NewClient(opts),
		prefix: strings.Trim(cfg.KeyPrefix, ":"),
	}

	if err := r.Ping(ctx); err != nil {
		_ = r.Client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return r, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	return opts, nil
}

// Key joins parts with ':' under the configured prefix.
func (r *Redis) Key(parts ...string) string {
	key := strings.Join(parts, ":")
	if r.prefix == "" {
		return key
	}
	if key == "" {
		return r.prefix
	}
	return r.prefix + ":" + key
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
