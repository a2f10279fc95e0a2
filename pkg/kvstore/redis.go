package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	raw *redis.Client
}

func newRedisStore(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*redisStore, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis kv store connection established")
	}
	return &redisStore{raw: raw}, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Configured() {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return opts, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.raw.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.raw.Set(ctx, key, value, 0).Err()
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	return s.raw.Del(ctx, key).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.raw.Ping(ctx).Err()
}

func (s *redisStore) Close() error {
	return s.raw.Close()
}

// Raw exposes the underlying client for TTL-aware collaborators (the OTP
// service needs expiring keys, which the Store contract does not cover).
func (s *redisStore) Raw() *redis.Client {
	return s.raw
}

// RedisFromConfig builds a standalone redis client outside the Store
// selection, used when redis is the OTP backend but not the kv driver.
func RedisFromConfig(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return raw, nil
}
