package cache

import (
	"context"
	"errors"
	"time"

	"gclub-api/core/constants"
	"gclub-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type redisCache struct {
	client *redis.Client
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisCache(ctx context.Context, config RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisCache:Ping", err)
		return nil, err
	}

	logger.Info("Redis cache initialized", "addr", config.Addr, "db", config.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	return c.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl)
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	val, err := c.Get(ctx, constants.RedisKeyTokenBlacklist+token)
	if err != nil {
		return false, err
	}
	return val != "", nil
}
