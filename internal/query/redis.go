package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nmoreaux/instalens-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "instalens:query:"

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore shares warm query entries across dashboard processes. Entries
// expire server-side at twice their staleness window so Redis never serves
// anything the Cache would not at least consider refetching.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &RedisStore{client: client, logger: logger}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil // Key doesn't exist - not an error
	}
	if err != nil {
		return nil, errors.NewCacheError("get failed", "get", key, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		return nil, errors.NewCacheError("unmarshal failed", "get", key, err)
	}
	return &entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	expiry := 2 * ttl
	if expiry <= 0 {
		expiry = 0
	}

	if err := s.client.Set(ctx, redisKeyPrefix+key, encoded, expiry).Err(); err != nil {
		return errors.NewCacheError("set failed", "set", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	s.logger.Info("Redis disconnected")
	return nil
}
