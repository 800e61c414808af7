package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient 根据配置创建 Redis 客户端，未启用时返回 nil
func NewClient(cfg *config.RedisConfig) *redis.Client {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisStore 基于 Redis 的键值存储
// 所有 key 都带前缀，值原样保存不设过期
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 键值存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "vitrine"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Read 读取原始值
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Write 写入原始值
func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.buildKey(key), value, 0).Err()
}

// Delete 删除键
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

func (s *RedisStore) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return s.prefix
	}
	return fmt.Sprintf("%s:%s", s.prefix, trimmed)
}
