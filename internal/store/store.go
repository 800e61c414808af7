package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/logger"
)

// Backend 原始键值存储接口
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store 持久化存储适配器，值以 JSON 编码保存
type Store struct {
	backend Backend
}

// New 创建存储适配器
func New(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend}
}

// Get 读取并解码 key 对应的值到 dest
// 读取失败或 JSON 损坏时记录日志并视为不存在
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	key = strings.TrimSpace(key)
	raw, ok, err := s.backend.Read(ctx, key)
	if err != nil {
		logger.Warnw("store_read_failed", "key", key, "error", err)
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnw("store_value_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set 编码并写入 key
func (s *Store) Set(ctx context.Context, key string, value any) error {
	key = strings.TrimSpace(key)
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode store value %s: %w", key, err)
	}
	if err := s.backend.Write(ctx, key, payload); err != nil {
		return fmt.Errorf("write store value %s: %w", key, err)
	}
	return nil
}

// Remove 删除 key，不存在时忽略
func (s *Store) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("remove store value %s: %w", key, err)
	}
	return nil
}
