package store

import (
	"context"
	"sync"
)

// NewMemory 创建进程内存储实例，适合单机部署与测试。
func NewMemory() Store {
	return &memoryStore{
		entries: make(map[string]string),
	}
}

// memoryStore 以 RWMutex 保护的 map 保存条目，重启即丢失。
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

func (m *memoryStore) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := len(m.entries)
	m.entries = make(map[string]string)
	return removed, nil
}

// Flush 对进程内后端没有独立的整库原语，与 Clear 等价。
func (m *memoryStore) Flush(ctx context.Context) error {
	_, err := m.Clear(ctx)
	return err
}

func (m *memoryStore) Kind() Kind {
	return KindMemory
}

func (m *memoryStore) Close() error {
	return nil
}
