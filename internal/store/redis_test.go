package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRedisStorePrefixesKeys(t *testing.T) {
	client := newFakeRedis()
	s := newTestRedis(t, client, "cache-hub:")

	if err := s.Set(context.Background(), "a.txt", "alpha"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if _, ok := client.data["cache-hub:a.txt"]; !ok {
		t.Fatalf("expected prefixed key, have %v", client.data)
	}

	value, ok, err := s.Get(context.Background(), "a.txt")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !ok || value != "alpha" {
		t.Fatalf("expected alpha, got value=%q ok=%v", value, ok)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	s := newTestRedis(t, newFakeRedis(), "cache-hub:")

	value, ok, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected miss, got value=%q ok=%v", value, ok)
	}
}

func TestRedisStoreClearDeletesOnlyOwnNamespace(t *testing.T) {
	client := newFakeRedis()
	client.data["other-app:key"] = "keep"
	s := newTestRedis(t, client, "cache-hub:")

	for _, key := range []string{"a", "b", "c"} {
		if err := s.Set(context.Background(), key, key); err != nil {
			t.Fatalf("set %s error: %v", key, err)
		}
	}

	removed, err := s.Clear(context.Background())
	if err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if _, ok := client.data["other-app:key"]; !ok {
		t.Fatalf("clear must not touch foreign namespaces")
	}
	if _, ok, _ := s.Get(context.Background(), "a"); ok {
		t.Fatalf("expected namespace empty after clear")
	}
}

func TestRedisStoreFlushUsesFlushDB(t *testing.T) {
	client := newFakeRedis()
	client.data["other-app:key"] = "gone"
	s := newTestRedis(t, client, "cache-hub:")

	if err := s.Set(context.Background(), "a", "alpha"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush error: %v", err)
	}
	if client.flushes != 1 {
		t.Fatalf("expected FLUSHDB once, got %d", client.flushes)
	}
	if len(client.data) != 0 {
		t.Fatalf("expected empty database, have %v", client.data)
	}
}

func TestRedisStoreErrorsPropagate(t *testing.T) {
	client := newFakeRedis()
	client.failWith = errors.New("connection refused")
	s := newTestRedis(t, client, "cache-hub:")

	if _, _, err := s.Get(context.Background(), "a"); !errors.Is(err, client.failWith) {
		t.Fatalf("expected client error on get, got %v", err)
	}
	if err := s.Set(context.Background(), "a", "alpha"); !errors.Is(err, client.failWith) {
		t.Fatalf("expected client error on set, got %v", err)
	}
	if _, err := s.Clear(context.Background()); !errors.Is(err, client.failWith) {
		t.Fatalf("expected client error on clear, got %v", err)
	}
	if err := s.Flush(context.Background()); !errors.Is(err, client.failWith) {
		t.Fatalf("expected client error on flush, got %v", err)
	}
}

func TestNewRedisValidatesArguments(t *testing.T) {
	if _, err := NewRedis(nil, "cache-hub:"); err == nil {
		t.Fatalf("expected error without client")
	}
	if _, err := NewRedis(newFakeRedis(), ""); err == nil {
		t.Fatalf("expected error without prefix")
	}
}

func newTestRedis(t *testing.T, client RedisClient, prefix string) Store {
	t.Helper()

	s, err := NewRedis(client, prefix)
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return s
}

// fakeRedis implements RedisClient with an in-memory map, mimicking a single
// logical database. Scan returns everything in one pass (cursor 0).
type fakeRedis struct {
	data     map[string]string
	flushes  int
	failWith error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failWith != nil {
		return "", false, f.failWith
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeRedis) Set(ctx context.Context, key, value string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.data[key] = value
	return nil
}

func (f *fakeRedis) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}

	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, 0, nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}

	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRedis) FlushDB(ctx context.Context) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.flushes++
	f.data = make(map[string]string)
	return nil
}

func (f *fakeRedis) Close() error {
	return nil
}
