package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatchSize 控制 Clear 扫描/删除的批大小，避免一次 DEL 过大阻塞服务端。
const scanBatchSize = 512

// RedisClient 是存储层依赖的最小命令集合。收窄接口便于在测试中注入假实现，
// 也避免存储层感知具体客户端库的全部 API。
type RedisClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	FlushDB(ctx context.Context) error
	Close() error
}

// NewRedis 以固定键前缀构建外部 KV 存储。前缀用于与共享实例中的无关数据隔离。
func NewRedis(client RedisClient, keyPrefix string) (Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if keyPrefix == "" {
		return nil, errors.New("key prefix required")
	}

	return &redisStore{
		client: client,
		prefix: keyPrefix,
	}, nil
}

// NewRedisClient 基于 go-redis 创建 RedisClient 实现。
func NewRedisClient(addr, password string, db int, dialTimeout time.Duration) RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})
	return &goRedisClient{client: client}
}

type redisStore struct {
	client RedisClient
	prefix string
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.client.Get(ctx, s.prefix+key)
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value)
}

// Clear 通过 SCAN 枚举前缀下的全部键并分批删除。
func (s *redisStore) Clear(ctx context.Context) (int, error) {
	var (
		removed int
		cursor  uint64
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatchSize)
		if err != nil {
			return removed, err
		}

		if len(keys) > 0 {
			deleted, err := s.client.Del(ctx, keys...)
			removed += int(deleted)
			if err != nil {
				return removed, err
			}
		}

		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Flush 清空整个逻辑库。部署上缓存独占一个 DB，因此与 Clear 的可见效果一致。
func (s *redisStore) Flush(ctx context.Context) error {
	return s.client.FlushDB(ctx)
}

func (s *redisStore) Kind() Kind {
	return KindRedis
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

// goRedisClient 将 go-redis 的命令结果转换为 RedisClient 约定的返回值。
type goRedisClient struct {
	client *redis.Client
}

func (c *goRedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *goRedisClient) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *goRedisClient) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	return c.client.Scan(ctx, cursor, match, count).Result()
}

func (c *goRedisClient) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.client.Del(ctx, keys...).Result()
}

func (c *goRedisClient) FlushDB(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *goRedisClient) Close() error {
	return c.client.Close()
}
