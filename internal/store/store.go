package store

import "context"

// Kind 标识后端类型，供日志与诊断接口输出。
type Kind string

const (
	KindMemory Kind = "memory"
	KindRedis  Kind = "redis"
)

// Store 负责缓存条目的持久化。条目一旦写入不再变更，仅通过 Clear/Flush 整体清空。
type Store interface {
	// Get 返回指定键的值。第二个返回值表示条目是否存在；后端错误原样透传。
	Get(ctx context.Context, key string) (string, bool, error)

	// Set 写入键值。同键重复写入直接覆盖，语义上只会发生在 Clear 之后。
	Set(ctx context.Context, key, value string) error

	// Clear 删除本缓存自身的全部条目，返回删除数量。
	Clear(ctx context.Context) (int, error)

	// Flush 清空整个命名空间。对进程内后端与 Clear 等价；对外部后端
	// 使用整库级原语（FLUSHDB）而非逐键删除。
	Flush(ctx context.Context) error

	// Kind 返回后端类型。
	Kind() Kind

	// Close 释放后端持有的连接资源。
	Close() error
}
