package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/cache-hub/cache-hub/internal/store"
)

// Loader 在缓存未命中时取回键对应的内容，典型实现为读取本地文件。
// Loader 的错误会原样返回给调用方，缓存层不附加自身的错误语义。
type Loader func(ctx context.Context, key string) (string, error)

// Cache 实现读穿透缓存：命中直接返回，未命中先加载再写入存储。
// 条目一经写入不再变化，过期与失效由调用方负责。
type Cache struct {
	store  store.Store
	loader Loader
	group  singleflight.Group
}

// New 组合后端存储与 Loader。两者均为必填，构造后不可更换。
func New(backing store.Store, loader Loader) (*Cache, error) {
	if backing == nil {
		return nil, errors.New("backing store required")
	}
	if loader == nil {
		return nil, errors.New("loader required")
	}

	return &Cache{
		store:  backing,
		loader: loader,
	}, nil
}

// Read 返回键对应的内容。第二个返回值表示是否命中缓存；未命中时
// 同一键的并发请求通过 singleflight 合并，Loader 只会被调用一次。
func (c *Cache) Read(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if ok {
		return value, true, nil
	}

	loaded, err, _ := c.group.Do(key, func() (interface{}, error) {
		// 进入 flight 前可能有前一轮加载刚写入存储，先复查再加载，
		// 避免紧随其后的 miss 触发重复 Load。
		value, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return "", err
		}
		if ok {
			return value, nil
		}

		value, err = c.loader(ctx, key)
		if err != nil {
			return "", err
		}
		if err := c.store.Set(ctx, key, value); err != nil {
			return "", err
		}
		return value, nil
	})
	if err != nil {
		return "", false, err
	}

	return loaded.(string), false, nil
}

// Clear 删除缓存自身的全部条目，返回删除数量。
func (c *Cache) Clear(ctx context.Context) (int, error) {
	return c.store.Clear(ctx)
}

// FlushAll 清空整个命名空间。对本缓存条目的可见效果与 Clear 一致，
// 区别仅在后端使用的清理原语。
func (c *Cache) FlushAll(ctx context.Context) error {
	return c.store.Flush(ctx)
}

// Backend 返回后端类型，供诊断接口与日志使用。
func (c *Cache) Backend() store.Kind {
	return c.store.Kind()
}
