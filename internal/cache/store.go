// Package cache 目录加载器使用的本地缓存，条目带时间戳，24 小时后失效
package cache

import "context"

// Store 字符串键值存储，只要求单个键的写入是原子的
type Store interface {
	// Get 键不存在时 ok 为 false
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
