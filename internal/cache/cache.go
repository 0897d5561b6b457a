package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HFBDGD/prompt-copilot/internal/logging"
)

// DefaultTTL 缓存条目的有效期
const DefaultTTL = 24 * time.Hour

// Entry 存储中的缓存条目，Timestamp 为写入时的 Unix 毫秒
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// EntryInfo cache status 展示的条目信息
type EntryInfo struct {
	Key     string
	Stored  time.Time
	Size    int
	Expired bool
	Corrupt bool
}

// Cache 在 Store 之上加时间戳和惰性过期
// 存储错误只记录日志：读取视为未命中，写入直接跳过
type Cache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// Option Cache 选项
type Option func(*Cache)

// WithTTL 覆盖 DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock 替换时间源
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger 设置记录存储错误的日志
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New 创建缓存
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get 返回未过期的缓存数据
// 过期条目不会被删除，下次 Put 时覆盖
func (c *Cache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Warn("cache entry is malformed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if isEmptyPayload(entry.Data) {
		return nil, false
	}

	age := c.now().Sub(time.UnixMilli(entry.Timestamp))
	if age >= c.ttl {
		c.logger.Debug("cache entry expired", zap.String("key", key), zap.Duration("age", age))
		return nil, false
	}

	return entry.Data, true
}

// Put 以当前时间写入缓存，覆盖旧条目
func (c *Cache) Put(ctx context.Context, key string, data json.RawMessage) {
	if c == nil || c.store == nil {
		return
	}

	raw, err := json.Marshal(Entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("cache entry encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// DeletePrefixed 删除以任一前缀开头的键，返回删除数量
func (c *Cache) DeletePrefixed(ctx context.Context, prefixes ...string) int {
	if c == nil || c.store == nil {
		return 0
	}

	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.logger.Warn("cache clear failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, key := range keys {
		if !hasAnyPrefix(key, prefixes) {
			continue
		}
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
			continue
		}
		removed++
	}
	return removed
}

// List 列出以任一前缀开头的条目
func (c *Cache) List(ctx context.Context, prefixes ...string) []EntryInfo {
	if c == nil || c.store == nil {
		return nil
	}

	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.logger.Warn("cache list failed", zap.Error(err))
		return nil
	}
	sort.Strings(keys)

	infos := []EntryInfo{}
	for _, key := range keys {
		if !hasAnyPrefix(key, prefixes) {
			continue
		}
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil || !ok {
			continue
		}

		info := EntryInfo{Key: key, Size: len(raw)}
		var entry Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil || isEmptyPayload(entry.Data) {
			info.Corrupt = true
		} else {
			info.Stored = time.UnixMilli(entry.Timestamp)
			info.Expired = c.now().Sub(info.Stored) >= c.ttl
		}
		infos = append(infos, info)
	}
	return infos
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func isEmptyPayload(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
