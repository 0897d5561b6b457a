// Package catalog 按 本地缓存 → 网络 → 备用目录（仅目录）的顺序加载目录和模组库
package catalog

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/HFBDGD/prompt-copilot/internal/cache"
	"github.com/HFBDGD/prompt-copilot/internal/logging"
	"github.com/HFBDGD/prompt-copilot/internal/utils"
)

// Source 结果来自哪一层
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceNetwork
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceNetwork:
		return "network"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Options Loader 配置
type Options struct {
	Cache   *cache.Cache
	Fetcher Fetcher
	Logger  *zap.Logger

	// IndexURLs 覆盖 DefaultIndexURLs，必须包含 DefaultLanguage
	IndexURLs map[string]string
}

// Loader 目录和模组库加载器
// 并发加载同一个键时不去重，缓存以最后一次写入为准
type Loader struct {
	cache     *cache.Cache
	fetcher   Fetcher
	logger    *zap.Logger
	indexURLs map[string]string
}

// NewLoader 创建加载器，未设置的选项使用默认值
func NewLoader(opts Options) *Loader {
	l := &Loader{
		cache:     opts.Cache,
		fetcher:   opts.Fetcher,
		logger:    opts.Logger,
		indexURLs: opts.IndexURLs,
	}
	if l.fetcher == nil {
		l.fetcher = NewHTTPFetcher(nil, DefaultTimeout)
	}
	if l.logger == nil {
		l.logger = logging.Nop()
	}
	if l.indexURLs == nil {
		l.indexURLs = DefaultIndexURLs
	}
	return l
}

type tier[T any] struct {
	source  Source
	attempt func(ctx context.Context) (T, error)
}

// resolve 依次尝试每一层，返回第一个成功的结果；全部失败时返回最后一层的错误
func resolve[T any](ctx context.Context, tiers []tier[T]) (T, Source, error) {
	var (
		zero    T
		lastErr error
	)
	for _, t := range tiers {
		v, err := t.attempt(ctx)
		if err == nil {
			return v, t.source, nil
		}
		lastErr = err
	}
	return zero, SourceNone, lastErr
}

// IndexURL 返回语言对应的目录地址，未知语言使用 DefaultLanguage
func (l *Loader) IndexURL(lang string) string {
	if u, ok := l.indexURLs[lang]; ok {
		return u
	}
	return l.indexURLs[DefaultLanguage]
}

// LoadIndex 加载目录，不会失败：缓存和网络都不可用时返回 FallbackIndex
func (l *Loader) LoadIndex(ctx context.Context, lang string) Index {
	idx, _ := l.ResolveIndex(ctx, lang)
	return idx
}

// ResolveIndex 同 LoadIndex，并返回结果来源
func (l *Loader) ResolveIndex(ctx context.Context, lang string) (Index, Source) {
	key := IndexKey(lang)
	locator := l.IndexURL(lang)

	idx, src, _ := resolve(ctx, []tier[Index]{
		{SourceCache, func(ctx context.Context) (Index, error) {
			return l.cachedIndex(ctx, key)
		}},
		{SourceNetwork, func(ctx context.Context) (Index, error) {
			return l.fetchIndex(ctx, key, locator)
		}},
		{SourceFallback, func(context.Context) (Index, error) {
			l.logger.Info("using fallback library index", zap.String("lang", lang))
			return FallbackIndex(), nil
		}},
	})
	return idx, src
}

func (l *Loader) cachedIndex(ctx context.Context, key string) (Index, error) {
	data, ok := l.cache.Get(ctx, key)
	if !ok {
		return Index{}, errCacheMiss
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		l.logger.Warn("cached index is malformed", zap.String("key", key), zap.Error(err))
		return Index{}, errCacheMiss
	}
	return idx, nil
}

func (l *Loader) fetchIndex(ctx context.Context, key, locator string) (Index, error) {
	body, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		l.logger.Warn("failed to load online index", zap.String("url", locator), zap.Error(err))
		return Index{}, err
	}

	var idx Index
	if err := json.Unmarshal(body, &idx); err != nil {
		perr := &ParseError{Locator: locator, Err: err}
		l.logger.Warn("failed to load online index", zap.String("url", locator), zap.Error(perr))
		return Index{}, perr
	}

	l.cache.Put(ctx, key, body)
	l.logger.Debug("index fetched", zap.String("url", locator), zap.Int("libraries", idx.Len()))
	return idx, nil
}

// LoadLibrary 加载模组库原始 JSON，缓存和网络都失败时返回 *LoadError
func (l *Loader) LoadLibrary(ctx context.Context, locator string) (json.RawMessage, error) {
	doc, _, err := l.ResolveLibrary(ctx, locator)
	return doc, err
}

// ResolveLibrary 同 LoadLibrary，并返回结果来源
func (l *Loader) ResolveLibrary(ctx context.Context, locator string) (json.RawMessage, Source, error) {
	if locator == "" {
		return nil, SourceNone, &LoadError{Locator: locator, Err: ErrEmptyLocator}
	}
	key := LibraryKey(locator)

	doc, src, err := resolve(ctx, []tier[json.RawMessage]{
		{SourceCache, func(ctx context.Context) (json.RawMessage, error) {
			return l.cachedLibrary(ctx, key)
		}},
		{SourceNetwork, func(ctx context.Context) (json.RawMessage, error) {
			return l.fetchLibrary(ctx, key, locator)
		}},
	})
	if err != nil {
		l.logger.Error("failed to load library", zap.String("url", locator), zap.Error(err))
		return nil, SourceNone, &LoadError{Locator: locator, Err: err}
	}
	return doc, src, nil
}

func (l *Loader) cachedLibrary(ctx context.Context, key string) (json.RawMessage, error) {
	data, ok := l.cache.Get(ctx, key)
	if !ok {
		return nil, errCacheMiss
	}
	if _, err := utils.DecodeObject(data); err != nil {
		l.logger.Warn("cached library is malformed", zap.String("key", key), zap.Error(err))
		return nil, errCacheMiss
	}
	return data, nil
}

func (l *Loader) fetchLibrary(ctx context.Context, key, locator string) (json.RawMessage, error) {
	body, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	if _, err := utils.DecodeObject(body); err != nil {
		return nil, &ParseError{Locator: locator, Err: err}
	}

	doc := json.RawMessage(body)
	l.cache.Put(ctx, key, doc)
	return doc, nil
}

// ClearCache 删除目录和模组库缓存，返回删除数量；其他键不受影响
func (l *Loader) ClearCache(ctx context.Context) int {
	removed := l.cache.DeletePrefixed(ctx, IndexKeyPrefix, LibraryKeyPrefix)
	l.logger.Info("cache cleared", zap.Int("removed", removed))
	return removed
}

// CacheEntries 列出目录和模组库缓存条目
func (l *Loader) CacheEntries(ctx context.Context) []cache.EntryInfo {
	return l.cache.List(ctx, IndexKeyPrefix, LibraryKeyPrefix)
}
