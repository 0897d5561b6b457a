package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/HFBDGD/prompt-copilot/internal/cache"
	"github.com/HFBDGD/prompt-copilot/internal/catalog"
	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/logging"
	"github.com/HFBDGD/prompt-copilot/internal/settings"
)

// catalogIndexURLs 覆盖远程目录地址，nil 时使用 catalog.DefaultIndexURLs
var catalogIndexURLs map[string]string

// app 一次命令执行所需的依赖
type app struct {
	settings *settings.Manager
	loader   *catalog.Loader
	logger   *zap.Logger
	lang     string
	closeFn  func() error
}

// newApp 按设置和全局参数组装加载器，日志写入 logOut
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	settings.SetDataDir(dataDir)
	manager, err := settings.NewManager()
	if err != nil {
		return nil, fmt.Errorf("初始化设置失败: %w", err)
	}

	lang, err := resolveLanguage(manager)
	if err != nil {
		return nil, err
	}
	i18n.SetLanguage(lang)

	logger := logging.New(logging.Options{Verbose: verbose, Output: logOut})
	store, closeFn := openStore(ctx, manager.Get(), logger)

	fetchTimeout := manager.FetchTimeout()
	if timeout > 0 {
		fetchTimeout = timeout
	}
	var fetcher catalog.Fetcher = catalog.NewHTTPFetcher(nil, fetchTimeout)
	if offline {
		fetcher = catalog.OfflineFetcher{}
	}

	loader := catalog.NewLoader(catalog.Options{
		Cache:     cache.New(store, cache.WithLogger(logger)),
		Fetcher:   fetcher,
		Logger:    logger,
		IndexURLs: catalogIndexURLs,
	})

	logger.Debug("app ready",
		zap.String("lang", lang),
		zap.String("cacheBackend", manager.Get().CacheBackend),
		zap.Duration("timeout", fetchTimeout),
		zap.Bool("offline", offline))

	return &app{
		settings: manager,
		loader:   loader,
		logger:   logger,
		lang:     lang,
		closeFn:  closeFn,
	}, nil
}

// Close 释放缓存连接并刷新日志
func (a *app) Close() error {
	_ = a.logger.Sync()
	if a.closeFn != nil {
		return a.closeFn()
	}
	return nil
}

// resolveLanguage --lang 优先，其次是设置中的语言
func resolveLanguage(manager *settings.Manager) (string, error) {
	if langFlag != "" {
		lang, ok := i18n.MatchLanguage(langFlag)
		if !ok {
			return "", fmt.Errorf("不支持的语言: %s (支持: %v)", langFlag, i18n.Languages())
		}
		return lang, nil
	}
	if lang, ok := i18n.MatchLanguage(manager.GetLanguage()); ok {
		return lang, nil
	}
	return i18n.DefaultLanguage, nil
}

// openStore 按设置打开缓存存储，失败时降级为内存缓存
func openStore(ctx context.Context, s *settings.AppSettings, logger *zap.Logger) (cache.Store, func() error) {
	switch s.CacheBackend {
	case settings.CacheBackendMemory:
		return cache.NewMemoryStore(), nil

	case settings.CacheBackendRedis:
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{Addr: s.RedisAddr, DB: s.RedisDB})
		if err != nil {
			logger.Warn("redis unavailable, falling back to memory cache",
				zap.String("addr", s.RedisAddr), zap.Error(err))
			return cache.NewMemoryStore(), nil
		}
		return store, store.Close

	default:
		path, err := settings.DataPath(settings.CacheFileName)
		if err != nil {
			logger.Warn("cache file unavailable, falling back to memory cache", zap.Error(err))
			return cache.NewMemoryStore(), nil
		}
		return cache.NewFileStore(path), nil
	}
}

// printSource 在 stderr 提示数据来自哪一层
func printSource(src catalog.Source) {
	fmt.Fprintln(os.Stderr, color.HiBlackString("%s", i18n.T("cli.source", src.String())))
}
