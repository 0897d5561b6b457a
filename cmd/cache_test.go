package cmd

import (
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/HFBDGD/prompt-copilot/internal/testutil"
)

func TestCacheCommands(t *testing.T) {
	srv := setupCatalog(t)
	dir := testutil.CreateTempDir(t)

	stdout, _, err := execute(t, dir, "cache", "status")
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	if !strings.Contains(stdout, "快取為空") {
		t.Fatalf("expected empty cache, got: %s", stdout)
	}

	if _, _, err := execute(t, dir, "roles", "1"); err != nil {
		t.Fatalf("roles: %v", err)
	}

	stdout, _, err = execute(t, dir, "cache", "status")
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	for _, want := range []string{"fresh", "index_zh", "library_" + srv.Path("/lib/writer.json")} {
		if !strings.Contains(stdout, want) {
			t.Errorf("cache status 缺少 %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, dir, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stdout, "已清除 2 個快取項目") {
		t.Fatalf("unexpected clear output: %s", stdout)
	}

	// 清除后重新请求网络
	if _, _, err := execute(t, dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}
	if got := srv.Hits("/index/zh.json"); got != 2 {
		t.Fatalf("expected index refetch after clear, got %d hits", got)
	}
}

func TestCacheMemoryBackend(t *testing.T) {
	srv := setupCatalog(t)
	dir := testutil.CreateTempDir(t)

	if _, _, err := execute(t, dir, "settings", "--set", "cacheBackend=memory"); err != nil {
		t.Fatalf("set backend: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, _, err := execute(t, dir, "index"); err != nil {
			t.Fatalf("index: %v", err)
		}
	}
	// 内存缓存不跨进程保留
	if got := srv.Hits("/index/zh.json"); got != 2 {
		t.Fatalf("expected 2 hits with memory backend, got %d", got)
	}
}

func TestCacheRedisUnavailableFallsBack(t *testing.T) {
	setupCatalog(t)
	dir := testutil.CreateTempDir(t)

	if _, _, err := execute(t, dir, "settings", "--set", "cacheBackend=redis"); err != nil {
		t.Fatalf("set backend: %v", err)
	}
	if _, _, err := execute(t, dir, "settings", "--set", "redisAddr=127.0.0.1:1"); err != nil {
		t.Fatalf("set addr: %v", err)
	}

	stdout, stderr, err := execute(t, dir, "index")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(stdout, "寫作助手") {
		t.Fatalf("expected index output, got: %s", stdout)
	}
	if !strings.Contains(stderr, "redis unavailable") {
		t.Errorf("expected redis warning, got: %s", stderr)
	}
}

func TestCacheRedisBackend(t *testing.T) {
	srv := setupCatalog(t)
	mr := miniredis.RunT(t)
	dir := testutil.CreateTempDir(t)

	for _, kv := range []string{"cacheBackend=redis", "redisAddr=" + mr.Addr()} {
		if _, _, err := execute(t, dir, "settings", "--set", kv); err != nil {
			t.Fatalf("settings --set %s: %v", kv, err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, _, err := execute(t, dir, "index"); err != nil {
			t.Fatalf("index: %v", err)
		}
	}
	if got := srv.Hits("/index/zh.json"); got != 1 {
		t.Fatalf("second index should be served from redis, got %d hits", got)
	}
	if !mr.Exists("prompt-copilot:index_zh") {
		t.Fatalf("expected namespaced key in redis, have %v", mr.Keys())
	}

	if err := mr.Set("prompt-copilot:user_theme", "dark"); err != nil {
		t.Fatalf("seed redis: %v", err)
	}
	stdout, _, err := execute(t, dir, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stdout, "已清除 1 個快取項目") {
		t.Fatalf("unexpected clear output: %s", stdout)
	}
	if mr.Exists("prompt-copilot:index_zh") || !mr.Exists("prompt-copilot:user_theme") {
		t.Fatalf("clear should only remove catalog keys, have %v", mr.Keys())
	}
}
