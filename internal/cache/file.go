package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/HFBDGD/prompt-copilot/internal/lock"
	"github.com/HFBDGD/prompt-copilot/internal/utils"
)

// fileLockTimeout 等待其他进程释放缓存文件锁的最长时间
const fileLockTimeout = 2 * time.Second

// FileStore 以单个 JSON 文件保存全部键值（类似浏览器 localStorage）
// 每次写入都是完整文件的原子替换，读改写过程持有 <path>.lock 跨进程锁
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore 创建文件存储，文件不存在时视为空
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path 返回存储文件路径
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("读取缓存文件失败: %w", err)
	}

	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("缓存文件已损坏: %w", err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("创建缓存目录失败: %w", err)
	}
	return utils.WriteJSONFile(s.path, entries, 0600)
}

// locked 在进程内互斥锁和跨进程文件锁保护下执行 fn
func (s *FileStore) locked(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, fileLockTimeout)
	defer cancel()

	lk := lock.NewLock(s.path + ".lock")
	if err := lk.Acquire(ctx); err != nil {
		return err
	}
	defer lk.Release()

	return fn()
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set 写入键值；缓存文件损坏时从空表重建
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.locked(ctx, func() error {
		entries, err := s.load()
		if err != nil {
			entries = map[string]string{}
		}
		entries[key] = value
		return s.save(entries)
	})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.locked(ctx, func() error {
		entries, err := s.load()
		if err != nil {
			return err
		}
		if _, ok := entries[key]; !ok {
			return nil
		}
		delete(entries, key)
		return s.save(entries)
	})
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
