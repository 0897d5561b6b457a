package lock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// StaleLockTimeout 超过该时间未释放的锁文件视为进程异常退出后的残留
	StaleLockTimeout = 30 * time.Second

	retryInterval = 20 * time.Millisecond
)

// ErrTimeout 在 ctx 结束前没有拿到锁
var ErrTimeout = errors.New("等待文件锁超时")

// Lock 基于锁文件的跨进程互斥锁
// 同一数据目录下的 CLI 和 TUI 进程通过它串行化对缓存文件的读改写
type Lock struct {
	lockPath string
	acquired bool
}

// NewLock 创建锁，lockPath 为锁文件路径
func NewLock(lockPath string) *Lock {
	return &Lock{lockPath: lockPath}
}

// Path 返回锁文件路径
func (l *Lock) Path() string {
	return l.lockPath
}

// TryAcquire 尝试获取锁，被其他进程持有时返回 false
func (l *Lock) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.lockPath), 0755); err != nil {
		return false, fmt.Errorf("创建锁目录失败: %w", err)
	}

	f, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return false, fmt.Errorf("创建锁文件失败: %w", err)
		}
		// 残留锁直接删除，下一次尝试时重新创建
		if info, statErr := os.Stat(l.lockPath); statErr == nil && time.Since(info.ModTime()) > StaleLockTimeout {
			_ = os.Remove(l.lockPath)
		}
		return false, nil
	}

	_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(l.lockPath)
		return false, fmt.Errorf("写入锁文件失败: %w", werr)
	}

	l.acquired = true
	return true, nil
}

// Acquire 阻塞直到获得锁或 ctx 结束
func (l *Lock) Acquire(ctx context.Context) error {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.TryAcquire()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			if pid, err := l.GetPID(); err == nil {
				return fmt.Errorf("%w: %s 被进程 %d 持有: %v", ErrTimeout, l.lockPath, pid, ctx.Err())
			}
			return fmt.Errorf("%w: %s: %v", ErrTimeout, l.lockPath, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Release 释放锁
func (l *Lock) Release() error {
	if !l.acquired {
		return nil
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除锁文件失败: %w", err)
	}

	l.acquired = false
	return nil
}

// GetPID 返回锁文件中记录的进程号
func (l *Lock) GetPID() (int, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("锁文件中的进程号无效: %w", err)
	}

	return pid, nil
}
