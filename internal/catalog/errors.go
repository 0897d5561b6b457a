package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadFailure 所有 *LoadError 都满足 errors.Is(err, ErrLoadFailure)
	ErrLoadFailure = errors.New("library load failed")

	// ErrOffline 离线模式下不访问网络
	ErrOffline = errors.New("network access disabled")

	ErrEmptyLocator = errors.New("empty locator")

	errCacheMiss = errors.New("cache miss")
)

// NetworkError 网络错误：连接失败、超时或非 2xx 响应
type NetworkError struct {
	// Locator 请求的地址，不含防缓存参数
	Locator string

	// StatusCode 非 2xx 响应的状态码
	StatusCode int

	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Locator, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError 下载成功但内容不是期望的 JSON
type ParseError struct {
	Locator string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Locator, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadError 缓存和网络都失败时 LoadLibrary 返回的错误
type LoadError struct {
	Locator string

	// Err 最后一层的错误
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load library %s: %v", e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailure
}
