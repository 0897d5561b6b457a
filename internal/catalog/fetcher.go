package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/HFBDGD/prompt-copilot/internal/version"
)

// DefaultTimeout 单次请求的默认超时
const DefaultTimeout = 5 * time.Second

// CacheBustParam 防缓存查询参数，每次请求取不同的值
const CacheBustParam = "t"

// maxBodySize 响应体上限
const maxBodySize = 16 << 20

// Fetcher 按地址获取原始内容
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// HTTPFetcher 通过 HTTP(S) GET 获取，绕过中间缓存
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
	token   func() string
}

// NewHTTPFetcher 创建 HTTPFetcher，timeout <= 0 时使用 DefaultTimeout，client 为 nil 时使用 http.DefaultClient
func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:  client,
		timeout: timeout,
		token:   uuid.NewString,
	}
}

// Fetch 所有失败（包括超时和非 2xx）都返回 *NetworkError
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: fmt.Errorf("invalid locator: %w", err)}
	}
	q := u.Query()
	q.Set(CacheBustParam, f.token())
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &NetworkError{Locator: locator, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Locator: locator, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// OfflineFetcher 总是失败，只使用缓存和备用目录（--offline）
type OfflineFetcher struct{}

func (OfflineFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	return nil, &NetworkError{Locator: locator, Err: ErrOffline}
}
