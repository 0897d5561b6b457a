package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// CreateTempDir 创建临时测试目录
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "prompt-copilot-test-*")
	if err != nil {
		t.Fatalf("创建临时目录失败: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// CreateTempFile 创建临时测试文件
func CreateTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	return path
}

// AssertFileExists 断言文件存在
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("文件不存在: %s", path)
	}
}

// AssertFileNotExists 断言文件不存在
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("文件不应该存在: %s", path)
	}
}

// AssertFileContent 断言文件内容
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取文件失败: %v", err)
	}
	if string(content) != expected {
		t.Errorf("文件内容不匹配\n期望: %s\n实际: %s", expected, string(content))
	}
}

// WithTempHome 将 HOME/USERPROFILE 指向临时目录后执行 fn
func WithTempHome(t *testing.T, fn func(home string)) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	fn(home)
}

// CaptureOutput 捕获 fn 执行期间写入 os.Stdout 和 os.Stderr 的内容
func CaptureOutput(t *testing.T, fn func()) (string, string) {
	t.Helper()

	origStdout, origStderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("创建管道失败: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("创建管道失败: %v", err)
	}

	var wg sync.WaitGroup
	var stdout, stderr bytes.Buffer
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stdout, outR)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stderr, errR)
	}()

	os.Stdout, os.Stderr = outW, errW
	defer func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	}()

	fn()

	outW.Close()
	errW.Close()
	wg.Wait()
	outR.Close()
	errR.Close()

	return stdout.String(), stderr.String()
}

// MockResponse MockHTTPClient 返回的响应
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

type mockTransport struct {
	responses map[string]MockResponse
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// 按不带查询参数的 URL 匹配
	u := *req.URL
	u.RawQuery = ""

	resp, ok := m.responses[u.String()]
	if !ok {
		resp = MockResponse{StatusCode: http.StatusNotFound, Body: "not found"}
	}

	header := make(http.Header)
	for k, v := range resp.Headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(resp.Body)),
		Request:    req,
	}, nil
}

// MockHTTPClient 返回按 URL 应答固定响应的 HTTP 客户端，未登记的 URL 返回 404
func MockHTTPClient(t *testing.T, responses map[string]MockResponse) *http.Client {
	t.Helper()
	return &http.Client{Transport: &mockTransport{responses: responses}}
}

// CatalogServer 提供目录和模组库 JSON 的测试服务器
type CatalogServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

// NewCatalogServer 按路径返回 routes 中的 JSON，未登记的路径返回 404
func NewCatalogServer(t *testing.T, routes map[string]string) *CatalogServer {
	t.Helper()
	s := &CatalogServer{routes: routes, hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		body, ok := s.routes[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

// Path 返回路径对应的完整 URL
func (s *CatalogServer) Path(path string) string {
	return s.URL + path
}

// Hits 返回路径被请求的次数
func (s *CatalogServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits 返回所有请求次数
func (s *CatalogServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
}

// KeyMsg 将按键名转换为 tea.KeyMsg，非特殊键按字符输入处理
func KeyMsg(key string) tea.KeyMsg {
	if kt, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// BubbleTeaTestHelper 依次向模型发送按键并返回最终模型，不执行返回的命令
func BubbleTeaTestHelper(t *testing.T, model tea.Model, keys []string) tea.Model {
	t.Helper()
	for _, key := range keys {
		model, _ = model.Update(KeyMsg(key))
	}
	return model
}
