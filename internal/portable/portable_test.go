package portable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeExecutable 将可执行文件路径指向临时目录
func fakeExecutable(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	fakeExe := filepath.Join(tmpDir, "prompt-copilot")
	if err := os.WriteFile(fakeExe, []byte("fake"), 0755); err != nil {
		t.Fatalf("Failed to create fake executable: %v", err)
	}

	original := portableExecutableFunc
	portableExecutableFunc = func() (string, error) { return fakeExe, nil }
	t.Cleanup(func() { portableExecutableFunc = original })

	// t.TempDir 在部分系统上位于符号链接之下
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	return resolved
}

func TestIsPortableMode(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, dir string)
		expect bool
	}{
		{
			name:   "没有标记文件",
			setup:  func(t *testing.T, dir string) {},
			expect: false,
		},
		{
			name: "存在标记文件",
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, MarkerFile), nil, 0644); err != nil {
					t.Fatalf("Failed to create portable.ini: %v", err)
				}
			},
			expect: true,
		},
		{
			name: "标记是目录",
			setup: func(t *testing.T, dir string) {
				if err := os.MkdirAll(filepath.Join(dir, MarkerFile), 0755); err != nil {
					t.Fatalf("Failed to create portable.ini directory: %v", err)
				}
			},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fakeExecutable(t)
			tt.setup(t, dir)

			if got := IsPortableMode(); got != tt.expect {
				t.Errorf("IsPortableMode() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestIsPortableModeExecutableError(t *testing.T) {
	original := portableExecutableFunc
	portableExecutableFunc = func() (string, error) { return "", errors.New("no executable") }
	t.Cleanup(func() { portableExecutableFunc = original })

	if IsPortableMode() {
		t.Error("IsPortableMode() should be false when the executable cannot be located")
	}
	if _, err := GetPortableDataDir(); err == nil {
		t.Error("GetPortableDataDir() should fail when the executable cannot be located")
	}
}

func TestGetPortableDataDir(t *testing.T) {
	dir := fakeExecutable(t)

	dataDir, err := GetPortableDataDir()
	if err != nil {
		t.Fatalf("GetPortableDataDir failed: %v", err)
	}

	expected := filepath.Join(dir, DataDirName)
	if dataDir != expected {
		t.Errorf("Expected data dir %s, got %s", expected, dataDir)
	}
}
