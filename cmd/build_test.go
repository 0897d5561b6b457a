package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

func TestBuildCommand(t *testing.T) {
	setupCatalog(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"build", "1", "1", "1"},
			want: "Translate Hello into French、German with formal",
		},
		{
			name: "by name with set",
			args: []string{"build", "寫作助手", "Writer", "Translate", "--set", "tone=casual", "--set", "lang=German"},
			want: "Translate Hello into German with casual",
		},
		{
			name: "vars parsed as shell words",
			args: []string{"build", "1", "1", "1", "--vars", `text="Good morning" lang__multi=German,French`},
			want: "Translate Good morning into German、French with formal",
		},
		{
			name: "set overrides vars",
			args: []string{"build", "1", "1", "1", "--vars", "tone=casual", "--set", "tone=formal"},
			want: "Translate Hello into French、German with formal",
		},
		{
			name: "current schema library",
			args: []string{"build", "維運", "Ops", "Deploy"},
			want: "Deploy staging",
		},
		{
			name: "task without variables",
			args: []string{"build", "1", "Writer", "Plain"},
			want: "Just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, t.TempDir(), tt.args...)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if stdout != tt.want+"\n" {
				t.Fatalf("unexpected prompt:\n got: %q\nwant: %q", stdout, tt.want+"\n")
			}
		})
	}
}

func TestBuildCommandMode(t *testing.T) {
	setupCatalog(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "build", "1", "1", "1", "--mode", "4")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	prefix := i18n.OutputModeAt("zh", 4).Prefix
	if !strings.HasPrefix(stdout, prefix) || !strings.HasSuffix(stdout, "with formal\n") {
		t.Fatalf("expected mode prefix, got: %q", stdout)
	}

	_, _, err = execute(t, dir, "build", "1", "1", "1", "--mode", "99")
	if err == nil || !strings.Contains(err.Error(), "输出模式不存在") {
		t.Fatalf("expected invalid mode error, got: %v", err)
	}

	// 默认使用设置中的输出模式
	if _, _, err := execute(t, dir, "settings", "--set", "outputMode=2"); err != nil {
		t.Fatalf("set outputMode: %v", err)
	}
	stdout, _, err = execute(t, dir, "build", "1", "1", "1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(stdout, i18n.OutputModeAt("zh", 2).Prefix) {
		t.Fatalf("expected settings mode prefix, got: %q", stdout)
	}
}

func TestBuildCommandErrors(t *testing.T) {
	setupCatalog(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "unknown variable", args: []string{"--set", "nope=1"}, wantErr: prompt.ErrUnknownVariable},
		{name: "option outside list", args: []string{"--set", "tone=angry"}, wantErr: prompt.ErrInvalidOption},
		{name: "malformed set", args: []string{"--set", "tone"}, wantMsg: "key=value"},
		{name: "unterminated quote", args: []string{"--vars", `text="oops`}, wantMsg: "--vars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"build", "1", "1", "1"}, tt.args...)
			_, _, err := execute(t, t.TempDir(), args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got: %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected %q in error, got: %v", tt.wantMsg, err)
			}
		})
	}
}

func TestBuildCommandCopy(t *testing.T) {
	setupCatalog(t)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	stdout, stderr, err := execute(t, t.TempDir(), "build", "1", "2", "1", "--copy")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if copied != "Review x := 1" || stdout != copied+"\n" {
		t.Fatalf("unexpected copy %q / stdout %q", copied, stdout)
	}
	if !strings.Contains(stderr, "已複製到剪貼簿") {
		t.Errorf("expected copied notice, got: %s", stderr)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	_, _, err = execute(t, t.TempDir(), "build", "1", "2", "1", "--copy")
	if err == nil || !strings.Contains(err.Error(), "複製到剪貼簿失敗") {
		t.Fatalf("expected copy error, got: %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides(`a=1 b="x y" c='p=q'`, []string{"a=2", "d="})
	if err != nil {
		t.Fatalf("parseOverrides: %v", err)
	}
	want := map[string]string{"a": "2", "b": "x y", "c": "p=q", "d": ""}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}

	if _, err := parseOverrides("", []string{"=x"}); err == nil {
		t.Fatal("expected error for empty key")
	}
}
