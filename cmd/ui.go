package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HFBDGD/prompt-copilot/internal/portable"
	"github.com/HFBDGD/prompt-copilot/internal/settings"
	"github.com/HFBDGD/prompt-copilot/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "启动交互式 TUI 界面",
	Long:  `启动基于 Bubble Tea 的交互式终端界面：逐级选择模组库、类别和任务，编辑参数并复制生成的 Prompt。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

// tuiRunner 运行 TUI，测试中替换
var tuiRunner = func(ctx context.Context, opts tui.Options) error {
	p := tea.NewProgram(tui.New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(ctx context.Context) error {
	// TUI 占用终端，日志写入数据目录
	logOut, closeLog := openLogFile()
	defer closeLog()

	a, err := newApp(ctx, logOut)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := tui.Options{
		Catalog:    a.loader,
		Language:   a.lang,
		OutputMode: a.settings.GetOutputMode(),
		Portable:   portable.IsPortableMode(),
		OnLanguageChange: func(lang string) {
			if err := a.settings.SetLanguage(lang); err != nil {
				a.logger.Warn("save language failed", zap.String("lang", lang), zap.Error(err))
			}
		},
	}

	if err := tuiRunner(ctx, opts); err != nil {
		return fmt.Errorf("运行 TUI 失败: %w", err)
	}
	return nil
}

// openLogFile 打开日志文件，失败时丢弃日志
func openLogFile() (io.Writer, func()) {
	path, err := settings.DataPath(settings.LogFileName)
	if err != nil {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
