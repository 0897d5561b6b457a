package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HFBDGD/prompt-copilot/internal/settings"
)

// 全局参数
var (
	langFlag string
	dataDir  string
	offline  bool
	timeout  time.Duration
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "prompt-copilot",
	Short: "AI Prompt 模板组装工具",
	Long: `prompt-copilot 从远程模组库加载 Prompt 模板，填入参数后生成可直接使用的 Prompt。

使用方法：
  prompt-copilot                           启动交互界面
  prompt-copilot index                     列出模组库
  prompt-copilot roles <模组库>             列出类别
  prompt-copilot tasks <模组库> <类别>       列出任务
  prompt-copilot build <模组库> <类别> <任务> 生成 Prompt`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings.SetDataDir(dataDir)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 非终端环境（管道、脚本）只打印帮助
		if !isTerminal() {
			return cmd.Help()
		}
		return runUI(cmd.Context())
	},
}

// isTerminal 检测标准输入输出是否都连接到终端
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "界面和目录语言 (zh, en)，默认使用设置")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "数据目录（设置、缓存、日志）")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "不访问网络，只使用缓存和离线备用目录")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "单次网络请求超时，如 5s（默认使用设置）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	// 自定义帮助模板
	rootCmd.SetHelpTemplate(`{{.Long}}

{{if .HasAvailableSubCommands}}可用命令:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}

{{if .HasAvailableLocalFlags}}选项:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

全局选项:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

使用 "{{.CommandPath}} [command] --help" 获取更多关于命令的信息。
`)
}
