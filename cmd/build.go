package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

var (
	buildSets []string
	buildVars string
	buildMode int
	buildCopy bool
)

// copyToClipboard 写入系统剪贴板
var copyToClipboard = clipboard.WriteAll

var buildCmd = &cobra.Command{
	Use:   "build <模组库> <类别> <任务>",
	Short: "生成 Prompt",
	Long: `用任务模板和参数生成 Prompt，结果输出到 stdout。

未指定的参数使用默认值：文本参数使用默认文本，单选参数使用第一个选项，多选参数全选。
多选参数的值用逗号或「、」分隔，参数名可以省略 __multi 后缀。

示例:
  prompt-copilot build 1 1 1
  prompt-copilot build 1 Writer Translate --set tone=casual --set lang=French,German
  prompt-copilot build 1 Writer Translate --vars 'text="Good morning" tone=casual' --mode 4 --copy`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), args, cmd.Flags().Changed("mode"))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringArrayVar(&buildSets, "set", nil, "设置参数 (格式: key=value，可重复)")
	buildCmd.Flags().StringVar(&buildVars, "vars", "", "以 shell 语法一次设置多个参数，如 'a=1 b=\"x y\"'")
	buildCmd.Flags().IntVarP(&buildMode, "mode", "m", 0, "输出模式序号（默认使用设置，见 modes 命令）")
	buildCmd.Flags().BoolVarP(&buildCopy, "copy", "c", false, "同时复制到剪贴板")
}

// parseOverrides 合并 --vars 和 --set，后出现的同名参数覆盖前面的
func parseOverrides(vars string, sets []string) (map[string]string, error) {
	overrides := make(map[string]string)

	var pairs []string
	if strings.TrimSpace(vars) != "" {
		words, err := shellwords.Parse(vars)
		if err != nil {
			return nil, fmt.Errorf("解析 --vars 失败: %w", err)
		}
		pairs = append(pairs, words...)
	}
	pairs = append(pairs, sets...)

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("参数格式错误，应为: key=value (%s)", pair)
		}
		overrides[strings.TrimSpace(parts[0])] = parts[1]
	}
	return overrides, nil
}

func runBuild(ctx context.Context, args []string, modeChanged bool) error {
	overrides, err := parseOverrides(buildVars, buildSets)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	modes := i18n.OutputModes(a.lang)
	mode := a.settings.GetOutputMode()
	if modeChanged {
		if buildMode < 0 || buildMode >= len(modes) {
			return fmt.Errorf("输出模式不存在: %d (可用: 0-%d)", buildMode, len(modes)-1)
		}
		mode = buildMode
	} else if mode < 0 || mode >= len(modes) {
		mode = 0
	}

	sel, err := selectPath(ctx, a, args...)
	if err != nil {
		return err
	}

	bindings, err := prompt.Bind(sel.def, overrides)
	if err != nil {
		return err
	}
	result := prompt.Compose(modes[mode].Prefix, sel.def.Template, bindings)
	fmt.Println(result)

	if buildCopy {
		if err := copyToClipboard(result); err != nil {
			return fmt.Errorf("%s: %w", i18n.T("error.copy_failed"), err)
		}
		fmt.Fprintln(os.Stderr, color.GreenString("✓ %s", i18n.T("cli.copied")))
	}
	printSource(sel.source)
	return nil
}
