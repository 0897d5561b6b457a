package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/settings"
)

var (
	getSetting bool
	setSetting string
)

var settingsCmd = &cobra.Command{
	Use:   "settings [key]",
	Short: "管理应用设置",
	Long: `管理 prompt-copilot 应用设置

示例:
  prompt-copilot settings                        # 显示所有设置
  prompt-copilot settings --get language         # 获取语言设置
  prompt-copilot settings --set language=en      # 设置语言为英文
  prompt-copilot settings --set cacheBackend=redis --set redisAddr=localhost:6379`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(args)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().BoolVar(&getSetting, "get", false, "获取指定设置项的值")
	settingsCmd.Flags().StringVar(&setSetting, "set", "", "设置项 (格式: key=value)")
}

func runSettings(args []string) error {
	manager, err := settings.NewManager()
	if err != nil {
		return err
	}

	// 设置模式
	if setSetting != "" {
		parts := strings.SplitN(setSetting, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("设置格式错误，应为: key=value")
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// 语言接受 zh-TW、en-GB 这类标签
		if key == "language" {
			if lang, ok := i18n.MatchLanguage(value); ok {
				value = lang
			}
		}

		if err := manager.SetValue(key, value); err != nil {
			return err
		}
		fmt.Println(color.GreenString("✓ %s: %s = %s", i18n.T("cli.settings_saved"), key, value))
		return nil
	}

	// 获取模式
	if getSetting {
		if len(args) == 0 {
			return fmt.Errorf("请指定要获取的设置项名称")
		}
		value, err := manager.GetValue(args[0])
		if err != nil {
			return fmt.Errorf("%s (支持: %s)", i18n.T("cli.unknown_setting", args[0]), strings.Join(settings.Keys(), ", "))
		}
		fmt.Println(value)
		return nil
	}

	// 显示所有设置
	fmt.Println("应用设置:")
	for _, key := range settings.Keys() {
		value, _ := manager.GetValue(key)
		if value == "" {
			value = "(未设置)"
		}
		fmt.Printf("  %-20s %s\n", key, value)
	}
	fmt.Printf("\n设置文件: %s\n", manager.Path())
	return nil
}
