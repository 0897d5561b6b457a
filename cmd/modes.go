package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/settings"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "列出输出模式",
	Long:  `列出当前语言的输出模式。build --mode 和 outputMode 设置使用这里的序号。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModes()
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes() error {
	manager, err := settings.NewManager()
	if err != nil {
		return fmt.Errorf("初始化设置失败: %w", err)
	}
	lang, err := resolveLanguage(manager)
	if err != nil {
		return err
	}

	current := manager.GetOutputMode()
	fmt.Println(i18n.Lookup(lang, "lbl_output_mode"))
	for i, mode := range i18n.OutputModes(lang) {
		status := "○"
		if i == current {
			status = color.GreenString("●")
		}
		fmt.Printf("%s %d. %s\n", status, i, mode.Label)
	}
	return nil
}
