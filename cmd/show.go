package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <模组库> <类别> <任务>",
	Short: "显示任务的模板和参数",
	Long: `显示任务的模板、说明和参数定义。

示例:
  prompt-copilot show 1 1 1
  prompt-copilot show 1 Writer Translate --output json`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "text", "输出格式 (text, json, yaml)")
}

// taskView show 命令的输出结构
type taskView struct {
	Library     string         `json:"library" yaml:"library"`
	Role        string         `json:"role" yaml:"role"`
	Task        string         `json:"task" yaml:"task"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Template    string         `json:"template" yaml:"template"`
	Variables   []variableView `json:"variables" yaml:"variables"`
}

type variableView struct {
	Name    string   `json:"name" yaml:"name"`
	Label   string   `json:"label" yaml:"label"`
	Kind    string   `json:"kind" yaml:"kind"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

func newTaskView(sel selection) taskView {
	view := taskView{
		Library:     sel.library,
		Role:        sel.role,
		Task:        sel.task,
		Description: sel.def.Description,
		Template:    sel.def.Template,
		Variables:   []variableView{},
	}
	for _, v := range sel.def.Variables() {
		view.Variables = append(view.Variables, variableView{
			Name:    v.Name,
			Label:   v.Label,
			Kind:    v.Kind.String(),
			Default: v.Spec.Default,
			Options: v.Spec.Options,
		})
	}
	return view
}

func runShow(ctx context.Context, args []string) error {
	switch showOutput {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("不支持的输出格式: %s (支持: text, json, yaml)", showOutput)
	}

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	sel, err := selectPath(ctx, a, args...)
	if err != nil {
		return err
	}
	view := newTaskView(sel)

	switch showOutput {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化失败: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("序列化失败: %w", err)
		}
		fmt.Print(string(data))
	default:
		printTaskView(view)
	}

	printSource(sel.source)
	return nil
}

func printTaskView(view taskView) {
	fmt.Printf("%s › %s › %s\n", view.Library, view.Role, color.CyanString("%s", view.Task))
	fmt.Println("─────────────────────────────")
	if view.Description != "" {
		fmt.Printf("%s %s\n\n", i18n.T("tui.description"), view.Description)
	}

	fmt.Println(i18n.T("lbl_vars"))
	if len(view.Variables) == 0 {
		fmt.Println("  " + i18n.T("tui.no_vars"))
	}
	for _, v := range view.Variables {
		switch v.Kind {
		case prompt.KindText.String():
			fmt.Printf("  %-16s %-6s = %q\n", v.Label, v.Kind, v.Default)
		default:
			fmt.Printf("  %-16s %-6s [%s]\n", v.Label, v.Kind, strings.Join(v.Options, ", "))
		}
	}

	fmt.Println()
	fmt.Println("Template:")
	fmt.Println(color.HiBlackString("%s", view.Template))
}
