package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HFBDGD/prompt-copilot/internal/catalog"
	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "列出模组库",
	Long: `列出当前语言目录中的所有模组库。

目录依次从本地缓存、网络获取，都失败时使用离线备用目录。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(cmd.Context())
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles <模组库>",
	Short: "列出模组库中的类别",
	Long: `列出模组库中的类别。模组库可以用名称或 index 输出中的序号指定。

示例:
  prompt-copilot roles 1
  prompt-copilot roles "🖋️ 寫作助手"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoles(cmd.Context(), args[0])
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks <模组库> <类别>",
	Short: "列出类别中的任务",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTasks(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runIndex(ctx context.Context) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	idx, src := a.loader.ResolveIndex(ctx, a.lang)

	fmt.Println(i18n.T("lbl_lib"))
	fmt.Println("─────────")
	for i, name := range idx.Keys() {
		locator, _ := idx.Get(name)
		fmt.Printf("%3d. %s\n", i+1, name)
		fmt.Printf("     %s\n", color.HiBlackString("%s", locator))
	}
	printSource(src)
	return nil
}

func runRoles(ctx context.Context, library string) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	sel, err := selectPath(ctx, a, library)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", i18n.T("lbl_role"), color.CyanString("%s", sel.library))
	fmt.Println("─────────")
	for i, role := range sel.roles.Keys() {
		tasks, _ := sel.roles.Get(role)
		fmt.Printf("%3d. %s %s\n", i+1, role, color.HiBlackString("(%d)", tasks.Len()))
	}
	printSource(sel.source)
	return nil
}

func runTasks(ctx context.Context, library, role string) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	sel, err := selectPath(ctx, a, library, role)
	if err != nil {
		return err
	}

	tasks, _ := sel.roles.Get(sel.role)
	fmt.Printf("%s %s › %s\n", i18n.T("lbl_task"), color.CyanString("%s", sel.library), color.CyanString("%s", sel.role))
	fmt.Println("─────────")
	for i, name := range tasks.Keys() {
		def, _ := tasks.Get(name)
		fmt.Printf("%3d. %s\n", i+1, name)
		if def.Description != "" {
			fmt.Printf("     %s\n", color.HiBlackString("%s", def.Description))
		}
	}
	printSource(sel.source)
	return nil
}

// selection 命令行参数选中的 模组库 / 类别 / 任务
type selection struct {
	library string
	role    string
	task    string
	roles   prompt.RoleMap
	def     prompt.TaskDefinition
	source  catalog.Source
}

// selectPath 按 [模组库, 类别, 任务] 逐级选择，每一级都接受名称或从 1 开始的序号
func selectPath(ctx context.Context, a *app, path ...string) (selection, error) {
	var sel selection

	idx, _ := a.loader.ResolveIndex(ctx, a.lang)
	name, ok := pickKey(idx.Keys(), path[0])
	if !ok {
		return sel, fmt.Errorf("模组库不存在: %s", path[0])
	}
	sel.library = name

	locator, _ := idx.Get(name)
	doc, src, err := a.loader.ResolveLibrary(ctx, locator)
	if err != nil {
		return sel, fmt.Errorf("%s: %w", i18n.T("error.load_library"), err)
	}
	sel.source = src
	sel.roles = prompt.Normalize(doc)

	if len(path) < 2 {
		return sel, nil
	}
	role, ok := pickKey(sel.roles.Keys(), path[1])
	if !ok {
		return sel, fmt.Errorf("类别不存在: %s", path[1])
	}
	sel.role = role

	if len(path) < 3 {
		return sel, nil
	}
	tasks, _ := sel.roles.Get(role)
	task, ok := pickKey(tasks.Keys(), path[2])
	if !ok {
		return sel, fmt.Errorf("任务不存在: %s", path[2])
	}
	sel.task = task

	sel.def, err = prompt.Lookup(sel.roles, role, task)
	if err != nil {
		return sel, err
	}
	return sel, nil
}

// pickKey 名称精确匹配优先，其次按从 1 开始的序号
func pickKey(keys []string, arg string) (string, bool) {
	for _, k := range keys {
		if k == arg {
			return k, true
		}
	}
	// 只接受十进制数字，"010" 是第 10 项
	for _, r := range arg {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(keys) {
		return "", false
	}
	return keys[n-1], true
}
