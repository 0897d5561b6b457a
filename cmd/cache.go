package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HFBDGD/prompt-copilot/internal/i18n"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "管理本地缓存",
	Long:  `管理目录和模组库的本地缓存。缓存条目 24 小时后失效，失效条目在下次读取时被忽略。`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "清除目录和模组库缓存",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCacheClear(cmd.Context())
	},
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "显示缓存条目",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCacheStatus(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
}

func runCacheClear(ctx context.Context) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	removed := a.loader.ClearCache(ctx)
	fmt.Println(color.GreenString("✓ %s", i18n.T("cli.cache_cleared", removed)))
	return nil
}

func runCacheStatus(ctx context.Context) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("缓存后端: %s\n", a.settings.Get().CacheBackend)

	entries := a.loader.CacheEntries(ctx)
	if len(entries) == 0 {
		fmt.Println(i18n.T("cli.cache_empty"))
		return nil
	}

	fmt.Println("─────────")
	for _, e := range entries {
		var state, stored string
		switch {
		case e.Corrupt:
			state = color.RedString("corrupt")
			stored = "-"
		case e.Expired:
			state = color.YellowString("expired")
			stored = e.Stored.Format("2006-01-02 15:04:05")
		default:
			state = color.GreenString("fresh")
			stored = e.Stored.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %s  %7d B  %s\n", state, stored, e.Size, e.Key)
	}
	return nil
}
