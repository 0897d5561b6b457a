package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
)

// maxColumnWidth 单列最大显示宽度
const maxColumnWidth = 32

// writeClipboard 写入系统剪贴板
var writeClipboard = clipboard.WriteAll

// displayWidth 计算字符串的显示宽度（中文和 emoji 占 2 格）
func displayWidth(s string) int {
	return lipgloss.Width(s)
}

// truncate 截断超过宽度的文本，末尾加 "..."
func truncate(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", max(width, 0))
	}

	var b strings.Builder
	for _, r := range s {
		if displayWidth(b.String()+string(r))+3 > width {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}

// padRight 用空格将已渲染的内容补齐到指定宽度
func padRight(rendered string, contentWidth, width int) string {
	if contentWidth >= width {
		return rendered
	}
	return rendered + strings.Repeat(" ", width-contentWidth)
}
