package tui

import "github.com/charmbracelet/lipgloss"

var (
	// 颜色定义
	primaryColor   = lipgloss.Color("#007AFF")
	successColor   = lipgloss.Color("#34C759")
	dangerColor    = lipgloss.Color("#FF3B30")
	warningColor   = lipgloss.Color("#FF9500")
	subtleColor    = lipgloss.Color("#8E8E93")
	borderColor    = lipgloss.Color("#3A3A3C")
	bgColor        = lipgloss.Color("#FFFFFF")
	mutedTextColor = lipgloss.Color("#6C6C70")

	// 标题样式
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// 分区标签样式
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(subtleColor)

	// 列标题样式
	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	// 表格边框样式
	borderStyle = lipgloss.NewStyle().Foreground(borderColor)

	// 帮助文本样式
	helpStyle = lipgloss.NewStyle().Foreground(subtleColor)

	// 空列提示样式
	hintStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true)

	// 当前列光标样式（蓝色背景 + 白色文字）
	cursorItemStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(bgColor).
			Bold(true)

	// 普通项样式
	normalItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// 选中标记样式
	activeMarkerStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	// 普通标记样式
	inactiveMarkerStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	// 连线状态徽章
	onlineBadgeStyle  = lipgloss.NewStyle().Foreground(successColor)
	cachedBadgeStyle  = lipgloss.NewStyle().Foreground(primaryColor)
	offlineBadgeStyle = lipgloss.NewStyle().Foreground(warningColor)

	// 结果面板样式
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// 详情标题样式
	detailTitleStyle = lipgloss.NewStyle().Bold(true)

	// 详情内容样式
	detailContentStyle = lipgloss.NewStyle().
				Foreground(mutedTextColor)

	// 成功消息样式
	successMessageStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	// 错误消息样式
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(dangerColor).
				Bold(true)

	// 输入框样式
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// 输入标签样式
	inputLabelStyle = lipgloss.NewStyle().Bold(true)
)
