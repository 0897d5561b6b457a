package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HFBDGD/prompt-copilot/internal/catalog"
	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/version"
)

// handleBrowseKeys 处理三列浏览模式的键盘事件
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right":
		if m.column < columnCount-1 {
			m.column++
		} else {
			m.column = colLibrary
		}
	case "shift+tab", "left", "h":
		if m.column > colLibrary {
			m.column--
		} else {
			m.column = colTask
		}
	case "up", "k":
		return m.moveCursor(-1)
	case "down", "j":
		return m.moveCursor(1)
	case "enter", "e":
		if m.hasTask && len(m.fields) > 0 {
			m.mode = modeEdit
			m.message = ""
			m.err = nil
			return m, m.focusField(0)
		}
	case "m":
		m.outputMode = (m.outputMode + 1) % len(i18n.OutputModes(m.lang))
		m.updateResult()
	case "M":
		n := len(i18n.OutputModes(m.lang))
		m.outputMode = (m.outputMode - 1 + n) % n
		m.updateResult()
	case "c":
		return m.copyResult()
	case "l":
		return m.switchLanguage()
	case "r":
		removed := m.catalog.ClearCache(m.ctx)
		m.message = m.t("tui.reloaded", removed)
		m.err = nil
		return m.reloadIndex()
	}
	return m, nil
}

// moveCursor 在当前列内移动光标，到达边界时循环
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	items := m.columnItems(m.column)
	if len(items) == 0 {
		return m, nil
	}
	next := (m.cursors[m.column] + delta + len(items)) % len(items)

	switch m.column {
	case colLibrary:
		if m.loadingIndex {
			return m, nil
		}
		return m.selectLibrary(next)
	case colRole:
		m.selectRole(next)
	case colTask:
		m.selectTask(next)
	}
	return m, nil
}

func (m Model) copyResult() (tea.Model, tea.Cmd) {
	if !m.hasTask {
		return m, nil
	}
	if err := m.copy(m.result); err != nil {
		m.err = fmt.Errorf("%s: %w", m.t("error.copy_failed"), err)
		m.message = ""
		return m, nil
	}
	m.copied = true
	m.err = nil
	m.message = m.t("btn_copied")
	return m, tea.Tick(copiedFeedback, func(time.Time) tea.Msg { return copiedResetMsg{} })
}

// switchLanguage 切换到下一个语言并重新加载目录
func (m Model) switchLanguage() (tea.Model, tea.Cmd) {
	langs := i18n.Languages()
	next := langs[0]
	for i, l := range langs {
		if l == m.lang {
			next = langs[(i+1)%len(langs)]
			break
		}
	}

	m.lang = next
	i18n.SetLanguage(next)
	m.outputMode = clampMode(next, m.outputMode)
	if m.onLanguage != nil {
		m.onLanguage(next)
	}
	m.message = m.t("tui.lang_changed", next)
	m.err = nil
	return m.reloadIndex()
}

func (m Model) t(key string, args ...interface{}) string {
	return i18n.Lookup(m.lang, key, args...)
}

// statusBadge 根据目录来源显示连线状态
func (m Model) statusBadge() string {
	switch m.indexSource {
	case catalog.SourceNetwork:
		return onlineBadgeStyle.Render(m.t("status_online"))
	case catalog.SourceCache:
		return cachedBadgeStyle.Render(m.t("status_cached"))
	case catalog.SourceFallback:
		return offlineBadgeStyle.Render(m.t("status_offline"))
	default:
		return helpStyle.Render(m.t("tui.loading"))
	}
}

// viewBrowse 渲染三列浏览界面
func (m Model) viewBrowse() string {
	var s strings.Builder

	s.WriteString(m.viewHeader() + "\n")
	s.WriteString(helpStyle.Render(m.t("guide")) + "\n\n")

	if m.err != nil {
		s.WriteString(errorMessageStyle.Render("✗ "+m.err.Error()) + "\n\n")
	} else if m.message != "" {
		s.WriteString(successMessageStyle.Render("✓ "+m.message) + "\n\n")
	}

	s.WriteString(sectionStyle.Render(m.t("lbl_config")) + "\n")
	s.WriteString(m.viewColumns() + "\n")

	mode := i18n.OutputModeAt(m.lang, m.outputMode)
	s.WriteString(inputLabelStyle.Render(m.t("lbl_output_mode")) + " " + mode.Label + "\n\n")

	s.WriteString(sectionStyle.Render(m.t("lbl_vars")) + "\n")
	s.WriteString(m.viewVariableSummary() + "\n")

	s.WriteString(m.viewResult() + "\n")
	s.WriteString(helpStyle.Render(m.t("tui.help_browse")))

	return s.String()
}

func (m Model) viewHeader() string {
	portableIndicator := ""
	if m.portable {
		portableIndicator = " (portable)"
	}
	title := titleStyle.Render(fmt.Sprintf("Prompt Copilot v%s%s", version.GetVersion(), portableIndicator))
	return title + "  " + m.statusBadge()
}

// viewColumns 以表格渲染 模组库 / 类别 / 任务 三列
func (m Model) viewColumns() string {
	titles := []string{m.t("lbl_lib"), m.t("lbl_role"), m.t("lbl_task")}

	columns := make([][]string, columnCount)
	hints := make([]string, columnCount)
	for col := 0; col < columnCount; col++ {
		columns[col] = m.columnItems(col)
		hints[col] = m.emptyHint(col)
	}

	colWidths := make([]int, columnCount)
	maxRows := 1
	for col := 0; col < columnCount; col++ {
		w := displayWidth(titles[col])
		for _, item := range columns[col] {
			w = max(w, displayWidth(item))
		}
		if len(columns[col]) == 0 {
			w = max(w, displayWidth(hints[col]))
		}
		colWidths[col] = min(max(w+2, 10), maxColumnWidth)
		maxRows = max(maxRows, len(columns[col]))
	}

	var s strings.Builder
	s.WriteString(borderStyle.Render(renderTableBorder(colWidths, "top")) + "\n")
	s.WriteString(m.renderTableHeader(titles, colWidths) + "\n")
	s.WriteString(borderStyle.Render(renderTableBorder(colWidths, "middle")) + "\n")
	for row := 0; row < maxRows; row++ {
		s.WriteString(m.renderTableRow(row, columns, hints, colWidths) + "\n")
	}
	s.WriteString(borderStyle.Render(renderTableBorder(colWidths, "bottom")))
	return s.String()
}

// emptyHint 空列的提示文本
func (m Model) emptyHint(col int) string {
	switch col {
	case colLibrary:
		if m.loadingIndex {
			return m.t("tui.loading")
		}
		return m.t("error.load_index")
	case colRole:
		switch {
		case m.loadingLibrary:
			return m.t("tui.loading")
		case m.libraryErr != nil:
			return m.t("error.load_library")
		default:
			return m.t("select_library")
		}
	default:
		if m.loadingLibrary || m.roles.Len() == 0 {
			return m.t("select_category")
		}
		return m.t("placeholder")
	}
}

// renderTableBorder 渲染表格边框
func renderTableBorder(colWidths []int, position string) string {
	var left, mid, right, fill string
	switch position {
	case "top":
		left, mid, right, fill = "┌", "┬", "┐", "─"
	case "middle":
		left, mid, right, fill = "├", "┼", "┤", "─"
	case "bottom":
		left, mid, right, fill = "└", "┴", "┘", "─"
	}

	var parts []string
	for i, w := range colWidths {
		if i == 0 {
			parts = append(parts, left)
		}
		parts = append(parts, strings.Repeat(fill, w+2)) // +2 为单元格内边距
		if i < len(colWidths)-1 {
			parts = append(parts, mid)
		} else {
			parts = append(parts, right)
		}
	}
	return strings.Join(parts, "")
}

// renderTableHeader 渲染表头，当前列加下划线
func (m Model) renderTableHeader(titles []string, colWidths []int) string {
	var cells []string
	for i, title := range titles {
		style := columnTitleStyle
		if i == m.column {
			style = style.Underline(true)
		}
		title = truncate(title, colWidths[i])
		cells = append(cells, " "+padRight(style.Render(title), displayWidth(title), colWidths[i])+" ")
	}
	sep := borderStyle.Render("│")
	return sep + strings.Join(cells, sep) + sep
}

// renderTableRow 渲染数据行
func (m Model) renderTableRow(row int, columns [][]string, hints []string, colWidths []int) string {
	var cells []string
	for col, items := range columns {
		width := colWidths[col]

		var content string
		var contentWidth int
		switch {
		case row < len(items):
			name := truncate(items[row], width-2)
			marker := inactiveMarkerStyle.Render("○")
			nameStyle := lipgloss.NewStyle()
			if row == m.cursors[col] {
				marker = activeMarkerStyle.Render("●")
				if col == m.column {
					nameStyle = cursorItemStyle
				}
			}
			content = marker + " " + nameStyle.Render(name)
			contentWidth = 2 + displayWidth(name)
		case row == 0 && len(items) == 0:
			hint := truncate(hints[col], width)
			content = hintStyle.Render(hint)
			contentWidth = displayWidth(hint)
		}

		cells = append(cells, " "+padRight(content, contentWidth, width)+" ")
	}
	sep := borderStyle.Render("│")
	return sep + strings.Join(cells, sep) + sep
}

// viewVariableSummary 列出当前任务的说明和参数值
func (m Model) viewVariableSummary() string {
	if !m.hasTask {
		return helpStyle.Render(m.t("placeholder")) + "\n"
	}

	var s strings.Builder
	if m.task.Description != "" {
		s.WriteString(detailContentStyle.Render("ℹ️ "+m.task.Description) + "\n")
	}
	if len(m.fields) == 0 {
		s.WriteString(helpStyle.Render(m.t("tui.no_vars")) + "\n")
		return s.String()
	}
	for _, f := range m.fields {
		s.WriteString(detailTitleStyle.Render(f.variable.Label+":") + " " + f.value().Text() + "\n")
	}
	return s.String()
}

// viewResult 渲染结果面板
func (m Model) viewResult() string {
	label := m.t("lbl_result")
	if m.copied {
		label += "  " + successMessageStyle.Render(m.t("btn_copied"))
	} else if m.hasTask {
		label += "  " + helpStyle.Render("[c] "+m.t("btn_copy"))
	}

	body := m.result
	if !m.hasTask {
		body = helpStyle.Render(m.t("placeholder"))
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}
	return sectionStyle.Render(label) + "\n" + panel.Render(body)
}
