package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

// field 一个任务参数的输入控件
type field struct {
	variable prompt.Variable

	// 文本参数
	input textinput.Model

	// 单选参数的选中项
	selected int

	// 多选参数的光标和勾选状态
	cursor  int
	checked []bool
}

// newFields 按参数类型创建控件并填入默认值：
// 文本使用默认值，单选选中第一个选项，多选默认全选
func newFields(def prompt.TaskDefinition) []field {
	vars := def.Variables()
	fields := make([]field, 0, len(vars))
	for _, v := range vars {
		f := field{variable: v}
		switch v.Kind {
		case prompt.KindText:
			f.input = textinput.New()
			f.input.Placeholder = v.Spec.Default
			f.input.SetValue(v.Spec.Default)
			f.input.CursorEnd()
			f.input.Width = 50
		case prompt.KindMulti:
			f.checked = make([]bool, len(v.Spec.Options))
			for i := range f.checked {
				f.checked[i] = true
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// value 返回控件当前的绑定值
func (f field) value() prompt.Value {
	opts := f.variable.Spec.Options
	switch f.variable.Kind {
	case prompt.KindMulti:
		items := make([]string, 0, len(opts))
		for i, opt := range opts {
			if f.checked[i] {
				items = append(items, opt)
			}
		}
		return prompt.Multi(items...)
	case prompt.KindSelect:
		if f.selected < len(opts) {
			return prompt.Single(opts[f.selected])
		}
		return prompt.Single("")
	default:
		return prompt.Single(f.input.Value())
	}
}

// focusField 切换焦点，文本控件获得光标
func (m *Model) focusField(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.focus = (i + len(m.fields)) % len(m.fields)

	var cmd tea.Cmd
	for idx := range m.fields {
		f := &m.fields[idx]
		if f.variable.Kind != prompt.KindText {
			continue
		}
		if idx == m.focus {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

func (m *Model) blurFields() {
	for idx := range m.fields {
		m.fields[idx].input.Blur()
	}
}

// handleFormKeys 处理参数编辑模式的键盘事件
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch keyStr {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.blurFields()
		m.mode = modeBrowse
		return m, nil
	case "up", "shift+tab":
		return m, m.focusField(m.focus - 1)
	case "down", "tab":
		return m, m.focusField(m.focus + 1)
	}

	f := &m.fields[m.focus]
	opts := f.variable.Spec.Options

	switch f.variable.Kind {
	case prompt.KindSelect:
		if len(opts) == 0 {
			return m, nil
		}
		switch keyStr {
		case "left", "h":
			f.selected = (f.selected - 1 + len(opts)) % len(opts)
		case "right", "l":
			f.selected = (f.selected + 1) % len(opts)
		}
		m.updateResult()
		return m, nil

	case prompt.KindMulti:
		if len(opts) == 0 {
			return m, nil
		}
		switch keyStr {
		case "left", "h":
			f.cursor = (f.cursor - 1 + len(opts)) % len(opts)
		case "right", "l":
			f.cursor = (f.cursor + 1) % len(opts)
		case " ", "x":
			f.checked[f.cursor] = !f.checked[f.cursor]
		case "a":
			// 全选 / 全不选
			all := true
			for _, c := range f.checked {
				all = all && c
			}
			for i := range f.checked {
				f.checked[i] = !all
			}
		}
		m.updateResult()
		return m, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	m.updateResult()
	return m, cmd
}

// viewForm 渲染参数编辑界面
func (m Model) viewForm() string {
	var s strings.Builder

	role, _ := m.currentRole()
	tasks := m.taskNames()
	taskName := ""
	if i := m.cursors[colTask]; i < len(tasks) {
		taskName = tasks[i]
	}
	s.WriteString(m.viewHeader() + "\n\n")
	s.WriteString(titleStyle.Render(role+" › "+taskName) + "\n")
	if m.task.Description != "" {
		s.WriteString(detailContentStyle.Render("ℹ️ "+m.task.Description) + "\n")
	}
	s.WriteString("\n" + sectionStyle.Render(m.t("lbl_vars")) + "\n\n")

	for i, f := range m.fields {
		focused := i == m.focus
		s.WriteString(inputLabelStyle.Render(f.variable.Label+":") + "\n")
		s.WriteString(f.view(focused) + "\n\n")
	}

	s.WriteString(m.viewResult() + "\n")
	s.WriteString(helpStyle.Render(m.t("tui.help_edit")))
	return s.String()
}

func (f field) view(focused bool) string {
	opts := f.variable.Spec.Options
	switch f.variable.Kind {
	case prompt.KindSelect:
		if len(opts) == 0 {
			return hintStyle.Render("-")
		}
		text := fmt.Sprintf("‹ %s ›  (%d/%d)", opts[f.selected], f.selected+1, len(opts))
		if focused {
			return inputBoxStyle.Render(text)
		}
		return normalItemStyle.Render(text)

	case prompt.KindMulti:
		parts := make([]string, 0, len(opts))
		for i, opt := range opts {
			box := "[ ]"
			if f.checked[i] {
				box = "[x]"
			}
			item := box + " " + opt
			if focused && i == f.cursor {
				item = cursorItemStyle.Render(item)
			}
			parts = append(parts, item)
		}
		text := strings.Join(parts, "  ")
		if focused {
			return inputBoxStyle.Render(text)
		}
		return normalItemStyle.Render(text)

	default:
		if focused {
			return inputBoxStyle.Render(f.input.View())
		}
		return normalItemStyle.Render(f.input.View())
	}
}
