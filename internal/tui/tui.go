package tui

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HFBDGD/prompt-copilot/internal/catalog"
	"github.com/HFBDGD/prompt-copilot/internal/i18n"
	"github.com/HFBDGD/prompt-copilot/internal/prompt"
)

// Catalog 是 TUI 需要的目录加载能力，*catalog.Loader 实现了它
type Catalog interface {
	ResolveIndex(ctx context.Context, lang string) (catalog.Index, catalog.Source)
	ResolveLibrary(ctx context.Context, locator string) (json.RawMessage, catalog.Source, error)
	ClearCache(ctx context.Context) int
}

// Options TUI 配置
type Options struct {
	Catalog    Catalog
	Language   string
	OutputMode int
	Portable   bool

	// Copy 写入剪贴板，默认使用系统剪贴板
	Copy func(text string) error

	// OnLanguageChange 在用户切换语言后调用，用于持久化
	OnLanguageChange func(lang string)
}

// 列
const (
	colLibrary = iota
	colRole
	colTask
	columnCount
)

// 模式
const (
	modeBrowse = "browse"
	modeEdit   = "edit"
)

const copiedFeedback = 2 * time.Second

// Model TUI 主模型
type Model struct {
	ctx        context.Context
	catalog    Catalog
	copy       func(string) error
	onLanguage func(string)
	portable   bool
	lang       string

	// 目录
	index        catalog.Index
	indexSource  catalog.Source
	loadingIndex bool
	indexSeq     int

	// 当前模组库
	roles          prompt.RoleMap
	librarySource  catalog.Source
	loadingLibrary bool
	libraryErr     error
	librarySeq     int

	column  int
	cursors [columnCount]int

	// 当前任务
	task    prompt.TaskDefinition
	hasTask bool
	fields  []field
	focus   int

	mode       string
	outputMode int
	result     string
	copied     bool
	message    string
	err        error
	width      int
	height     int
}

// indexLoadedMsg 目录加载完成
type indexLoadedMsg struct {
	seq    int
	index  catalog.Index
	source catalog.Source
}

// libraryLoadedMsg 模组库加载完成
type libraryLoadedMsg struct {
	seq    int
	doc    json.RawMessage
	source catalog.Source
	err    error
}

// copiedResetMsg 复制提示到期
type copiedResetMsg struct{}

// New 创建新的 TUI 模型
func New(ctx context.Context, opts Options) Model {
	lang, ok := i18n.MatchLanguage(opts.Language)
	if !ok {
		lang = i18n.DefaultLanguage
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = writeClipboard
	}

	m := Model{
		ctx:        ctx,
		catalog:    opts.Catalog,
		copy:       copyFn,
		onLanguage: opts.OnLanguageChange,
		portable:   opts.Portable,
		lang:       lang,
		mode:       modeBrowse,
		outputMode: clampMode(lang, opts.OutputMode),
	}
	m.loadingIndex = true
	return m
}

// Init 启动时加载目录
func (m Model) Init() tea.Cmd {
	return m.loadIndexCmd()
}

func (m Model) loadIndexCmd() tea.Cmd {
	ctx, c, lang, seq := m.ctx, m.catalog, m.lang, m.indexSeq
	return func() tea.Msg {
		idx, src := c.ResolveIndex(ctx, lang)
		return indexLoadedMsg{seq: seq, index: idx, source: src}
	}
}

func (m Model) loadLibraryCmd(locator string) tea.Cmd {
	ctx, c, seq := m.ctx, m.catalog, m.librarySeq
	return func() tea.Msg {
		doc, src, err := c.ResolveLibrary(ctx, locator)
		return libraryLoadedMsg{seq: seq, doc: doc, source: src, err: err}
	}
}

// Update 处理消息
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case indexLoadedMsg:
		// 丢弃过期的结果
		if msg.seq != m.indexSeq {
			return m, nil
		}
		return m.applyIndex(msg)

	case libraryLoadedMsg:
		if msg.seq != m.librarySeq {
			return m, nil
		}
		m.applyLibrary(msg)
		return m, nil

	case copiedResetMsg:
		m.copied = false

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.handleFormKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}

	return m, nil
}

// View 渲染界面
func (m Model) View() string {
	if m.mode == modeEdit {
		return m.viewForm()
	}
	return m.viewBrowse()
}

// Result 返回当前生成的 Prompt
func (m Model) Result() string {
	return m.result
}

// reloadIndex 重新加载目录（切换语言或清除缓存后）
func (m Model) reloadIndex() (Model, tea.Cmd) {
	m.indexSeq++
	m.librarySeq++
	m.loadingIndex = true
	m.loadingLibrary = false
	m.index = catalog.Index{}
	m.clearLibrary()
	m.cursors = [columnCount]int{}
	m.column = colLibrary
	return m, m.loadIndexCmd()
}

func (m Model) applyIndex(msg indexLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingIndex = false
	m.index = msg.index
	m.indexSource = msg.source
	m.cursors = [columnCount]int{}

	// 自动选择第一个模组库
	if m.index.Len() == 0 {
		return m, nil
	}
	return m.selectLibrary(0)
}

// selectLibrary 选中模组库并开始加载
func (m Model) selectLibrary(i int) (Model, tea.Cmd) {
	names := m.index.Keys()
	if i < 0 || i >= len(names) {
		return m, nil
	}
	m.cursors[colLibrary] = i
	m.cursors[colRole] = 0
	m.cursors[colTask] = 0
	m.clearLibrary()

	locator, _ := m.index.Get(names[i])
	m.librarySeq++
	m.loadingLibrary = true
	return m, m.loadLibraryCmd(locator)
}

func (m *Model) clearLibrary() {
	m.roles = prompt.RoleMap{}
	m.libraryErr = nil
	m.librarySource = catalog.SourceNone
	m.clearTask()
}

func (m *Model) clearTask() {
	m.task = prompt.TaskDefinition{}
	m.hasTask = false
	m.fields = nil
	m.focus = 0
	m.result = ""
}

func (m *Model) applyLibrary(msg libraryLoadedMsg) {
	m.loadingLibrary = false
	if msg.err != nil {
		m.libraryErr = msg.err
		return
	}
	m.librarySource = msg.source
	m.roles = prompt.Normalize(msg.doc)

	// 自动选择第一个类别和任务
	m.selectRole(0)
}

func (m *Model) selectRole(i int) {
	m.cursors[colRole] = i
	m.cursors[colTask] = 0
	m.clearTask()
	if len(m.taskNames()) > 0 {
		m.selectTask(0)
	}
}

func (m *Model) selectTask(i int) {
	m.cursors[colTask] = i
	m.clearTask()

	role, ok := m.currentRole()
	if !ok {
		return
	}
	tasks := m.taskNames()
	if i < 0 || i >= len(tasks) {
		return
	}
	def, err := prompt.Lookup(m.roles, role, tasks[i])
	if err != nil {
		return
	}

	m.task = def
	m.hasTask = true
	m.fields = newFields(def)
	m.updateResult()
}

// updateResult 根据当前参数重新生成结果
func (m *Model) updateResult() {
	if !m.hasTask {
		m.result = ""
		return
	}
	bindings := make(prompt.Bindings, len(m.fields))
	for _, f := range m.fields {
		bindings[f.variable.Name] = f.value()
	}
	mode := i18n.OutputModeAt(m.lang, m.outputMode)
	m.result = prompt.Compose(mode.Prefix, m.task.Template, bindings)
}

func (m Model) libraryNames() []string {
	return m.index.Keys()
}

func (m Model) roleNames() []string {
	return m.roles.Keys()
}

func (m Model) currentRole() (string, bool) {
	names := m.roleNames()
	i := m.cursors[colRole]
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}

func (m Model) taskNames() []string {
	role, ok := m.currentRole()
	if !ok {
		return nil
	}
	tasks, _ := m.roles.Get(role)
	return tasks.Keys()
}

func (m Model) columnItems(col int) []string {
	switch col {
	case colLibrary:
		return m.libraryNames()
	case colRole:
		return m.roleNames()
	default:
		return m.taskNames()
	}
}

func clampMode(lang string, mode int) int {
	if mode < 0 || mode >= len(i18n.OutputModes(lang)) {
		return 0
	}
	return mode
}
