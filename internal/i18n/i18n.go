package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/HFBDGD/prompt-copilot/internal/settings"
)

// DefaultLanguage 找不到对应语言时使用的语言
const DefaultLanguage = "zh"

var currentLanguage = DefaultLanguage

// supported 支持的语言及其基础语言标签
var supported = []struct {
	code string
	base language.Base
}{
	{"zh", language.MustParseBase("zh")},
	{"en", language.MustParseBase("en")},
}

// messages 多语言界面文本
var messages = map[string]map[string]string{
	"zh": {
		// 界面标签
		"guide":           "👈 左側自由探索模組與參數，設定完成後別忘了 [複製 Prompt] 帶走你的咒語！",
		"lbl_lib":         "📚 模組庫:",
		"lbl_role":        "📂 類別:",
		"lbl_task":        "⚡ 任務:",
		"lbl_config":      "CONFIG (設定)",
		"lbl_vars":        "VARIABLES (參數)",
		"lbl_result":      "RESULT (結果)",
		"lbl_output_mode": "🎛️ 輸出模式:",
		"btn_copy":        "複製 Prompt (Copy)",
		"btn_copied":      "已複製! ✅",
		"status_online":   "🟢 連線正常",
		"status_offline":  "🟡 離線模式",
		"status_cached":   "💾 本機快取",
		"select_library":  "Select library first...",
		"select_category": "Select category first...",
		"placeholder":     "Select a task to see available options...",

		// 错误
		"error.load_index":   "Error loading libraries",
		"error.load_library": "Error loading library",
		"error.copy_failed":  "複製到剪貼簿失敗",

		// TUI
		"tui.loading":      "載入中...",
		"tui.no_vars":      "(此任務沒有參數)",
		"tui.description":  "說明:",
		"tui.lang_changed": "語言已切換為 %s",
		"tui.reloaded":     "已清除 %d 個快取項目並重新載入",
		"tui.help_browse":  "↑/↓ 選擇 · tab 切換欄位 · enter 編輯參數 · m 輸出模式 · c 複製 · l 語言 · r 重新載入 · q 離開",
		"tui.help_edit":    "↑/↓ 切換參數 · ←/→ 切換選項 · space 勾選 · esc 完成",

		// 命令行
		"cli.cache_cleared":   "已清除 %d 個快取項目",
		"cli.cache_empty":     "快取為空",
		"cli.copied":          "已複製到剪貼簿",
		"cli.source":          "資料來源: %s",
		"cli.settings_saved":  "設定已儲存",
		"cli.unknown_setting": "未知的設定項: %s",
	},
	"en": {
		"guide":           "👈 Explore the settings on the left, and don't forget to [Copy Prompt] on the right!",
		"lbl_lib":         "📚 Library:",
		"lbl_role":        "📂 Category:",
		"lbl_task":        "⚡ Task:",
		"lbl_config":      "CONFIG",
		"lbl_vars":        "VARIABLES",
		"lbl_result":      "RESULT",
		"lbl_output_mode": "🎛️ Output Mode:",
		"btn_copy":        "Copy Prompt",
		"btn_copied":      "Copied! ✅",
		"status_online":   "🟢 Online",
		"status_offline":  "🟡 Offline",
		"status_cached":   "💾 Cached",
		"select_library":  "Select library first...",
		"select_category": "Select category first...",
		"placeholder":     "Select a task to see available options...",

		"error.load_index":   "Error loading libraries",
		"error.load_library": "Error loading library",
		"error.copy_failed":  "Failed to copy to clipboard",

		"tui.loading":      "Loading...",
		"tui.no_vars":      "(this task has no variables)",
		"tui.description":  "Description:",
		"tui.lang_changed": "Language switched to %s",
		"tui.reloaded":     "Cleared %d cache entries and reloaded",
		"tui.help_browse":  "↑/↓ select · tab next column · enter edit variables · m output mode · c copy · l language · r reload · q quit",
		"tui.help_edit":    "↑/↓ variable · ←/→ option · space toggle · esc done",

		"cli.cache_cleared":   "Cleared %d cache entries",
		"cli.cache_empty":     "Cache is empty",
		"cli.copied":          "Copied to clipboard",
		"cli.source":          "Source: %s",
		"cli.settings_saved":  "Settings saved",
		"cli.unknown_setting": "Unknown setting: %s",
	},
}

// Init 从设置文件初始化语言
func Init() error {
	manager, err := settings.NewManager()
	if err != nil {
		// 如果加载设置失败，使用默认语言
		return nil
	}

	SetLanguage(manager.GetLanguage())
	return nil
}

// MatchLanguage 将任意 BCP 47 标签匹配到支持的语言，例如 zh-TW → zh、en-GB → en
func MatchLanguage(tag string) (string, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	base, _ := t.Base()
	for _, s := range supported {
		if s.base == base {
			return s.code, true
		}
	}
	return "", false
}

// Languages 返回支持的语言代码
func Languages() []string {
	codes := make([]string, 0, len(supported))
	for _, s := range supported {
		codes = append(codes, s.code)
	}
	return codes
}

// SetLanguage 设置当前语言，不支持的语言保持不变
func SetLanguage(lang string) {
	if code, ok := MatchLanguage(lang); ok {
		currentLanguage = code
	}
}

// GetLanguage 获取当前语言
func GetLanguage() string {
	return currentLanguage
}

// T 按当前语言翻译消息
func T(key string, args ...interface{}) string {
	return Lookup(currentLanguage, key, args...)
}

// Lookup 按指定语言翻译消息，未知语言降级到中文，未知 key 原样返回
func Lookup(lang, key string, args ...interface{}) string {
	langMessages, ok := messages[lang]
	if !ok {
		langMessages = messages[DefaultLanguage]
	}

	msg, ok := langMessages[key]
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}

	return msg
}
