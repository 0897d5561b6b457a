package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/HFBDGD/prompt-copilot/internal/portable"
	"github.com/HFBDGD/prompt-copilot/internal/utils"
)

// 缓存后端
const (
	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// DefaultFetchTimeoutSeconds 单次网络请求的默认超时
const DefaultFetchTimeoutSeconds = 5

// 数据目录下的文件
const (
	SettingsFileName = "settings.json"
	CacheFileName    = "cache.json"
	LogFileName      = "prompt-copilot.log"
)

// AppSettings 应用设置
type AppSettings struct {
	Language            string `json:"language"`            // 语言: "en" 或 "zh"
	OutputMode          int    `json:"outputMode"`          // 默认输出模式序号
	CacheBackend        string `json:"cacheBackend"`        // file / redis / memory
	RedisAddr           string `json:"redisAddr,omitempty"` // host:port
	RedisDB             int    `json:"redisDB,omitempty"`
	FetchTimeoutSeconds int    `json:"fetchTimeoutSeconds"`
}

// Defaults 返回默认设置
func Defaults() AppSettings {
	return AppSettings{
		Language:            "zh", // 默认中文
		CacheBackend:        CacheBackendFile,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
	}
}

// Manager 设置管理器
type Manager struct {
	settings     *AppSettings
	settingsPath string
}

var dataDirOverride string

// SetDataDir 覆盖数据目录（--data-dir），空字符串恢复默认
func SetDataDir(dir string) {
	dataDirOverride = dir
}

// DataDir 返回数据目录：--data-dir > 便携版目录 > ~/.prompt-copilot
func DataDir() (string, error) {
	if dataDirOverride != "" {
		return filepath.Abs(dataDirOverride)
	}

	if portable.IsPortableMode() {
		return portable.GetPortableDataDir()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户主目录失败: %w", err)
	}
	return filepath.Join(homeDir, portable.DataDirName), nil
}

// DataPath 返回数据目录下某个文件的路径
func DataPath(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetSettingsPath 获取设置文件路径
func GetSettingsPath() (string, error) {
	return DataPath(SettingsFileName)
}

// NewManager 创建设置管理器
func NewManager() (*Manager, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("获取设置文件路径失败: %w", err)
	}
	return NewManagerAt(settingsPath)
}

// NewManagerAt 使用指定的设置文件创建设置管理器
func NewManagerAt(settingsPath string) (*Manager, error) {
	manager := &Manager{
		settingsPath: settingsPath,
	}

	if err := manager.Load(); err != nil {
		return nil, err
	}

	return manager, nil
}

// Path 返回设置文件路径
func (m *Manager) Path() string {
	return m.settingsPath
}

// Load 加载设置文件
func (m *Manager) Load() error {
	// 如果设置文件不存在，创建默认设置
	if !utils.FileExists(m.settingsPath) {
		defaults := Defaults()
		m.settings = &defaults
		return m.Save()
	}

	data, err := os.ReadFile(m.settingsPath)
	if err != nil {
		return fmt.Errorf("读取设置文件失败: %w", err)
	}

	// 缺失的字段保留默认值
	loaded := Defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("解析设置文件失败: %w", err)
	}
	if loaded.FetchTimeoutSeconds <= 0 {
		loaded.FetchTimeoutSeconds = DefaultFetchTimeoutSeconds
	}
	if loaded.CacheBackend == "" {
		loaded.CacheBackend = CacheBackendFile
	}
	m.settings = &loaded

	return nil
}

// Save 保存设置文件
func (m *Manager) Save() error {
	return utils.WriteJSONFile(m.settingsPath, m.settings, 0600)
}

// GetLanguage 获取语言设置
func (m *Manager) GetLanguage() string {
	return m.settings.Language
}

// SetLanguage 设置语言
func (m *Manager) SetLanguage(language string) error {
	if language != "en" && language != "zh" {
		return fmt.Errorf("不支持的语言: %s (支持: en, zh)", language)
	}
	m.settings.Language = language
	return m.Save()
}

// GetOutputMode 获取默认输出模式
func (m *Manager) GetOutputMode() int {
	return m.settings.OutputMode
}

// SetOutputMode 设置默认输出模式
func (m *Manager) SetOutputMode(mode int) error {
	if mode < 0 {
		return fmt.Errorf("输出模式序号不能为负数: %d", mode)
	}
	m.settings.OutputMode = mode
	return m.Save()
}

// SetCacheBackend 设置缓存后端
func (m *Manager) SetCacheBackend(backend string) error {
	switch backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendMemory:
	default:
		return fmt.Errorf("不支持的缓存后端: %s (支持: file, redis, memory)", backend)
	}
	m.settings.CacheBackend = backend
	return m.Save()
}

// FetchTimeout 返回网络请求超时
func (m *Manager) FetchTimeout() time.Duration {
	return time.Duration(m.settings.FetchTimeoutSeconds) * time.Second
}

// Get 获取所有设置
func (m *Manager) Get() *AppSettings {
	return m.settings
}

// Keys 返回可通过 GetValue/SetValue 访问的设置项
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type accessor struct {
	get func(s *AppSettings) interface{}
	set func(m *Manager, value string) error
}

var accessors = map[string]accessor{
	"language": {
		get: func(s *AppSettings) interface{} { return s.Language },
		set: func(m *Manager, v string) error { return m.SetLanguage(v) },
	},
	"outputMode": {
		get: func(s *AppSettings) interface{} { return s.OutputMode },
		set: func(m *Manager, v string) error {
			mode, err := cast.ToIntE(v)
			if err != nil {
				return fmt.Errorf("outputMode 必须是整数: %w", err)
			}
			return m.SetOutputMode(mode)
		},
	},
	"cacheBackend": {
		get: func(s *AppSettings) interface{} { return s.CacheBackend },
		set: func(m *Manager, v string) error { return m.SetCacheBackend(v) },
	},
	"redisAddr": {
		get: func(s *AppSettings) interface{} { return s.RedisAddr },
		set: func(m *Manager, v string) error {
			m.settings.RedisAddr = strings.TrimSpace(v)
			return m.Save()
		},
	},
	"redisDB": {
		get: func(s *AppSettings) interface{} { return s.RedisDB },
		set: func(m *Manager, v string) error {
			db, err := cast.ToIntE(v)
			if err != nil || db < 0 {
				return fmt.Errorf("redisDB 必须是非负整数: %s", v)
			}
			m.settings.RedisDB = db
			return m.Save()
		},
	},
	"fetchTimeoutSeconds": {
		get: func(s *AppSettings) interface{} { return s.FetchTimeoutSeconds },
		set: func(m *Manager, v string) error {
			sec, err := cast.ToIntE(v)
			if err != nil || sec <= 0 {
				return fmt.Errorf("fetchTimeoutSeconds 必须是正整数: %s", v)
			}
			m.settings.FetchTimeoutSeconds = sec
			return m.Save()
		},
	},
}

// GetValue 按名称读取设置项
func (m *Manager) GetValue(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", fmt.Errorf("未知的设置项: %s", key)
	}
	return cast.ToString(a.get(m.settings)), nil
}

// SetValue 按名称修改设置项并保存
func (m *Manager) SetValue(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return fmt.Errorf("未知的设置项: %s", key)
	}
	return a.set(m, value)
}
