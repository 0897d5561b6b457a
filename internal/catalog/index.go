package catalog

import "github.com/HFBDGD/prompt-copilot/internal/utils"

// Index 模组库名称到地址的映射，保持目录中的顺序
type Index = utils.OrderedMap[string]

// DefaultLanguage 没有专属目录的语言使用该语言的目录
const DefaultLanguage = "zh"

// 缓存键前缀，ClearCache 只删除这两类
const (
	IndexKeyPrefix   = "index_"
	LibraryKeyPrefix = "library_"
)

// DefaultIndexURLs 各语言的远程目录
var DefaultIndexURLs = map[string]string{
	"zh": "https://gist.githubusercontent.com/weihua-studio/051d3a6a6a50ef1690166b9502212c5e/raw/1562b13f01211aba547b6c2f503676f2cf1ea6b1/library_index.json",
	"en": "https://gist.githubusercontent.com/weihua-studio/07ca630b76a6e93f26367df8112c248f/raw/2434214848fc1dab76fdc36e0d7e143355acdc0c/library_index_GlobalWorld.json",
}

// 离线备用目录只有一个模组库
const FallbackLibraryName = "⚠️ Offline Backup"

const FallbackLibraryURL = "https://gist.githubusercontent.com/weihua-wang/raw/prompts.json"

// FallbackIndex 缓存和网络都不可用时的备用目录，每次返回新值
func FallbackIndex() Index {
	var idx Index
	idx.Set(FallbackLibraryName, FallbackLibraryURL)
	return idx
}

// IndexKey 目录的缓存键
func IndexKey(lang string) string {
	return IndexKeyPrefix + lang
}

// LibraryKey 模组库的缓存键
func LibraryKey(locator string) string {
	return LibraryKeyPrefix + locator
}
