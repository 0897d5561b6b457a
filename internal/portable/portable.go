package portable

import (
	"os"
	"path/filepath"
)

// MarkerFile 存在于程序目录时启用便携版模式
const MarkerFile = "portable.ini"

// DataDirName 数据目录名（用户主目录或程序目录下）
const DataDirName = ".prompt-copilot"

var portableExecutableFunc = os.Executable

// IsPortableMode 检测是否为便携版模式
// 便携版模式：在程序所在目录下存在 portable.ini 文件
func IsPortableMode() bool {
	execDir, err := executableDir()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(execDir, MarkerFile))
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// GetPortableDataDir 获取便携版数据目录
// 便携版模式下，设置和缓存都放在程序所在目录下的 .prompt-copilot 子目录
func GetPortableDataDir() (string, error) {
	execDir, err := executableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(execDir, DataDirName), nil
}

func executableDir() (string, error) {
	execPath, err := portableExecutableFunc()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}
