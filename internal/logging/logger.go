// Package logging 创建加载器、缓存和命令共用的 zap 日志
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志选项
type Options struct {
	// Verbose 日志级别从 warn 降到 debug
	Verbose bool
	// Output 默认 stderr
	Output io.Writer
}

// New 创建控制台格式的日志
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(out),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// Nop 丢弃所有日志
func Nop() *zap.Logger {
	return zap.NewNop()
}
