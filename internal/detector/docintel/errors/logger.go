package errors

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger 引擎日志记录器，基于 slog
type Logger struct {
	mu       sync.Mutex
	slog     *slog.Logger
	level    *slog.LevelVar
	minLevel ErrorLevel
}

// LoggerOptions 日志配置
type LoggerOptions struct {
	Level  string // debug / info / warn / error
	Format string // text / json
	Output io.Writer
}

// NewLogger 创建日志记录器
func NewLogger(opts LoggerOptions) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(opts.Level))

	hopts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(opts.Output, hopts)
	} else {
		handler = slog.NewTextHandler(opts.Output, hopts)
	}
	return &Logger{
		slog:     slog.New(handler),
		level:    lv,
		minLevel: LevelInfo,
	}
}

// ParseLevel 解析日志级别
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetMinLevel 设置 Log 记录 EngineError 的最小级别
func (l *Logger) SetMinLevel(level ErrorLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// SetLevel 设置 slog 级别
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// With 返回附带固定属性的子记录器
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:     l.slog.With(args...),
		level:    l.level,
		minLevel: l.minLevel,
	}
}

// Slog 返回底层 slog.Logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Log 记录引擎错误
func (l *Logger) Log(err *EngineError) {
	if err == nil {
		return
	}
	l.mu.Lock()
	minLevel := l.minLevel
	l.mu.Unlock()
	if err.Level < minLevel {
		return
	}

	attrs := []any{"code", int(err.Code)}
	if err.Component != "" {
		attrs = append(attrs, "component", err.Component)
	}
	if err.FilePath != "" {
		attrs = append(attrs, "file", err.FilePath)
	}
	if err.Operation != "" {
		attrs = append(attrs, "operation", err.Operation)
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause.Error())
	}
	for k, v := range err.Extra {
		if k == "stack" {
			continue
		}
		attrs = append(attrs, k, v)
	}
	l.slog.Log(context.Background(), toSlogLevel(err.Level), err.Message, attrs...)
}

// LogError 记录普通错误
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	l.Log(AsEngineError(err))
}

// Debug 记录调试信息
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info 记录信息
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warning 记录警告
func (l *Logger) Warning(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error 记录错误
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func toSlogLevel(level ErrorLevel) slog.Level {
	switch level {
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// 全局默认日志记录器
var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger(LoggerOptions{Level: "info"})
)

// SetDefaultLogger 设置默认日志记录器
func SetDefaultLogger(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// GetDefaultLogger 获取默认日志记录器
func GetDefaultLogger() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
