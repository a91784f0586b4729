package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorLevel 错误级别
type ErrorLevel int

const (
	LevelInfo    ErrorLevel = iota // 信息
	LevelWarning                   // 警告
	LevelError                     // 错误
	LevelFatal                     // 致命错误
)

// String 返回错误级别的字符串表示
func (l ErrorLevel) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ErrorCode 错误代码
type ErrorCode int

const (
	// 通用错误 (1000-1999)
	ErrUnknown      ErrorCode = 1000
	ErrInvalidInput ErrorCode = 1001
	ErrTimeout      ErrorCode = 1002
	ErrCancelled    ErrorCode = 1003
	ErrNotSupported ErrorCode = 1004
	ErrInternal     ErrorCode = 1005

	// 文件错误 (2000-2999)
	ErrFileNotFound    ErrorCode = 2000
	ErrFileEmpty       ErrorCode = 2001
	ErrFileTooLarge    ErrorCode = 2002
	ErrFileReadFailed  ErrorCode = 2003
	ErrFileWriteFailed ErrorCode = 2004
	ErrFileFormat      ErrorCode = 2005

	// 处理器 / OCR 错误 (3000-3999)
	ErrProcessorNotFound ErrorCode = 3000
	ErrProcessorFailed   ErrorCode = 3001
	ErrExtractionFailed  ErrorCode = 3003
	ErrEncodingFailed    ErrorCode = 3005
	ErrOCRUnavailable    ErrorCode = 3006
	ErrOCRFailed         ErrorCode = 3007

	// 配置错误 (4000-4999)
	ErrConfigNotFound ErrorCode = 4000
	ErrConfigInvalid  ErrorCode = 4001
	ErrConfigValue    ErrorCode = 4003

	// 引擎 / 图像错误 (5000-5999)
	ErrEngineFailed ErrorCode = 5000
	ErrNoContent    ErrorCode = 5001
	ErrImageLoad    ErrorCode = 5002
	ErrImageEncode  ErrorCode = 5003
	ErrReportFailed ErrorCode = 5004
)

// 错误代码描述映射
var errorDescriptions = map[ErrorCode]string{
	ErrUnknown:      "unknown error",
	ErrInvalidInput: "invalid input",
	ErrTimeout:      "operation timed out",
	ErrCancelled:    "operation cancelled",
	ErrNotSupported: "operation not supported",
	ErrInternal:     "internal error",

	ErrFileNotFound:    "file not found",
	ErrFileEmpty:       "file is empty",
	ErrFileTooLarge:    "file too large",
	ErrFileReadFailed:  "failed to read file",
	ErrFileWriteFailed: "failed to write file",
	ErrFileFormat:      "unsupported file format",

	ErrProcessorNotFound: "no processor for file type",
	ErrProcessorFailed:   "processor failed",
	ErrExtractionFailed:  "text extraction failed",
	ErrEncodingFailed:    "text decoding failed",
	ErrOCRUnavailable:    "OCR engine unavailable",
	ErrOCRFailed:         "OCR failed",

	ErrConfigNotFound: "config file not found",
	ErrConfigInvalid:  "invalid config file",
	ErrConfigValue:    "invalid config value",

	ErrEngineFailed: "document processing failed",
	ErrNoContent:    "no text content",
	ErrImageLoad:    "failed to load image",
	ErrImageEncode:  "failed to encode image",
	ErrReportFailed: "failed to write report",
}

// Description 返回错误代码的描述
func (c ErrorCode) Description() string {
	if desc, ok := errorDescriptions[c]; ok {
		return desc
	}
	return errorDescriptions[ErrUnknown]
}

// EngineError 引擎错误
type EngineError struct {
	Code      ErrorCode         // 错误代码
	Level     ErrorLevel        // 错误级别
	Message   string            // 错误消息
	Component string            // 组件名称
	FilePath  string            // 相关文件路径
	Operation string            // 操作名称
	Cause     error             // 原始错误
	Timestamp time.Time         // 发生时间
	Extra     map[string]string // 额外信息
}

// New 创建引擎错误
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:      code,
		Level:     LevelError,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Error 实现 error 接口
func (e *EngineError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", e.Level.String()))

	if e.Component != "" {
		sb.WriteString(fmt.Sprintf("[%s] ", e.Component))
	}

	sb.WriteString(e.Message)

	if e.FilePath != "" {
		sb.WriteString(fmt.Sprintf(" (file: %s)", e.FilePath))
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return sb.String()
}

// Unwrap 返回原始错误
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is 按错误代码比较，支持 errors.Is(err, errors.New(ErrImageLoad, ""))
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithLevel 设置错误级别
func (e *EngineError) WithLevel(level ErrorLevel) *EngineError {
	e.Level = level
	return e
}

// WithComponent 设置组件名称
func (e *EngineError) WithComponent(component string) *EngineError {
	e.Component = component
	return e
}

// WithFile 设置相关文件
func (e *EngineError) WithFile(filePath string) *EngineError {
	e.FilePath = filePath
	return e
}

// WithOperation 设置操作名称
func (e *EngineError) WithOperation(operation string) *EngineError {
	e.Operation = operation
	return e
}

// WithCause 设置原始错误
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// AddExtra 添加额外信息
func (e *EngineError) AddExtra(key, value string) *EngineError {
	if e.Extra == nil {
		e.Extra = make(map[string]string)
	}
	e.Extra[key] = value
	return e
}

// IsWarning 是否是警告
func (e *EngineError) IsWarning() bool {
	return e.Level == LevelWarning
}

// IsFatal 是否是致命错误
func (e *EngineError) IsFatal() bool {
	return e.Level == LevelFatal
}

// UserMessage 返回用户友好的错误消息
func (e *EngineError) UserMessage() string {
	var sb strings.Builder
	sb.WriteString(e.Code.Description())
	if e.Message != "" && e.Message != e.Code.Description() {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if s := e.suggestion(); s != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(s)
	}
	return sb.String()
}

func (e *EngineError) suggestion() string {
	switch e.Code {
	case ErrFileNotFound:
		return "check the file path"
	case ErrFileTooLarge:
		return "raise engine.max_file_size or process a smaller file"
	case ErrFileFormat, ErrProcessorNotFound:
		return "supported inputs are images (jpg, png, bmp, tiff, webp), pdf and plain text"
	case ErrOCRUnavailable:
		return "install tesseract-ocr with the eng language pack"
	case ErrImageLoad:
		return "make sure the image is not truncated or corrupted"
	case ErrNoContent:
		return "the document contains no recognisable text"
	case ErrConfigInvalid:
		return "check the YAML syntax of the config file"
	case ErrTimeout:
		return "increase engine.timeout"
	default:
		return ""
	}
}

// ============================================================
// 便捷构造函数
// ============================================================

// FileNotFoundError 文件未找到错误
func FileNotFoundError(filePath string) *EngineError {
	return New(ErrFileNotFound, fmt.Sprintf("file does not exist: %s", filePath)).
		WithFile(filePath)
}

// FileEmptyError 文件为空错误
func FileEmptyError(filePath string) *EngineError {
	return New(ErrFileEmpty, "file is empty").WithFile(filePath)
}

// FileTooLargeError 文件过大错误
func FileTooLargeError(filePath string, size, maxSize int64) *EngineError {
	return New(ErrFileTooLarge,
		fmt.Sprintf("file size %d bytes exceeds limit %d bytes", size, maxSize)).
		WithFile(filePath).
		AddExtra("size", fmt.Sprintf("%d", size)).
		AddExtra("max_size", fmt.Sprintf("%d", maxSize))
}

// FileReadError 文件读取错误
func FileReadError(filePath string, cause error) *EngineError {
	return New(ErrFileReadFailed, "read failed").WithFile(filePath).WithCause(cause)
}

// ProcessorError 处理器错误
func ProcessorError(processor, filePath, operation string, cause error) *EngineError {
	return New(ErrProcessorFailed, fmt.Sprintf("%s failed", operation)).
		WithComponent(processor).
		WithFile(filePath).
		WithOperation(operation).
		WithCause(cause)
}

// OCRUnavailableError OCR 引擎不可用
func OCRUnavailableError(cause error) *EngineError {
	return New(ErrOCRUnavailable, "tesseract is not available").
		WithComponent("ocr").
		WithCause(cause).
		WithLevel(LevelWarning)
}

// OCRError OCR 执行失败
func OCRError(filePath string, cause error) *EngineError {
	return New(ErrOCRFailed, "text recognition failed").
		WithComponent("ocr").
		WithFile(filePath).
		WithCause(cause)
}

// ImageLoadError 图像解码失败
func ImageLoadError(filePath string, cause error) *EngineError {
	return New(ErrImageLoad, "cannot decode image").
		WithComponent("redactor").
		WithFile(filePath).
		WithCause(cause)
}

// ImageEncodeError 图像编码 / 写出失败
func ImageEncodeError(filePath string, cause error) *EngineError {
	return New(ErrImageEncode, "cannot write redacted image").
		WithComponent("redactor").
		WithFile(filePath).
		WithCause(cause)
}

// NoContentError 无内容错误
func NoContentError(filePath string) *EngineError {
	return New(ErrNoContent, "no text could be extracted").
		WithFile(filePath).
		WithLevel(LevelWarning)
}

// ConfigError 配置错误
func ConfigError(configPath, message string, cause error) *EngineError {
	return New(ErrConfigInvalid, message).WithFile(configPath).WithCause(cause)
}

// TimeoutError 超时错误
func TimeoutError(filePath string, timeout time.Duration) *EngineError {
	return New(ErrTimeout, fmt.Sprintf("processing exceeded %v", timeout)).WithFile(filePath)
}

// ============================================================
// 错误集合（用于批量处理）
// ============================================================

// ErrorCollection 错误集合
type ErrorCollection struct {
	errors   []*EngineError
	warnings []*EngineError
}

// NewErrorCollection 创建错误集合
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

// Add 添加错误
func (c *ErrorCollection) Add(err error) {
	if err == nil {
		return
	}
	e := AsEngineError(err)
	if e.IsWarning() {
		c.warnings = append(c.warnings, e)
	} else {
		c.errors = append(c.errors, e)
	}
}

// HasErrors 是否有错误
func (c *ErrorCollection) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors 返回所有错误
func (c *ErrorCollection) Errors() []*EngineError {
	return c.errors
}

// Warnings 返回所有警告
func (c *ErrorCollection) Warnings() []*EngineError {
	return c.warnings
}

// Summary 返回摘要
func (c *ErrorCollection) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings", len(c.errors), len(c.warnings))
}

// ============================================================
// 错误判断辅助函数
// ============================================================

// AsEngineError 转换为 EngineError，普通错误包装为 ErrUnknown
func AsEngineError(err error) *EngineError {
	if err == nil {
		return nil
	}
	var e *EngineError
	if stderrors.As(err, &e) {
		return e
	}
	return New(ErrUnknown, err.Error()).WithCause(err)
}

// GetErrorCode 获取错误代码
func GetErrorCode(err error) ErrorCode {
	var e *EngineError
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// HasCode 错误链中是否包含指定代码
func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}

// IsRecoverable 错误是否可恢复
func IsRecoverable(err error) bool {
	var e *EngineError
	if !stderrors.As(err, &e) || e.IsFatal() {
		return false
	}
	switch e.Code {
	case ErrOCRFailed, ErrTimeout, ErrProcessorFailed:
		return true
	}
	return false
}

// WrapError 包装标准错误为 EngineError
func WrapError(err error, code ErrorCode, message string) *EngineError {
	if err == nil {
		return nil
	}
	var e *EngineError
	if stderrors.As(err, &e) {
		if message != "" {
			e.Message = message + ": " + e.Message
		}
		return e
	}
	return New(code, message).WithCause(err)
}
