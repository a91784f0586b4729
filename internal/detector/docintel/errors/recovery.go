package errors

import (
	"fmt"
	"runtime/debug"
)

// RecoveryHandler panic 恢复处理器
type RecoveryHandler func(recovered interface{}, stack []byte) error

// DefaultRecoveryHandler 默认恢复处理器
func DefaultRecoveryHandler(recovered interface{}, stack []byte) error {
	return New(ErrInternal, fmt.Sprintf("panic: %v", recovered)).
		WithLevel(LevelFatal).
		AddExtra("stack", string(stack))
}

// SafeExecute 安全执行函数（带 panic 恢复）
func SafeExecute(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = DefaultRecoveryHandler(r, debug.Stack())
		}
	}()
	return fn()
}

// SafeExecuteWithResult 安全执行带返回值的函数
func SafeExecuteWithResult[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = DefaultRecoveryHandler(r, debug.Stack())
		}
	}()
	return fn()
}

// RetryConfig 重试配置
type RetryConfig struct {
	MaxAttempts int              // 最大尝试次数
	ShouldRetry func(error) bool // 判断是否应该重试
}

// DefaultRetryConfig 默认重试配置
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 2,
		ShouldRetry: IsRecoverable,
	}
}

// RetryWithResult 重试执行带返回值的函数
func RetryWithResult[T any](fn func() (T, error), config *RetryConfig) (T, error) {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	var lastErr error
	var zero T
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		result, err := SafeExecuteWithResult(fn)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if config.ShouldRetry == nil || !config.ShouldRetry(err) {
			return zero, err
		}
	}

	return zero, WrapError(lastErr, ErrUnknown,
		fmt.Sprintf("failed after %d attempts", config.MaxAttempts))
}
