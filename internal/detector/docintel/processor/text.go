package processor

import (
	"context"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
)

// TextProcessor 纯文本处理器（已有 OCR 结果的文本文件）
type TextProcessor struct {
	base   *BaseProcessor
	config *TextProcessorConfig
}

// TextProcessorConfig 文本处理器配置
type TextProcessorConfig struct {
	MaxFileSize int64 // 最大文件大小 (字节)，0 表示不限制
}

// DefaultTextProcessorConfig 返回默认配置
func DefaultTextProcessorConfig() *TextProcessorConfig {
	return &TextProcessorConfig{
		MaxFileSize: 10 * 1024 * 1024,
	}
}

// NewTextProcessor 创建文本处理器
func NewTextProcessor() *TextProcessor {
	return NewTextProcessorWithConfig(nil)
}

// NewTextProcessorWithConfig 使用指定配置创建文本处理器
func NewTextProcessorWithConfig(config *TextProcessorConfig) *TextProcessor {
	if config == nil {
		config = DefaultTextProcessorConfig()
	}
	return &TextProcessor{
		base:   NewBaseProcessor("TextProcessor", "plain text (UTF-8 / UTF-16)", []string{"txt", "text"}),
		config: config,
	}
}

// Name 返回处理器名称
func (p *TextProcessor) Name() string { return p.base.Name() }

// Description 返回处理器描述
func (p *TextProcessor) Description() string { return p.base.Description() }

// SupportedTypes 返回支持的文件类型
func (p *TextProcessor) SupportedTypes() []string { return p.base.SupportedTypes() }

// Process 读取并解码文本文件
func (p *TextProcessor) Process(ctx context.Context, filePath string) (*Content, error) {
	if err := checkContext(ctx, filePath); err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileSafe(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}

	text, err := DecodeText(data)
	if err != nil {
		return nil, engerrors.New(engerrors.ErrEncodingFailed, "cannot decode text").
			WithComponent(p.Name()).
			WithFile(filePath).
			WithCause(err)
	}

	return &Content{Text: text, Source: SourceText}, nil
}

// DecodeText 按 BOM 解码 UTF-8 / UTF-16，无 BOM 时按 UTF-8 处理
// 非法字节替换为 U+FFFD，NUL 字符被移除
func DecodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(string(out), "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}
