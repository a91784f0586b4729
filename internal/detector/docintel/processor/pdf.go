package processor

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
)

// PdfProcessor 使用 ledongthuc/pdf 提取文本层
// 扫描件没有文本层，结果为空文本
type PdfProcessor struct {
	base   *BaseProcessor
	config *PdfProcessorConfig
}

// PdfProcessorConfig PDF 处理器配置
type PdfProcessorConfig struct {
	MaxFileSize int64
	MaxPages    int // 证件通常只有一两页，限制页数防止大文件拖慢
}

// DefaultPdfProcessorConfig 返回默认配置
func DefaultPdfProcessorConfig() *PdfProcessorConfig {
	return &PdfProcessorConfig{
		MaxFileSize: 50 * 1024 * 1024,
		MaxPages:    5,
	}
}

// NewPdfProcessor 创建 PDF 处理器
func NewPdfProcessor() *PdfProcessor {
	return NewPdfProcessorWithConfig(nil)
}

// NewPdfProcessorWithConfig 使用指定配置创建 PDF 处理器
func NewPdfProcessorWithConfig(config *PdfProcessorConfig) *PdfProcessor {
	if config == nil {
		config = DefaultPdfProcessorConfig()
	}
	return &PdfProcessor{
		base:   NewBaseProcessor("PdfProcessor", "PDF text layer", []string{"pdf"}),
		config: config,
	}
}

// Name 返回处理器名称
func (p *PdfProcessor) Name() string { return p.base.Name() }

// Description 返回处理器描述
func (p *PdfProcessor) Description() string { return p.base.Description() }

// SupportedTypes 返回支持的文件类型
func (p *PdfProcessor) SupportedTypes() []string { return p.base.SupportedTypes() }

// Process 逐页提取纯文本
func (p *PdfProcessor) Process(ctx context.Context, filePath string) (*Content, error) {
	if err := fileutil.ValidateFile(filePath, p.config.MaxFileSize); err != nil {
		return nil, err
	}

	// 畸形 PDF 可能让解析库 panic
	return engerrors.SafeExecuteWithResult(func() (*Content, error) {
		return p.extract(ctx, filePath)
	})
}

func (p *PdfProcessor) extract(ctx context.Context, filePath string) (*Content, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, engerrors.ProcessorError(p.Name(), filePath, "open pdf", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := total
	if p.config.MaxPages > 0 && pages > p.config.MaxPages {
		pages = p.config.MaxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := checkContext(ctx, filePath); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败不影响其他页
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return &Content{Text: sb.String(), Source: SourcePDF, Pages: total}, nil
}
