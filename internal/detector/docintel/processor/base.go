// Package processor 负责把输入文件转换为可分类的文本（以及图像的 OCR 词元）
package processor

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
	"docIntelligence/internal/detector/docintel/model"
)

// ============================================================
// 基础处理器
// ============================================================

// 内容来源
const (
	SourceText  = "text"
	SourcePDF   = "pdf"
	SourceImage = "image"
)

// BaseProcessor 基础处理器
type BaseProcessor struct {
	name        string
	description string
	types       []string
}

// NewBaseProcessor 创建基础处理器
func NewBaseProcessor(name, description string, types []string) *BaseProcessor {
	normalized := make([]string, len(types))
	for i, ext := range types {
		normalized[i] = normalizeExtension(ext)
	}

	return &BaseProcessor{
		name:        name,
		description: description,
		types:       normalized,
	}
}

// Name 返回处理器名称
func (p *BaseProcessor) Name() string {
	return p.name
}

// Description 返回处理器描述
func (p *BaseProcessor) Description() string {
	return p.description
}

// SupportedTypes 返回支持的文件类型
func (p *BaseProcessor) SupportedTypes() []string {
	return p.types
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	ext = strings.TrimPrefix(ext, ".")
	return ext
}

// ============================================================
// 处理器接口定义
// ============================================================

// Processor 处理器接口
type Processor interface {
	Name() string
	Description() string
	SupportedTypes() []string
	Process(ctx context.Context, filePath string) (*Content, error)
}

// Content 处理结果
type Content struct {
	Text   string           // 提取的文本
	Source string           // text / pdf / image
	Pages  int              // PDF 页数
	Tokens []model.OcrToken // 图像 OCR 词元（仅图像）
	Width  int              // 图像尺寸（仅图像）
	Height int
}

// IsImage 内容是否来自图像
func (c *Content) IsImage() bool {
	return c.Source == SourceImage
}

// Empty 是否没有任何可用文本
func (c *Content) Empty() bool {
	return strings.TrimSpace(c.Text) == ""
}

// ============================================================
// 处理器注册表
// ============================================================

// Registry 处理器注册表
type Registry struct {
	processors map[string]Processor
	typeMap    map[string]Processor
	mu         sync.RWMutex
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]Processor),
		typeMap:    make(map[string]Processor),
	}
}

// Options 标准注册表配置
type Options struct {
	Text  *TextProcessorConfig
	Pdf   *PdfProcessorConfig
	Image *ImageProcessorConfig
	OCR   OcrEngine // 为空时使用 Tesseract
}

// NewStandardRegistry 注册文本、PDF、图像三类处理器
func NewStandardRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(NewTextProcessorWithConfig(opts.Text))
	r.Register(NewPdfProcessorWithConfig(opts.Pdf))
	engine := opts.OCR
	if engine == nil {
		engine = NewTesseractEngine(nil)
	}
	r.Register(NewImageProcessorWithConfig(engine, opts.Image))
	return r
}

// Register 注册处理器
func (r *Registry) Register(p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processors[p.Name()] = p
	for _, ext := range p.SupportedTypes() {
		r.typeMap[normalizeExtension(ext)] = p
	}
}

// Get 按名称获取处理器
func (r *Registry) Get(name string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.processors[name]
	return p, ok
}

// GetByType 根据扩展名获取处理器
func (r *Registry) GetByType(fileType string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.typeMap[normalizeExtension(fileType)]
	return p, ok
}

// Has 检查是否有指定扩展名的处理器
func (r *Registry) Has(ext string) bool {
	_, ok := r.GetByType(ext)
	return ok
}

// ForFile 按文件内容选择处理器，魔数优先，检测失败时回退到扩展名
func (r *Registry) ForFile(filePath string) (Processor, fileutil.FileType, error) {
	ft, err := fileutil.DetectFileType(filePath)
	if err != nil {
		return nil, fileutil.TypeUnknown, engerrors.FileReadError(filePath, err)
	}
	if p, ok := r.GetByType(ft.Extension); ok {
		return p, ft, nil
	}
	if p, ok := r.GetByType(filepath.Ext(filePath)); ok {
		return p, ft, nil
	}
	return nil, ft, engerrors.New(engerrors.ErrProcessorNotFound, "no processor for "+ft.String()).
		WithFile(filePath)
}

// SupportedTypes 所有支持的扩展名（排序）
func (r *Registry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.typeMap))
	for t := range r.typeMap {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// All 所有处理器（按名称排序）
func (r *Registry) All() []Processor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processors := make([]Processor, 0, len(r.processors))
	for _, p := range r.processors {
		processors = append(processors, p)
	}
	sort.Slice(processors, func(i, j int) bool {
		return processors[i].Name() < processors[j].Name()
	})
	return processors
}

// Count 处理器数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.processors)
}

// checkContext 在耗时步骤之间检查取消
func checkContext(ctx context.Context, filePath string) error {
	select {
	case <-ctx.Done():
		return engerrors.New(engerrors.ErrCancelled, "processing cancelled").
			WithFile(filePath).
			WithCause(ctx.Err())
	default:
		return nil
	}
}
