// Package extractor 按文档类型从 OCR 文本中提取结构化字段
package extractor

import (
	"docIntelligence/internal/detector/docintel/masker"
	"docIntelligence/internal/detector/docintel/model"
)

// Extractor 单一文档类型的字段提取器
type Extractor interface {
	// DocumentType 提取器负责的文档类型
	DocumentType() model.DocumentType
	// Keys 按输出顺序返回全部字段键
	Keys() []string
	// Extract 提取字段；redact 为 true 时返回脱敏值
	// 返回的字段表总是包含全部键，未找到的字段标记为 not found
	Extract(text string, redact bool) *model.FieldMap
}

// fieldDef 字段定义
type fieldDef struct {
	Key    string
	Label  string
	Kind   model.MaskingKind
	Masked bool // 是否参与脱敏
}

func masked(key, label string, kind model.MaskingKind) fieldDef {
	return fieldDef{Key: key, Label: label, Kind: kind, Masked: true}
}

func plain(key, label string) fieldDef {
	return fieldDef{Key: key, Label: label}
}

// base 各提取器共享的字段表构造与脱敏逻辑
type base struct {
	docType model.DocumentType
	fields  []fieldDef
}

func (b *base) DocumentType() model.DocumentType {
	return b.docType
}

func (b *base) Keys() []string {
	keys := make([]string, len(b.fields))
	for i, f := range b.fields {
		keys[i] = f.Key
	}
	return keys
}

// newMap 创建全部键为未找到的字段表
func (b *base) newMap() *model.FieldMap {
	specs := make([]model.FieldSpec, len(b.fields))
	for i, f := range b.fields {
		specs[i] = model.FieldSpec{Key: f.Key, Label: f.Label}
	}
	return model.NewFieldMap(specs...)
}

// finish redact 时按字段类别脱敏，不改变字段的有无
func (b *base) finish(raw *model.FieldMap, redact bool) *model.FieldMap {
	if !redact {
		return raw
	}
	kinds := make(map[string]model.MaskingKind, len(b.fields))
	for _, f := range b.fields {
		if f.Masked {
			kinds[f.Key] = f.Kind
		}
	}
	return masker.MaskFields(raw, kinds)
}

// ============================================================
// 注册表
// ============================================================

// Registry 文档类型到提取器的映射
type Registry struct {
	extractors map[model.DocumentType]Extractor
}

// NewRegistry 创建包含全部内置提取器的注册表
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[model.DocumentType]Extractor)}
	r.Register(NewAadharExtractor())
	r.Register(NewPanExtractor())
	r.Register(NewInvoiceExtractor())
	r.Register(NewLicenseExtractor())
	r.Register(NewVoterExtractor())
	r.Register(NewIdCardExtractor())
	r.Register(NewOtherExtractor())
	return r
}

// Register 注册（或替换）提取器
func (r *Registry) Register(e Extractor) {
	r.extractors[e.DocumentType()] = e
}

// Get 获取提取器，未注册的类型返回 Other 提取器
func (r *Registry) Get(t model.DocumentType) Extractor {
	if e, ok := r.extractors[t]; ok {
		return e
	}
	if e, ok := r.extractors[model.Other]; ok {
		return e
	}
	return NewOtherExtractor()
}

// Extract 按类型分派提取
func (r *Registry) Extract(t model.DocumentType, text string, redact bool) *model.FieldMap {
	return r.Get(t).Extract(text, redact)
}

var defaultRegistry = NewRegistry()

// For 从默认注册表获取提取器
func For(t model.DocumentType) Extractor {
	return defaultRegistry.Get(t)
}

// Extract 使用默认注册表提取
func Extract(t model.DocumentType, text string, redact bool) *model.FieldMap {
	return defaultRegistry.Extract(t, text, redact)
}
