package extractor

import (
	"docIntelligence/internal/detector/docintel/model"
)

// OtherExtractor 未识别文档，无字段
type OtherExtractor struct {
	base
}

// NewOtherExtractor 创建空提取器
func NewOtherExtractor() *OtherExtractor {
	return &OtherExtractor{base{docType: model.Other}}
}

// Extract 返回空字段表
func (e *OtherExtractor) Extract(string, bool) *model.FieldMap {
	return e.newMap()
}
