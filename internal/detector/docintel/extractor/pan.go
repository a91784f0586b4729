package extractor

import (
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// PanExtractor PAN 卡字段提取
type PanExtractor struct {
	base
}

// NewPanExtractor 创建 PAN 提取器
func NewPanExtractor() *PanExtractor {
	return &PanExtractor{base{
		docType: model.PanCard,
		fields: []fieldDef{
			masked("PAN_Number", "PAN Number", model.KindIdentifier10Alnum),
			masked("Name", "Name", model.KindPersonName),
			masked("Father_Name", "Father's Name", model.KindPersonName),
			masked("DOB", "Date of Birth", model.KindDateDMY),
		},
	}}
}

// Extract 提取 PAN 字段
func (e *PanExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	// PAN 含字母位，不做 O→0 修正
	fields.Set("PAN_Number", findIdentifier(rules.PanNumberPattern, d.idText))
	fields.Set("Name", d.findName("father"))
	fields.Set("Father_Name", d.findRelative("father"))
	fields.Set("DOB", d.findDOB())

	return e.finish(fields, redact)
}
