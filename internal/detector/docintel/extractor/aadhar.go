package extractor

import (
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// AadharExtractor Aadhaar 卡字段提取
type AadharExtractor struct {
	base
}

// NewAadharExtractor 创建 Aadhaar 提取器
func NewAadharExtractor() *AadharExtractor {
	return &AadharExtractor{base{
		docType: model.AadharCard,
		fields: []fieldDef{
			masked("Aadhar_Number", "Aadhar Number", model.KindIdentifier12),
			masked("Name", "Name", model.KindPersonName),
			masked("DOB", "Date of Birth", model.KindDateDMY),
			masked("Address", "Address", model.KindFreeformAddress),
		},
	}}
}

// Extract 提取 Aadhaar 字段
func (e *AadharExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	// 12 位号码允许 OCR 空格错乱，O 视为 0
	fields.Set("Aadhar_Number", findIdentifier(rules.AadharLoosePattern, rules.CorrectDigits(d.idText)))
	fields.Set("Name", d.findName("father"))
	fields.Set("DOB", d.findDOB())
	fields.Set("Address", d.findAddress())

	return e.finish(fields, redact)
}
