package extractor

import (
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// VoterExtractor 选民卡字段提取
type VoterExtractor struct {
	base
}

// NewVoterExtractor 创建选民卡提取器
func NewVoterExtractor() *VoterExtractor {
	return &VoterExtractor{base{
		docType: model.VoterId,
		fields: []fieldDef{
			masked("Voter_ID", "Voter ID", model.KindVoterEpic),
			masked("Name", "Name", model.KindPersonName),
			masked("Father_Name", "Father's Name", model.KindPersonName),
			masked("DOB", "DOB", model.KindDateDMY),
			masked("Address", "Address", model.KindFreeformAddress),
		},
	}}
}

// Extract 提取选民卡字段
func (e *VoterExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	epic := findIdentifier(rules.VoterEpicPattern, d.idText)
	if epic == "" {
		epic = findIdentifier(rules.VoterEpicLoosePattern, d.idText)
	}
	fields.Set("Voter_ID", epic)
	fields.Set("Name", d.findName("father", "husband"))
	fields.Set("Father_Name", d.findRelative("father", "husband"))
	fields.Set("DOB", d.findDOB())
	fields.Set("Address", d.findAddress())

	return e.finish(fields, redact)
}
