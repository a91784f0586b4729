package extractor

import (
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// LicenseExtractor 驾照字段提取
type LicenseExtractor struct {
	base
}

// NewLicenseExtractor 创建驾照提取器
func NewLicenseExtractor() *LicenseExtractor {
	return &LicenseExtractor{base{
		docType: model.DrivingLicense,
		fields: []fieldDef{
			masked("DL_Number", "DL Number", model.KindLicenseNumber),
			masked("Name", "Name", model.KindPersonName),
			masked("DOB", "DOB", model.KindDateDMY),
			plain("Issue_Date", "Issue Date"),
			plain("Expiry_Date", "Expiry Date"),
			plain("Blood_Group", "Blood Group"),
			masked("Address", "Address", model.KindFreeformAddress),
		},
	}}
}

// Extract 提取驾照字段
func (e *LicenseExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	number := findIdentifier(rules.DLNumberPattern, d.idText)
	if number == "" {
		number = findIdentifier(rules.DLCompactPattern, d.idText)
	}
	fields.Set("DL_Number", number)
	fields.Set("Name", d.findName("father"))
	fields.Set("DOB", d.findDOB())
	fields.Set("Issue_Date", d.findDate(rules.IssueDatePattern))
	fields.Set("Expiry_Date", d.findDate(rules.ExpiryDatePattern))
	fields.Set("Blood_Group", d.bloodGroup())
	fields.Set("Address", d.findAddress())

	return e.finish(fields, redact)
}

// bloodGroup 优先在血型标签行上查找
func (d *document) bloodGroup() string {
	for _, line := range d.rawLine {
		if rules.ContainsAny(line, []string{"blood", "b.g"}) {
			if g := rules.ExtractBloodGroup(line); g != "" {
				return g
			}
		}
	}
	return rules.ExtractBloodGroup(d.raw)
}
