package extractor

import (
	"regexp"
	"strings"

	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// IdCardExtractor 通用证件（工牌 / 学生证）字段提取
type IdCardExtractor struct {
	base
}

// NewIdCardExtractor 创建通用证件提取器
func NewIdCardExtractor() *IdCardExtractor {
	return &IdCardExtractor{base{
		docType: model.GenericIdCard,
		fields: []fieldDef{
			masked("ID_Number", "ID Number", model.KindGenericId),
			masked("Name", "Name", model.KindPersonName),
			masked("DOB", "DOB", model.KindDateDMY),
			plain("Designation", "Designation"),
			plain("Department", "Department"),
			plain("Organization", "Organization"),
			plain("Issue_Date", "Issue Date"),
			plain("Expiry_Date", "Expiry Date"),
		},
	}}
}

var (
	organizationWords = []string{"company", "organization", "organisation", "institute", "university", "college"}
	// 前缀后紧跟另一个完整证件号时，如 "ID EMP123456"
	nestedIdNumber = regexp.MustCompile(`(?i)^(?:ID|EMP|STU|CARD)[A-Z0-9]{4,12}$`)
)

// Extract 提取通用证件字段
func (e *IdCardExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	fields.Set("ID_Number", idNumber(d.idText))
	fields.Set("Name", d.findName("company", "father"))
	fields.Set("DOB", d.findDOB())
	fields.Set("Designation", d.findLabelled("designation", "position"))
	fields.Set("Department", d.findLabelled("department", "dept"))
	fields.Set("Organization", d.organization())
	fields.Set("Issue_Date", d.findDate(rules.IssueDatePattern))
	fields.Set("Expiry_Date", d.findDate(rules.ExpiryDatePattern))

	return e.finish(fields, redact)
}

// idNumber 带前缀的号码优先，其次 6-10 位纯数字
func idNumber(text string) string {
	if m := firstWithDigit(rules.IdCardNumberPattern.Regex, text); m != "" {
		m = rules.CollapseSpace(m)
		if i := strings.IndexAny(m, " -"); i > 0 && nestedIdNumber.MatchString(m[i+1:]) {
			return m[i+1:]
		}
		return m
	}
	return findIdentifier(rules.IdCardDigitsPattern, rules.CorrectDigits(text))
}

// organization 机构名：冒号后内容，否则整行
func (d *document) organization() string {
	for _, line := range d.lines {
		if !rules.ContainsAny(line, organizationWords) {
			continue
		}
		if strings.Contains(line, ":") {
			return rules.AfterColon(line)
		}
		return line
	}
	return ""
}
