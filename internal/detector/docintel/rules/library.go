package rules

import (
	"regexp"
	"strings"

	"docIntelligence/internal/detector/docintel/model"
)

// StrongPatternWeight 强特征模式命中一次的分值
const StrongPatternWeight = 10

// Profile 单个文档类型的规则集
type Profile struct {
	Type           model.DocumentType
	Keywords       *KeywordSet
	StrongPatterns []*Pattern      // 分类用强特征
	RedactPatterns []*regexp.Regexp // 涂黑用模式（不区分大小写）
	RedactKeywords []string        // 涂黑用关键词（小写，子串匹配）
}

func redactPatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// 按 DocumentType 声明顺序排列
var profiles = [...]*Profile{
	model.AadharCard: {
		Type:           model.AadharCard,
		Keywords:       AadharKeywords,
		StrongPatterns: []*Pattern{AadharNumberPattern},
		RedactPatterns: redactPatterns(
			`\b\d{4}\s\d{4}\s\d{4}\b`,
			`(?:\d\s?){12}`,
			`\b\d{12}\b`,
			`\b[0-9O]{4}\s?[0-9O]{4}\s?[0-9O]{4}\b`,
		),
		RedactKeywords: aadharRedactKeywords,
	},
	model.PanCard: {
		Type:           model.PanCard,
		Keywords:       PanKeywords,
		StrongPatterns: []*Pattern{PanNumberPattern},
		RedactPatterns: redactPatterns(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`),
		RedactKeywords: panRedactKeywords,
	},
	model.Invoice: {
		Type:     model.Invoice,
		Keywords: InvoiceKeywords,
		RedactPatterns: redactPatterns(
			`\b[A-Z0-9]{15}\b`,
			`\b\d+(?:,\d{3})*(?:\.\d{2})?\b`,
		),
		RedactKeywords: invoiceRedactKeywords,
	},
	model.DrivingLicense: {
		Type:           model.DrivingLicense,
		Keywords:       DrivingLicenseKeywords,
		StrongPatterns: []*Pattern{DLNumberPattern},
		RedactPatterns: redactPatterns(
			`\b[A-Z]{2}[-\s]?\d{2}[-\s]?\d{4}[-\s]?\d{7}\b`,
			`\bDL\d{13,15}\b`,
		),
		RedactKeywords: dlRedactKeywords,
	},
	model.VoterId: {
		Type:           model.VoterId,
		Keywords:       VoterIdKeywords,
		StrongPatterns: []*Pattern{VoterEpicPattern},
		RedactPatterns: redactPatterns(`\b[A-Z]{3}\d{7}\b`),
		RedactKeywords: voterRedactKeywords,
	},
	model.GenericIdCard: {
		Type:           model.GenericIdCard,
		Keywords:       IdCardKeywords,
		StrongPatterns: []*Pattern{IdCardStrongPattern},
		RedactPatterns: redactPatterns(
			`\b(?:ID|EMP|STU)[-\s]?[A-Z0-9]{4,12}\b`,
			`\b\d{6,10}\b`,
		),
		RedactKeywords: idCardRedactKeywords,
	},
	model.Other: {
		Type:     model.Other,
		Keywords: OtherKeywords,
	},
}

// ProfileFor 返回文档类型的规则集，未知类型按 Other 处理
func ProfileFor(t model.DocumentType) *Profile {
	if !t.IsValid() {
		return profiles[model.Other]
	}
	return profiles[t]
}

// Profiles 按声明顺序返回全部规则集
func Profiles() []*Profile {
	out := make([]*Profile, len(profiles))
	copy(out, profiles[:])
	return out
}

// SensitiveToken 判断单个 OCR 词元是否需要涂黑，返回命中原因
func (p *Profile) SensitiveToken(text string) (bool, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, ""
	}
	for _, re := range p.RedactPatterns {
		if re.MatchString(text) {
			return true, "pattern:" + re.String()
		}
	}
	lower := strings.ToLower(text)
	for _, kw := range p.RedactKeywords {
		if strings.Contains(lower, kw) {
			return true, "keyword:" + kw
		}
	}
	return false, ""
}
