package rules

import (
	"strings"
)

// KeywordSet 关键词集合
type KeywordSet struct {
	Name        string
	Keywords    []string
	Description string
}

// Contains 检查是否包含某个关键词（不区分大小写）
func (ks *KeywordSet) Contains(text string) bool {
	textLower := strings.ToLower(text)
	for _, kw := range ks.Keywords {
		if strings.Contains(textLower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FindAll 查找所有匹配的关键词
func (ks *KeywordSet) FindAll(text string) []string {
	var found []string
	textLower := strings.ToLower(text)
	for _, kw := range ks.Keywords {
		if strings.Contains(textLower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// CountMatches 统计匹配的关键词数量
func (ks *KeywordSet) CountMatches(text string) int {
	return len(ks.FindAll(text))
}

// ============================================================
// 分类关键词
// ============================================================

// AadharKeywords Aadhaar 卡关键词
var AadharKeywords = &KeywordSet{
	Name:        "aadhar",
	Keywords:    []string{"aadhaar", "aadhar", "uidai", "unique identification"},
	Description: "UIDAI 签发的 Aadhaar 卡",
}

// PanKeywords PAN 卡关键词
var PanKeywords = &KeywordSet{
	Name:        "pan",
	Keywords:    []string{"pan", "permanent account number", "income tax"},
	Description: "所得税部门签发的 PAN 卡",
}

// InvoiceKeywords 发票关键词
var InvoiceKeywords = &KeywordSet{
	Name:        "invoice",
	Keywords:    []string{"invoice", "bill", "gst", "gstin", "tax invoice"},
	Description: "商业发票 / 账单",
}

// DrivingLicenseKeywords 驾照关键词
var DrivingLicenseKeywords = &KeywordSet{
	Name:        "driving_license",
	Keywords:    []string{"driving license", "dl", "driving licence", "licence number"},
	Description: "驾驶执照",
}

// VoterIdKeywords 选民卡关键词
var VoterIdKeywords = &KeywordSet{
	Name:        "voter_id",
	Keywords:    []string{"voter id", "elector", "electoral", "voter identification", "epic"},
	Description: "选举委员会签发的 EPIC 选民卡",
}

// IdCardKeywords 通用工牌 / 学生证关键词
var IdCardKeywords = &KeywordSet{
	Name:        "id_card",
	Keywords:    []string{"id card", "identification card", "identity card", "employee id"},
	Description: "员工卡、学生证等通用证件",
}

// OtherKeywords 未知文档，无关键词
var OtherKeywords = &KeywordSet{
	Name:        "other",
	Description: "无法识别的文档",
}

// ============================================================
// 涂黑关键词
// ============================================================

var (
	aadharRedactKeywords  = []string{"uid", "aadhaar", "unique", "identification", "name", "address", "s/o", "c/o"}
	panRedactKeywords     = []string{"name", "father"}
	invoiceRedactKeywords = []string{"gstin", "total"}
	dlRedactKeywords      = []string{"name", "address", "s/o", "c/o", "dl", "license"}
	voterRedactKeywords   = []string{"name", "father", "husband", "address", "epic", "voter"}
	idCardRedactKeywords  = []string{"name", "employee", "id", "designation"}
)

// ============================================================
// 字段定位关键词
// ============================================================

// AddressTriggers 地址类字段的触发词
var AddressTriggers = []string{"address", "s/o", "c/o", "d/o"}

// DOBTriggers 出生日期所在行的标签
var DOBTriggers = []string{"dob", "d.o.b", "birth", "yob"}

// ContainsAny 文本（小写比较）是否包含任一关键词
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
