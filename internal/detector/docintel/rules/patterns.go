package rules

import (
	"regexp"
	"strings"
)

// Pattern 表示一个正则模式
type Pattern struct {
	Name        string         // 模式名称
	Regex       *regexp.Regexp // 编译后的正则表达式
	Description string         // 描述
	Examples    []string       // 示例
}

// Match 检查文本是否匹配该模式
func (p *Pattern) Match(text string) bool {
	return p.Regex.MatchString(text)
}

// FindString 查找第一个匹配的字符串
func (p *Pattern) FindString(text string) string {
	return p.Regex.FindString(text)
}

// FindSubmatch 返回第一个捕获组，无捕获组时返回整体匹配
func (p *Pattern) FindSubmatch(text string) string {
	m := p.Regex.FindStringSubmatch(text)
	switch {
	case m == nil:
		return ""
	case len(m) > 1:
		return m[1]
	default:
		return m[0]
	}
}

// FindAllString 查找所有匹配的字符串
func (p *Pattern) FindAllString(text string, n int) []string {
	return p.Regex.FindAllString(text, n)
}

func newPattern(name, expr, desc string, examples ...string) *Pattern {
	return &Pattern{
		Name:        name,
		Regex:       regexp.MustCompile(expr),
		Description: desc,
		Examples:    examples,
	}
}

// ============================================================
// 强特征模式（命中一次 +10 分）
// ============================================================

// PanNumberPattern PAN 号：5 字母 + 4 数字 + 1 字母
var PanNumberPattern = newPattern("pan_number",
	`\b[A-Z]{5}[0-9]{4}[A-Z]\b`,
	"PAN 号", "ABCDE1234F")

// AadharNumberPattern 12 位 Aadhaar 号（4-4-4 分组或连续）
var AadharNumberPattern = newPattern("aadhar_number",
	`\b(?:\d{4}\s\d{4}\s\d{4}|\d{12})\b`,
	"Aadhaar 号", "1234 5678 9012", "123456789012")

// DLNumberPattern 驾照号：2 字母州代码 + 2 位 RTO + 4 位年份 + 7 位序号
var DLNumberPattern = newPattern("dl_number",
	`(?i)\b[A-Z]{2}[-\s]?\d{2}[-\s]?\d{4}[-\s]?\d{7}\b`,
	"驾照号", "MH12 2011 0012345", "KA-01-2015-1234567")

// DLCompactPattern 无分隔的 DL 开头驾照号
var DLCompactPattern = newPattern("dl_compact",
	`(?i)\bDL\d{13,15}\b`,
	"紧凑格式驾照号", "DL0420110149646")

// VoterEpicPattern 选民卡 EPIC 号：3 字母 + 7 数字
var VoterEpicPattern = newPattern("voter_epic",
	`\b[A-Z]{3}\d{7}\b`,
	"EPIC 号", "ABC1234567")

// VoterEpicLoosePattern 中间带分隔符的 EPIC 号
var VoterEpicLoosePattern = newPattern("voter_epic_loose",
	`\b[A-Z]{3}[/\-]?\d{7}\b`,
	"带分隔符的 EPIC 号", "ABC/1234567")

// IdCardStrongPattern 工号 / 学号
var IdCardStrongPattern = newPattern("id_card_number",
	`(?i)\b(?:ID|EMP|STU)\d{6,}\b`,
	"工号或学号", "EMP123456")

// ============================================================
// 字段提取模式
// ============================================================

// DatePattern 共享日期模式 DD[/-.]MM[/-.]YYYY，不校验日月组合
var DatePattern = newPattern("date_dmy",
	`\b(0?[1-9]|[12][0-9]|3[01])[/\-.](0?[1-9]|1[012])[/\-.](19|20)\d\d\b`,
	"日-月-年日期", "15/08/1990", "01-01-2001")

// AadharLoosePattern OCR 分隔错乱时的 12 位数字
var AadharLoosePattern = newPattern("aadhar_loose",
	`\b(?:\d\s?){12}\b`,
	"空格错乱的 12 位数字", "1234 56789012")

// IdCardNumberPattern 带前缀的证件号（前缀与号码不跨行）
var IdCardNumberPattern = newPattern("id_card_prefixed",
	`(?i)\b(?:ID|EMP|STU|CARD)[- \t]?[A-Z0-9]{4,12}\b`,
	"带 ID/EMP/STU/CARD 前缀的证件号", "EMP-20231", "ID 98765")

// IdCardDigitsPattern 6-10 位纯数字证件号
var IdCardDigitsPattern = newPattern("id_card_digits",
	`\b\d{6,10}\b`,
	"6-10 位数字证件号", "1234567890")

// InvoiceNumberPattern 发票号（同一行内，必须包含数字）
var InvoiceNumberPattern = newPattern("invoice_number",
	`(?i)(?:invoice|bill)[ \t]*(?:no\.?|number|#)?[ \t]*:?[ \t]*([A-Z0-9\-/]*\d[A-Z0-9\-/]*)`,
	"发票号", "Invoice No: INV-2024-001")

// TotalAmountPattern 合计金额
var TotalAmountPattern = newPattern("total_amount",
	`(?i)total[ \t]*(?:amount)?[ \t]*:?[ \t]*(?:rs\.?|inr|₹|\$)?[ \t]*(\d+(?:,\d{2,3})*(?:\.\d{2})?)`,
	"合计金额", "Total: ₹1,180.00")

// InvoiceDatePattern 发票日期
var InvoiceDatePattern = newPattern("invoice_date",
	`(?i)date[ \t]*:?[ \t]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
	"发票日期", "Date: 12/03/2024")

// GSTNumberPattern GSTIN
var GSTNumberPattern = newPattern("gst_number",
	`(?i)(?:gstin|gst)[ \t]*(?:no\.?|number)?[ \t]*:?[ \t]*([A-Z0-9]{15})\b`,
	"GSTIN", "GSTIN: 27ABCDE1234F1Z5")

// OrganizationPattern 公司名后缀
var OrganizationPattern = newPattern("organization",
	`(?i)\b(?:Pvt\.?\s*Ltd\.?|Private\s+Limited|Ltd\.?|Limited|LLP|LLC|Inc\.?|Corp\.?|Corporation|Enterprises|Traders)\b`,
	"公司名后缀", "Acme Traders Pvt Ltd")

// IssueDatePattern 签发日期
var IssueDatePattern = newPattern("issue_date",
	`(?i)(?:issue|issued|doi)[ \t]*(?:date|on)?[ \t]*:?[ \t]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
	"签发日期", "DOI: 01/02/2015")

// ExpiryDatePattern 有效期
var ExpiryDatePattern = newPattern("expiry_date",
	`(?i)(?:valid|validity|expiry|exp)[ \t]*(?:till|upto|until|date)?[ \t]*:?[ \t]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
	"有效期", "Valid Till: 31/01/2035")

// BloodGroupPattern 血型
var BloodGroupPattern = newPattern("blood_group",
	`(?im)(?:^|[\s:])(AB|A|B|O)[ \t]?([+-])(?:ve)?(?:[\s,.]|$)`,
	"血型", "B+", "O -ve")

// ============================================================
// 辅助函数
// ============================================================

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseSpace 折叠连续空白为单个空格并去除首尾空白
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ExtractBloodGroup 提取血型，如 "B+"
func ExtractBloodGroup(text string) string {
	m := BloodGroupPattern.Regex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1]) + m[2]
}
