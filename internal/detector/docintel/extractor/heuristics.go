package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"docIntelligence/internal/detector/docintel/rules"
)

// document 一次提取所需的各种文本视图
type document struct {
	raw     string   // NFKC 规范化后的原文
	idText  string   // 证件号匹配文本
	field   string   // 字段匹配文本
	lines   []string // field 按行切分（去空行）
	rawLine []string // raw 按行切分（去空行）
}

func newDocument(text string) *document {
	d := &document{
		raw:    rules.NormalizeOCR(text),
		idText: rules.IdentifierText(text),
		field:  rules.FieldText(text),
	}
	d.lines = rules.Lines(d.field)
	d.rawLine = rules.Lines(d.raw)
	return d
}

// 签发 / 有效期相关行，出生日期兜底时跳过
var nonBirthDateWords = []string{"issue", "doi", "valid", "expiry", "exp"}

// ============================================================
// 标识符
// ============================================================

// findIdentifier 返回第一个匹配并折叠空白
func findIdentifier(p *rules.Pattern, text string) string {
	return rules.CollapseSpace(p.FindString(text))
}

// ============================================================
// 姓名
// ============================================================

// findName 标签行 > 下一行 > 前 8 行兜底
func (d *document) findName(exclusions ...string) string {
	for i, line := range d.lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "name") || rules.ContainsAny(lower, exclusions) {
			continue
		}
		if strings.Contains(line, ":") {
			if part := rules.AfterColon(line); utf8.RuneCountInString(part) > 2 {
				return part
			}
		} else if i+1 < len(d.lines) {
			next := d.lines[i+1]
			if utf8.RuneCountInString(next) > 2 && !hasDigit(next) {
				return next
			}
		}
		// 只看第一个标签行
		break
	}
	return d.fallbackName()
}

// fallbackName 前 8 行中第一个 5-39 字符的纯字母行，标题格式
func (d *document) fallbackName() string {
	limit := len(d.lines)
	if limit > 8 {
		limit = 8
	}
	for _, line := range d.lines[:limit] {
		n := utf8.RuneCountInString(line)
		if n <= 4 || n >= 40 || !isLettersAndSpaces(line) {
			continue
		}
		return rules.TitleCase(line)
	}
	return ""
}

// ============================================================
// 地址 / 亲属
// ============================================================

// findAddress 触发行与其后最多 2 个非空行以逗号连接
// 含 "address" 的标签行优先于 s/o、c/o 等亲属触发词，标签本身不计入地址
func (d *document) findAddress(triggers ...string) string {
	if len(triggers) == 0 {
		triggers = rules.AddressTriggers
	}
	start := -1
	for i, line := range d.lines {
		if strings.Contains(strings.ToLower(line), "address") {
			start = i
			break
		}
	}
	if start < 0 {
		for i, line := range d.lines {
			if rules.ContainsAny(line, triggers) {
				start = i
				break
			}
		}
	}
	if start < 0 {
		return ""
	}

	parts := make([]string, 0, 3)
	first := d.lines[start]
	if lower := strings.ToLower(first); strings.Contains(first, ":") && strings.Contains(lower, "address") {
		first = rules.AfterColon(first)
	} else if strings.HasSuffix(lower, "address") {
		first = ""
	}
	if first != "" {
		parts = append(parts, first)
	}
	end := start + 2
	if end >= len(d.lines) {
		end = len(d.lines) - 1
	}
	parts = append(parts, d.lines[start+1:end+1]...)
	return strings.Join(parts, ", ")
}

// findRelative 亲属姓名：冒号后内容，否则取下一行
func (d *document) findRelative(keywords ...string) string {
	for i, line := range d.lines {
		if !rules.ContainsAny(line, keywords) {
			continue
		}
		if strings.Contains(line, ":") {
			if part := rules.AfterColon(line); utf8.RuneCountInString(part) > 2 {
				return part
			}
			continue
		}
		if i+1 < len(d.lines) {
			next := d.lines[i+1]
			if utf8.RuneCountInString(next) > 2 && isLettersAndSpaces(next) {
				return next
			}
		}
	}
	return ""
}

// findLabelled 标签行的冒号后内容，无冒号时取下一行
func (d *document) findLabelled(labels ...string) string {
	for i, line := range d.lines {
		if !rules.ContainsAny(line, labels) {
			continue
		}
		if strings.Contains(line, ":") {
			return rules.AfterColon(line)
		}
		if i+1 < len(d.lines) {
			return d.lines[i+1]
		}
	}
	return ""
}

// ============================================================
// 日期
// ============================================================

// findDOB 优先取出生日期标签行上的日期，其次取第一个非签发 / 有效期日期
func (d *document) findDOB() string {
	for _, line := range d.lines {
		if rules.ContainsAny(line, rules.DOBTriggers) {
			if m := rules.DatePattern.FindString(line); m != "" {
				return m
			}
		}
	}
	for _, line := range d.lines {
		if rules.ContainsAny(line, nonBirthDateWords) {
			continue
		}
		if m := rules.DatePattern.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

// findDate 用带捕获组的模式在字段文本中取日期
func (d *document) findDate(p *rules.Pattern) string {
	return p.FindSubmatch(d.field)
}

// ============================================================
// 辅助函数
// ============================================================

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isLettersAndSpaces(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// firstWithDigit 返回第一个包含数字的匹配
func firstWithDigit(re *regexp.Regexp, text string) string {
	for _, m := range re.FindAllString(text, -1) {
		if hasDigit(m) {
			return m
		}
	}
	return ""
}
