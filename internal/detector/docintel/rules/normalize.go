package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// 标识符文本：仅保留字母数字、空白和 : / -
	identifierNoise = regexp.MustCompile(`[^A-Za-z0-9\s:/\-]`)
	// 字段文本：额外保留 , . ' & # 以维持地址和姓名结构
	fieldNoise = regexp.MustCompile(`[^A-Za-z0-9\s:/\-,.'&#]`)
	// 行内多余空白
	inlineSpace = regexp.MustCompile(`[ \t\f\v]+`)

	titleCaser = cases.Title(language.English)
)

// NormalizeOCR 统一 OCR 文本：NFKC 规范化并统一换行符
func NormalizeOCR(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// IdentifierText 生成用于匹配证件号的清洗文本
func IdentifierText(text string) string {
	return identifierNoise.ReplaceAllString(NormalizeOCR(text), "")
}

// FieldText 生成用于姓名、地址、日期等字段的清洗文本
func FieldText(text string) string {
	return fieldNoise.ReplaceAllString(NormalizeOCR(text), "")
}

// CorrectDigits 纯数字标识符中将 OCR 误识的 O/o 修正为 0
// 仅用于数字类证件号，避免破坏姓名和 PAN 字母位
func CorrectDigits(text string) string {
	return strings.NewReplacer("O", "0", "o", "0").Replace(text)
}

// Lines 按行切分，压缩行内空白并去除空行
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(inlineSpace.ReplaceAllString(l, " "))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// TitleCase 英文标题格式
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// AfterColon 返回第一个冒号之后的内容（已去空白），无冒号返回空串
func AfterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}
