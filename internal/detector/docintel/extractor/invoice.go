package extractor

import (
	"strings"

	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// InvoiceExtractor 发票字段提取
type InvoiceExtractor struct {
	base
}

// NewInvoiceExtractor 创建发票提取器
func NewInvoiceExtractor() *InvoiceExtractor {
	return &InvoiceExtractor{base{
		docType: model.Invoice,
		fields: []fieldDef{
			plain("Invoice_Number", "Invoice Number"),
			masked("Total_Amount", "Total Amount", model.KindCurrencyAmount),
			plain("Date", "Date"),
			masked("GST_Number", "GST Number", model.KindTaxId),
			plain("Company_Name", "Company Name"),
		},
	}}
}

// Extract 提取发票字段
// 发票需保留货币符号和 #，直接在规范化原文上匹配
func (e *InvoiceExtractor) Extract(text string, redact bool) *model.FieldMap {
	d := newDocument(text)
	fields := e.newMap()

	fields.Set("Invoice_Number", rules.InvoiceNumberPattern.FindSubmatch(d.raw))
	fields.Set("Total_Amount", lastTotal(d.raw))
	fields.Set("Date", rules.InvoiceDatePattern.FindSubmatch(d.raw))
	fields.Set("GST_Number", strings.ToUpper(rules.GSTNumberPattern.FindSubmatch(d.raw)))
	fields.Set("Company_Name", companyName(d.rawLine))

	return e.finish(fields, redact)
}

// lastTotal 取最后一个合计金额（小计在前，总计在后）
func lastTotal(text string) string {
	matches := rules.TotalAmountPattern.Regex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// companyName 第一行带公司后缀的文本
func companyName(lines []string) string {
	for _, line := range lines {
		if !rules.OrganizationPattern.Match(line) {
			continue
		}
		if strings.Contains(line, ":") {
			if part := rules.AfterColon(line); part != "" {
				return part
			}
			continue
		}
		return line
	}
	return ""
}
