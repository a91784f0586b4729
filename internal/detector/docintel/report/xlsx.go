package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docIntelligence/internal/detector/docintel/model"
)

// 工作表名称
const (
	SheetDocuments = "Documents"
	SheetFields    = "Fields"
)

var documentHeaders = []string{
	"File", "Document Type", "Confidence (%)", "Source", "Fields Found",
	"Redacted Image", "Regions", "Time (ms)", "Status", "Error",
}

var fieldHeaders = []string{"File", "Document Type", "Field", "Value"}

// XLSXWriter Excel 报告：Documents 每个文件一行，Fields 每个字段一行
type XLSXWriter struct{}

// Format 格式名
func (w *XLSXWriter) Format() string { return FormatXLSX }

// Write 写出 XLSX
func (w *XLSXWriter) Write(out io.Writer, results []*model.Result) error {
	f, err := w.Build(results)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// Build 生成工作簿
func (w *XLSXWriter) Build(results []*model.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	// 默认的 Sheet1 重命名为 Documents
	if err := f.SetSheetName("Sheet1", SheetDocuments); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetFields); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetDocuments); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := writeRow(f, SheetDocuments, 1, toAny(documentHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, SheetFields, 1, toAny(fieldHeaders)); err != nil {
		return nil, err
	}

	docRow, fieldRow := 2, 2
	for _, r := range results {
		if r == nil {
			continue
		}
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		found := 0
		if r.MaskedFields != nil {
			found = r.MaskedFields.FoundCount()
		}
		row := []any{
			r.FileName,
			r.DocumentType().String(),
			r.Classification.Percent(),
			r.Source,
			found,
			r.RedactedImagePath,
			r.RedactedRegions,
			r.ProcessTime.Milliseconds(),
			status,
			r.Error,
		}
		if err := writeRow(f, SheetDocuments, docRow, row); err != nil {
			return nil, err
		}
		docRow++

		if !r.Success || r.MaskedFields == nil {
			continue
		}
		for _, field := range r.MaskedFields.Fields() {
			row := []any{r.FileName, r.DocumentType().String(), field.Label, field.Display()}
			if err := writeRow(f, SheetFields, fieldRow, row); err != nil {
				return nil, err
			}
			fieldRow++
		}
	}

	_ = f.SetColWidth(SheetDocuments, "A", "A", 32)
	_ = f.SetColWidth(SheetDocuments, "B", "B", 18)
	_ = f.SetColWidth(SheetDocuments, "F", "F", 48)
	_ = f.SetColWidth(SheetDocuments, "J", "J", 40)
	_ = f.SetColWidth(SheetFields, "A", "A", 32)
	_ = f.SetColWidth(SheetFields, "B", "C", 18)
	_ = f.SetColWidth(SheetFields, "D", "D", 48)

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
