// Package report 把处理结果汇总为 JSON 或 XLSX 报告
// 报告只包含脱敏后的字段值
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
)

// 报告格式
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Writer 报告写出接口
type Writer interface {
	Format() string
	Write(w io.Writer, results []*model.Result) error
}

// NewWriter 按格式名创建写出器
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case FormatJSON:
		return &JSONWriter{Indent: true}, nil
	case FormatXLSX, "excel":
		return &XLSXWriter{}, nil
	}
	return nil, engerrors.New(engerrors.ErrNotSupported, fmt.Sprintf("unknown report format %q", format)).
		WithComponent("report")
}

// FormatFromPath 根据扩展名推断格式，未知时为 json
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatJSON
}

// WriteFile 写出报告文件，format 为空时按扩展名推断
func WriteFile(path, format string, results []*model.Result) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	w, err := NewWriter(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return reportError(path, err)
	}
	bw := bufio.NewWriter(f)
	err = w.Write(bw, results)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return reportError(path, err)
	}
	return nil
}

func reportError(path string, cause error) *engerrors.EngineError {
	return engerrors.New(engerrors.ErrReportFailed, "cannot write report").
		WithComponent("report").
		WithFile(path).
		WithCause(cause)
}

// ============================================================
// 汇总
// ============================================================

// Summary 批量处理汇总
type Summary struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	ByType      map[string]int `json:"by_type"`
	Redacted    int            `json:"redacted_images"`
	TotalTimeMs int64          `json:"total_time_ms"`
}

// Summarize 统计结果
func Summarize(results []*model.Result) Summary {
	s := Summary{
		GeneratedAt: time.Now(),
		ByType:      make(map[string]int),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		s.TotalTimeMs += r.ProcessTime.Milliseconds()
		if !r.Success {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.ByType[r.DocumentType().String()]++
		if r.RedactedImagePath != "" {
			s.Redacted++
		}
	}
	return s
}

// TypeNames 按名称排序的类型列表
func (s Summary) TypeNames() []string {
	names := make([]string, 0, len(s.ByType))
	for n := range s.ByType {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ============================================================
// JSON
// ============================================================

// JSONWriter JSON 报告
type JSONWriter struct {
	Indent bool
}

type jsonReport struct {
	Summary   Summary         `json:"summary"`
	Documents []*model.Result `json:"documents"`
}

// Format 格式名
func (w *JSONWriter) Format() string { return FormatJSON }

// Write 写出 JSON
func (w *JSONWriter) Write(out io.Writer, results []*model.Result) error {
	docs := make([]*model.Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			docs = append(docs, r)
		}
	}
	enc := json.NewEncoder(out)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonReport{Summary: Summarize(docs), Documents: docs})
}
