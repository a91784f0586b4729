package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TypeScore 单个文档类型的评分明细
type TypeScore struct {
	Type     DocumentType `json:"type"`
	Score    int          `json:"score"`
	Keywords []string     `json:"keywords,omitempty"` // 命中的关键词
	Patterns []string     `json:"patterns,omitempty"` // 命中的强特征模式
}

// ClassificationResult 分类结果
type ClassificationResult struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"` // 0-1
	Scores       []TypeScore  `json:"scores,omitempty"`
}

// Percent 置信度百分比（向下取整）
func (r ClassificationResult) Percent() int {
	return int(r.Confidence * 100)
}

// ScoreOf 返回指定类型的得分
func (r ClassificationResult) ScoreOf(t DocumentType) int {
	for _, s := range r.Scores {
		if s.Type == t {
			return s.Score
		}
	}
	return 0
}

// Result 单个文件的完整处理结果
type Result struct {
	ID       string `json:"id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	Source   string `json:"source"` // text / pdf / image

	Classification ClassificationResult `json:"classification"`
	RawFields      *FieldMap            `json:"-"` // 原始值不对外输出
	MaskedFields   *FieldMap            `json:"fields"`

	TokenCount        int    `json:"token_count,omitempty"`
	RedactedRegions   int    `json:"redacted_regions,omitempty"`
	RedactedImagePath string `json:"redacted_image,omitempty"`

	TextLength  int           `json:"text_length"`
	ProcessTime time.Duration `json:"process_time"`
	ProcessedAt time.Time     `json:"processed_at"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
}

// NewResult 创建处理结果
func NewResult(filePath, fileName string) *Result {
	return &Result{
		ID:          uuid.NewString(),
		FilePath:    filePath,
		FileName:    fileName,
		ProcessedAt: time.Now(),
		Success:     true,
	}
}

// SetError 设置错误
func (r *Result) SetError(err error) {
	if err == nil {
		return
	}
	r.Success = false
	r.Error = err.Error()
}

// DocumentType 分类得到的文档类型
func (r *Result) DocumentType() DocumentType {
	return r.Classification.DocumentType
}

// ToJSON 转换为 JSON
func (r *Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summary 返回单行摘要
func (r *Result) Summary() string {
	if !r.Success {
		return fmt.Sprintf("%s: failed (%s)\n", r.FileName, r.Error)
	}
	return fmt.Sprintf("%s: %s (%d%%)\n", r.FileName, r.Classification.DocumentType, r.Classification.Percent())
}

// VerboseSummary 返回包含字段明细的摘要
func (r *Result) VerboseSummary() string {
	var sb strings.Builder
	sb.WriteString(r.Summary())
	if !r.Success {
		return sb.String()
	}
	if r.MaskedFields != nil {
		for _, f := range r.MaskedFields.Fields() {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", f.Label+":", f.Display()))
		}
	}
	if r.RedactedImagePath != "" {
		sb.WriteString(fmt.Sprintf("  %-16s %s (%d regions)\n", "Redacted image:", r.RedactedImagePath, r.RedactedRegions))
	}
	sb.WriteString(fmt.Sprintf("  %-16s %v\n", "Time:", r.ProcessTime))
	return sb.String()
}
