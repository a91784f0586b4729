// Package docintel 证件与票据识别引擎：分类、字段提取、脱敏与图像涂黑
package docintel

import (
	"context"
	"image"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/processor"
)

// Engine 文档识别引擎接口
// 所有方法都可以并发调用
type Engine interface {
	// Classify 对 OCR 文本分类
	Classify(text string) model.ClassificationResult

	// Extract 按类型提取字段，redact 为 true 时返回脱敏值
	Extract(t model.DocumentType, text string, redact bool) *model.FieldMap

	// Redact 在图像上涂黑敏感词元，不修改输入图像
	Redact(img image.Image, tokens []model.OcrToken, t model.DocumentType) *image.RGBA

	// ProcessText 对已有文本执行分类与提取
	ProcessText(ctx context.Context, name, text string) *model.Result

	// ProcessFile 完整流程：读取 / OCR → 分类 → 提取 → 敏感证件图像涂黑
	// 失败时返回的 Result 同样带有错误信息
	ProcessFile(ctx context.Context, filePath string) (*model.Result, error)

	// Status 引擎状态
	Status() Status
}

// Config 引擎配置
type Config struct {
	Timeout     int   // 单个文件超时（秒），默认 60
	MaxFileSize int64 // 最大文件大小（字节），默认 20MB
	PdfMaxPages int   // PDF 最多读取页数

	// 分类权重
	KeywordWeight int
	PatternWeight int

	// OCR 配置
	EnableOCR    bool
	OCRLanguages []string
	OCRDataPath  string
	OCREngine    processor.OcrEngine // 非空时替代 Tesseract

	// 图像涂黑
	RedactImages  bool
	MinConfidence int // 词元最低置信度，<=0 时取默认值 30
	Padding       int
	OutputDir     string // 空则写到源文件旁
	OutputFormat  string // jpg / png
	JPEGQuality   int

	Logger *engerrors.Logger // 为空时使用默认日志记录器
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Timeout:       60,
		MaxFileSize:   20 * 1024 * 1024,
		PdfMaxPages:   5,
		KeywordWeight: 1,
		PatternWeight: 10,
		EnableOCR:     true,
		OCRLanguages:  []string{"eng"},
		RedactImages:  true,
		MinConfidence: 30,
		OutputFormat:  "jpg",
		JPEGQuality:   95,
	}
}

// Status 引擎状态
type Status struct {
	Processors     []string `json:"processors"`
	SupportedTypes []string `json:"supported_types"`
	OCRAvailable   bool     `json:"ocr_available"`
	OCREngine      string   `json:"ocr_engine,omitempty"`
	OCRVersion     string   `json:"ocr_version,omitempty"`
	DocumentTypes  []string `json:"document_types"`
}

// New 创建引擎实例
func New(cfg Config) Engine {
	return newService(cfg)
}
