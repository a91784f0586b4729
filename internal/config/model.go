// Package config 加载 docintel 的运行配置
package config

import "time"

// ==========================================
// 顶层配置结构
// ==========================================

type AppConfig struct {
	Agent     AgentConfig     `mapstructure:"agent" yaml:"agent"`
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	OCR       OCRConfig       `mapstructure:"ocr" yaml:"ocr"`
	Redaction RedactionConfig `mapstructure:"redaction" yaml:"redaction"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
	Batch     BatchConfig     `mapstructure:"batch" yaml:"batch"`
}

// ==========================================
// 1. 基础配置
// ==========================================

type AgentConfig struct {
	// 日志级别: debug, info, warn, error
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// 日志格式: text, json
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	// 日志文件路径，空则输出到 stderr
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// ==========================================
// 2. 引擎配置
// ==========================================

type EngineConfig struct {
	// 单个文件处理超时
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// 最大输入文件大小 (字节)
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
	// PDF 最多读取页数
	PdfMaxPages int `mapstructure:"pdf_max_pages" yaml:"pdf_max_pages"`
	// 分类权重
	KeywordWeight int `mapstructure:"keyword_weight" yaml:"keyword_weight"`
	PatternWeight int `mapstructure:"pattern_weight" yaml:"pattern_weight"`
}

// ==========================================
// 3. OCR 配置
// ==========================================

type OCRConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
	// tesseract 语言包，如 eng、hin
	Languages []string `mapstructure:"languages" yaml:"languages"`
	// tessdata 目录，空则使用系统默认
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
}

// ==========================================
// 4. 图像涂黑配置
// ==========================================

type RedactionConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
	// 低于该置信度的 OCR 词元不涂黑 (0-100)
	MinConfidence int `mapstructure:"min_confidence" yaml:"min_confidence"`
	// 涂黑矩形外扩像素
	Padding int `mapstructure:"padding" yaml:"padding"`
	// 输出目录，空则写到源文件旁
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// 输出格式: jpg, png
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	JPEGQuality  int    `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
}

// ==========================================
// 5. 报告配置
// ==========================================

type ReportConfig struct {
	// 报告格式: json, xlsx
	Format string `mapstructure:"format" yaml:"format"`
	// 报告路径，空则不写报告
	Path string `mapstructure:"path" yaml:"path"`
}

// ==========================================
// 6. 批处理配置
// ==========================================

type BatchConfig struct {
	// 并发数
	Workers int `mapstructure:"workers" yaml:"workers"`
	// 是否递归子目录
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}
