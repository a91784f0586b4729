// Package main 证件与票据识别命令行工具
// 分类、字段提取、脱敏、图像涂黑与批量报告
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docIntelligence/internal/config"
	"docIntelligence/internal/detector/docintel"
	engerrors "docIntelligence/internal/detector/docintel/errors"
)

// ==========================================
// 全局变量和配置
// ==========================================

var (
	appName = "docintel"

	// 命令行参数
	configPath string
	jsonOutput bool
	verbose    bool
	logLevel   string
	disableOCR bool
	outputDir  string

	// 运行时状态（PersistentPreRunE 中初始化）
	appConfig *config.AppConfig
	logger    *engerrors.Logger
	logCloser io.Closer

	// 颜色输出
	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorYellow = color.New(color.FgYellow)
	colorCyan   = color.New(color.FgCyan)
	colorWhite  = color.New(color.FgWhite)
)

// ==========================================
// 主入口
// ==========================================

func main() {
	// Ctrl+C 取消正在进行的 OCR 与批处理
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		if ee := engerrors.AsEngineError(err); ee != nil && ee.Code != engerrors.ErrUnknown {
			colorRed.Fprintf(os.Stderr, "Error: %s\n", ee.UserMessage())
		} else {
			colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// ==========================================
// 根命令
// ==========================================

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Classify, extract and redact Indian identity and financial documents",
	Long: `docintel classifies OCR'd documents (Aadhar, PAN, invoice, driving licence,
voter ID, generic ID card), extracts their fields, masks sensitive values and
blacks out sensitive regions on scanned images.

Examples:
  # classify a text file
  docintel classify card.txt

  # full pipeline on a scanned card, JSON output
  docintel process --json scan.jpg

  # redact an image with known OCR tokens
  docintel redact scan.png --type pan --tokens tokens.json

  # process a directory with 8 workers and write an Excel report
  docintel batch ./scans --workers 8 --report summary.xlsx
`,
	Version:           config.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup 加载配置并初始化日志
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Agent.LogLevel = logLevel
	}
	if disableOCR {
		cfg.OCR.Enable = false
	}
	if outputDir != "" {
		cfg.Redaction.OutputDir = outputDir
	}
	appConfig = cfg

	out := io.Writer(os.Stderr)
	if cfg.Agent.LogFile != "" {
		f, err := os.OpenFile(cfg.Agent.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return engerrors.New(engerrors.ErrFileWriteFailed, "cannot open log file").
				WithFile(cfg.Agent.LogFile).
				WithCause(err)
		}
		out, logCloser = f, f
	}
	// 非 verbose 时控制台只显示警告以上
	level := cfg.Agent.LogLevel
	if cfg.Agent.LogFile == "" && !verbose && strings.EqualFold(level, "info") {
		level = "warn"
	}
	logger = engerrors.NewLogger(engerrors.LoggerOptions{
		Level:  level,
		Format: cfg.Agent.LogFormat,
		Output: out,
	})
	engerrors.SetDefaultLogger(logger)
	return nil
}

// newEngine 按配置创建引擎
func newEngine() docintel.Engine {
	return docintel.New(engineConfig(appConfig))
}

// engineConfig 配置文件到引擎配置的映射
func engineConfig(cfg *config.AppConfig) docintel.Config {
	ec := docintel.DefaultConfig()
	ec.Timeout = int(cfg.Engine.Timeout.Seconds())
	ec.MaxFileSize = cfg.Engine.MaxFileSize
	ec.PdfMaxPages = cfg.Engine.PdfMaxPages
	ec.KeywordWeight = cfg.Engine.KeywordWeight
	ec.PatternWeight = cfg.Engine.PatternWeight

	ec.EnableOCR = cfg.OCR.Enable
	ec.OCRLanguages = cfg.OCR.Languages
	ec.OCRDataPath = cfg.OCR.DataPath

	ec.RedactImages = cfg.Redaction.Enable
	ec.MinConfidence = cfg.Redaction.MinConfidence
	ec.Padding = cfg.Redaction.Padding
	ec.OutputDir = cfg.Redaction.OutputDir
	ec.OutputFormat = cfg.Redaction.OutputFormat
	ec.JPEGQuality = cfg.Redaction.JPEGQuality

	ec.Logger = logger
	return ec
}

// ==========================================
// 初始化
// ==========================================

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yaml or /etc/docintel/config.yaml)")
	pf.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&disableOCR, "no-ocr", false, "disable OCR for image inputs")
	pf.StringVarP(&outputDir, "output-dir", "o", "", "directory for redacted images")

	rootCmd.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\n", appName))

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(redactCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
