package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	engerrors "docIntelligence/internal/detector/docintel/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return p
}

// TestLoad_Integration 配置文件 + 默认值 + 环境变量覆盖
func TestLoad_Integration(t *testing.T) {
	// 故意漏掉 batch.workers，测试默认值是否生效
	path := writeConfig(t, `
agent:
  log_level: "warn"
  log_format: "json"

engine:
  timeout: "5s"

ocr:
  languages:
    - "eng"
    - "hin"

redaction:
  min_confidence: 40
  output_format: "png"
`)

	// redaction.padding -> DOCINTEL_REDACTION_PADDING
	t.Setenv("DOCINTEL_REDACTION_PADDING", "3")
	t.Setenv("DOCINTEL_REPORT_FORMAT", "xlsx")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Agent.LogLevel != "warn" || cfg.Agent.LogFormat != "json" {
		t.Errorf("agent = %+v", cfg.Agent)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("Duration parsing failed. Expected 5s, got %v", cfg.Engine.Timeout)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[1] != "hin" {
		t.Errorf("slice parsing failed: %v", cfg.OCR.Languages)
	}
	if cfg.Redaction.MinConfidence != 40 || cfg.Redaction.OutputFormat != "png" {
		t.Errorf("redaction = %+v", cfg.Redaction)
	}

	// 默认值
	if cfg.Batch.Workers != 4 || !cfg.OCR.Enable || cfg.Engine.PatternWeight != 10 {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	// 环境变量优先级高于文件与默认值
	if cfg.Redaction.Padding != 3 || cfg.Report.Format != "xlsx" {
		t.Errorf("env override failed: padding=%d format=%s", cfg.Redaction.Padding, cfg.Report.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    engerrors.ErrorCode
	}{
		{"bad yaml", "agent: [unterminated", engerrors.ErrConfigInvalid},
		{"confidence out of range", "redaction:\n  min_confidence: 150\n", engerrors.ErrConfigValue},
		{"unknown output format", "redaction:\n  output_format: gif\n", engerrors.ErrConfigValue},
		{"zero workers", "batch:\n  workers: 0\n", engerrors.ErrConfigValue},
		{"unknown report format", "report:\n  format: csv\n", engerrors.ErrConfigValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if engerrors.GetErrorCode(err) != tt.code {
				t.Errorf("err = %v, want code %d", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !engerrors.HasCode(err, engerrors.ErrConfigInvalid) {
		t.Errorf("explicit missing file should fail: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Engine.Timeout != time.Minute || cfg.Redaction.MinConfidence != 30 || cfg.Redaction.OutputFormat != "jpg" {
		t.Errorf("defaults = %+v", cfg)
	}
}

// LoadConfig 使用 sync.Once，本包只在这里调用一次
func TestLoadConfig_Global(t *testing.T) {
	path := writeConfig(t, "batch:\n  workers: 2\n")
	if err := LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	if Get().Batch.Workers != 2 {
		t.Errorf("global workers = %d", Get().Batch.Workers)
	}
	// 第二次调用不会重新加载
	if err := LoadConfig(writeConfig(t, "batch:\n  workers: 8\n")); err != nil || Get().Batch.Workers != 2 {
		t.Error("LoadConfig must only load once")
	}
}
