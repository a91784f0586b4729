package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	engerrors "docIntelligence/internal/detector/docintel/errors"
)

// GlobalConfig 全局配置单例
// 在调用 LoadConfig 成功后，该变量会被填充，后续模块直接读取即可
var (
	GlobalConfig *AppConfig
	loadOnce     sync.Once
)

// EnvPrefix 环境变量前缀，如 DOCINTEL_OCR_ENABLE 覆盖 ocr.enable
const EnvPrefix = "DOCINTEL"

// LoadConfig 加载配置到全局单例，仅首次调用生效
func LoadConfig(configPath string) error {
	var err error
	loadOnce.Do(func() {
		var cfg *AppConfig
		cfg, err = Load(configPath)
		if err == nil {
			GlobalConfig = cfg
		}
	})
	return err
}

// Load 读取一份新的配置
// configPath 为空时在默认目录搜索 config.yaml，找不到则只使用默认值与环境变量
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()

	// 1. 设置默认值 (兜底策略)
	setDefaults(v)

	// 2. 配置读取规则
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/docintel/")
		v.AddConfigPath(".")
	}

	// 3. 环境变量覆盖: DOCINTEL_REDACTION_MIN_CONFIDENCE -> redaction.min_confidence
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if configPath != "" || !notFound {
			return nil, engerrors.ConfigError(configPath, "failed to read config file", err)
		}
	}

	// 5. 反序列化到结构体
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, engerrors.ConfigError(v.ConfigFileUsed(), "failed to unmarshal config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 仅包含默认值的配置
func Default() *AppConfig {
	v := viper.New()
	setDefaults(v)
	var cfg AppConfig
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults 定义配置文件的“默认行为”
func setDefaults(v *viper.Viper) {
	// Agent 日志
	v.SetDefault("agent.log_level", "info")
	v.SetDefault("agent.log_format", "text")
	v.SetDefault("agent.log_file", "")

	// Engine 引擎
	v.SetDefault("engine.timeout", "60s")
	v.SetDefault("engine.max_file_size", 20*1024*1024)
	v.SetDefault("engine.pdf_max_pages", 5)
	v.SetDefault("engine.keyword_weight", 1)
	v.SetDefault("engine.pattern_weight", 10)

	// OCR
	v.SetDefault("ocr.enable", true)
	v.SetDefault("ocr.languages", []string{"eng"})
	v.SetDefault("ocr.data_path", "")

	// Redaction 图像涂黑
	v.SetDefault("redaction.enable", true)
	v.SetDefault("redaction.min_confidence", 30)
	v.SetDefault("redaction.padding", 0)
	v.SetDefault("redaction.output_dir", "")
	v.SetDefault("redaction.output_format", "jpg")
	v.SetDefault("redaction.jpeg_quality", 95)

	// Report 报告
	v.SetDefault("report.format", "json")
	v.SetDefault("report.path", "")

	// Batch 批处理
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.recursive", false)
}

// Validate 校验取值范围
func (c *AppConfig) Validate() error {
	invalid := func(key string, value any) error {
		return engerrors.New(engerrors.ErrConfigValue, fmt.Sprintf("invalid value for %s: %v", key, value)).
			WithComponent("config")
	}

	if c.Engine.Timeout <= 0 {
		return invalid("engine.timeout", c.Engine.Timeout)
	}
	if c.Redaction.MinConfidence < 0 || c.Redaction.MinConfidence > 100 {
		return invalid("redaction.min_confidence", c.Redaction.MinConfidence)
	}
	if c.Redaction.Padding < 0 {
		return invalid("redaction.padding", c.Redaction.Padding)
	}
	switch strings.ToLower(c.Redaction.OutputFormat) {
	case "jpg", "jpeg", "png":
	default:
		return invalid("redaction.output_format", c.Redaction.OutputFormat)
	}
	switch strings.ToLower(c.Report.Format) {
	case "json", "xlsx":
	default:
		return invalid("report.format", c.Report.Format)
	}
	if c.Batch.Workers < 1 {
		return invalid("batch.workers", c.Batch.Workers)
	}
	return nil
}

// Get 获取全局配置，未加载时返回默认值
func Get() *AppConfig {
	if GlobalConfig == nil {
		return Default()
	}
	return GlobalConfig
}
