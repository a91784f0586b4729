// Package classifier 基于关键词与强特征正则的文档类型评分
package classifier

import (
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// Config 分类器配置
type Config struct {
	KeywordWeight int // 每个命中关键词的分值 (默认1)
	PatternWeight int // 每个命中强特征模式的分值 (默认10)
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		KeywordWeight: 1,
		PatternWeight: rules.StrongPatternWeight,
	}
}

// Classifier 分类器，无状态，可并发使用
type Classifier struct {
	config *Config
}

// New 创建分类器
func New(config *Config) *Classifier {
	if config == nil {
		config = DefaultConfig()
	}
	return &Classifier{config: config}
}

// Classify 对文本评分并返回得分最高的类型
// 平分时按 DocumentType 声明顺序取第一个，全部为 0 时结果为 AadharCard、置信度 0
func (c *Classifier) Classify(text string) model.ClassificationResult {
	text = rules.NormalizeOCR(text)

	profiles := rules.Profiles()
	scores := make([]model.TypeScore, 0, len(profiles))
	total := 0
	best := 0
	for i, p := range profiles {
		ts := c.score(p, text)
		scores = append(scores, ts)
		total += ts.Score
		if ts.Score > scores[best].Score {
			best = i
		}
	}

	result := model.ClassificationResult{
		DocumentType: scores[best].Type,
		Scores:       scores,
	}
	if total > 0 {
		result.Confidence = float64(scores[best].Score) / float64(total)
	}
	return result
}

func (c *Classifier) score(p *rules.Profile, text string) model.TypeScore {
	ts := model.TypeScore{Type: p.Type}

	ts.Keywords = p.Keywords.FindAll(text)
	ts.Score += len(ts.Keywords) * c.config.KeywordWeight

	// 同一模式多次命中只计一次
	for _, pat := range p.StrongPatterns {
		if pat.Match(text) {
			ts.Patterns = append(ts.Patterns, pat.Name)
			ts.Score += c.config.PatternWeight
		}
	}
	return ts
}

// ConfidenceLevel 置信度描述 (高/中/低)
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "high"
	case confidence >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

var defaultClassifier = New(nil)

// Classify 使用默认配置分类
func Classify(text string) model.ClassificationResult {
	return defaultClassifier.Classify(text)
}
