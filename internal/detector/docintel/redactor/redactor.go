// Package redactor 根据 OCR 词元在图像上涂黑敏感区域
package redactor

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/rules"
)

// DefaultMinConfidence 低于该置信度的词元视为噪声，不涂黑
const DefaultMinConfidence = 30

// Options 涂黑配置
type Options struct {
	MinConfidence int         // 最低置信度 (0-100)
	Padding       int         // 矩形外扩像素
	Fill          color.Color // 填充颜色，默认黑色
}

// DefaultOptions 返回默认配置
func DefaultOptions() Options {
	return Options{
		MinConfidence: DefaultMinConfidence,
		Fill:          color.Black,
	}
}

// Region 一个被涂黑的区域
type Region struct {
	Box    model.BoundingBox `json:"box"`
	Text   string            `json:"-"` // 原文不输出
	Reason string            `json:"reason"`
}

// Redactor 图像涂黑器，无状态，可并发使用
type Redactor struct {
	opts Options
}

// New 创建涂黑器
func New(opts Options) *Redactor {
	if opts.Fill == nil {
		opts.Fill = color.Black
	}
	if opts.MinConfidence < 0 {
		opts.MinConfidence = 0
	}
	return &Redactor{opts: opts}
}

// Redact 复制输入图像并涂黑敏感词元，输入图像不会被修改
func (r *Redactor) Redact(img image.Image, tokens []model.OcrToken, t model.DocumentType) (*image.RGBA, []Region) {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	profile := rules.ProfileFor(t)
	fill := image.NewUniform(r.opts.Fill)

	var regions []Region
	for _, tok := range tokens {
		if tok.Confidence < r.opts.MinConfidence || strings.TrimSpace(tok.Text) == "" {
			continue
		}
		ok, reason := profile.SensitiveToken(tok.Text)
		if !ok {
			continue
		}
		rect := tok.Box.Rect().Inset(-r.opts.Padding).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		draw.Draw(out, rect, fill, image.Point{}, draw.Src)
		regions = append(regions, Region{
			Box:    model.BoundingBox{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()},
			Text:   tok.Text,
			Reason: reason,
		})
	}
	return out, regions
}

var defaultRedactor = New(DefaultOptions())

// Redact 使用默认配置涂黑
func Redact(img image.Image, tokens []model.OcrToken, t model.DocumentType) *image.RGBA {
	out, _ := defaultRedactor.Redact(img, tokens, t)
	return out
}
