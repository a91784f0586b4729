package processor

import (
	"context"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
)

// ============================================================
// OCR 引擎接口
// ============================================================

// Recognition OCR 识别结果：全文 + 单词级词元
type Recognition struct {
	Text   string
	Tokens []model.OcrToken
}

// OcrEngine OCR 引擎接口
type OcrEngine interface {
	// IsAvailable 检查引擎是否可用
	IsAvailable() bool

	// Recognize 识别图片文件
	Recognize(ctx context.Context, imagePath string) (*Recognition, error)

	// RecognizeBytes 识别内存中的图片（PNG/JPEG 等编码数据）
	RecognizeBytes(ctx context.Context, data []byte) (*Recognition, error)

	GetName() string
	GetVersion() string
}

// ============================================================
// Tesseract 实现（gosseract）
// ============================================================

// TesseractConfig Tesseract 配置
type TesseractConfig struct {
	Languages   []string // 默认 eng
	DataPath    string   // tessdata 目录，空则使用系统默认
	PageSegMode int      // 0 表示使用默认 PSM_AUTO
}

// DefaultTesseractConfig 返回默认配置
func DefaultTesseractConfig() *TesseractConfig {
	return &TesseractConfig{
		Languages:   []string{"eng"},
		PageSegMode: int(gosseract.PSM_AUTO),
	}
}

// TesseractEngine 基于 gosseract 的 OCR 引擎
// gosseract.Client 不是并发安全的，每次识别创建独立 client
type TesseractEngine struct {
	config *TesseractConfig

	once      sync.Once
	available bool
	version   string
	languages []string
}

// NewTesseractEngine 创建 Tesseract 引擎
func NewTesseractEngine(config *TesseractConfig) *TesseractEngine {
	if config == nil {
		config = DefaultTesseractConfig()
	}
	if len(config.Languages) == 0 {
		config.Languages = []string{"eng"}
	}
	return &TesseractEngine{config: config}
}

// probe 首次使用时探测版本与可用语言
func (t *TesseractEngine) probe() {
	t.once.Do(func() {
		err := engerrors.SafeExecute(func() error {
			client := gosseract.NewClient()
			defer client.Close()
			t.version = strings.TrimSpace(client.Version())
			return nil
		})
		if err != nil || t.version == "" {
			return
		}
		if langs, err := gosseract.GetAvailableLanguages(); err == nil {
			t.languages = langs
		}
		t.available = true
	})
}

// IsAvailable 检查引擎是否可用
func (t *TesseractEngine) IsAvailable() bool {
	t.probe()
	return t.available
}

// GetName 引擎名称
func (t *TesseractEngine) GetName() string { return "tesseract" }

// GetVersion 引擎版本
func (t *TesseractEngine) GetVersion() string {
	t.probe()
	return t.version
}

// Languages 已安装的语言包
func (t *TesseractEngine) Languages() []string {
	t.probe()
	return t.languages
}

// Recognize 识别图片文件
func (t *TesseractEngine) Recognize(ctx context.Context, imagePath string) (*Recognition, error) {
	return t.run(ctx, imagePath, func(c *gosseract.Client) error {
		return c.SetImage(imagePath)
	})
}

// RecognizeBytes 识别内存图片
func (t *TesseractEngine) RecognizeBytes(ctx context.Context, data []byte) (*Recognition, error) {
	return t.run(ctx, "", func(c *gosseract.Client) error {
		return c.SetImageFromBytes(data)
	})
}

func (t *TesseractEngine) run(ctx context.Context, filePath string, setImage func(*gosseract.Client) error) (*Recognition, error) {
	if !t.IsAvailable() {
		return nil, engerrors.OCRUnavailableError(nil)
	}
	if err := checkContext(ctx, filePath); err != nil {
		return nil, err
	}

	rec, err := engerrors.SafeExecuteWithResult(func() (*Recognition, error) {
		client := gosseract.NewClient()
		defer client.Close()

		if t.config.DataPath != "" {
			if err := client.SetTessdataPrefix(t.config.DataPath); err != nil {
				return nil, err
			}
		}
		if err := client.SetLanguage(t.config.Languages...); err != nil {
			return nil, err
		}
		if t.config.PageSegMode > 0 {
			if err := client.SetPageSegMode(gosseract.PageSegMode(t.config.PageSegMode)); err != nil {
				return nil, err
			}
		}
		if err := setImage(client); err != nil {
			return nil, err
		}

		text, err := client.Text()
		if err != nil {
			return nil, err
		}

		// 识别可能较慢，取词元前再检查一次
		if err := checkContext(ctx, filePath); err != nil {
			return nil, err
		}

		boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
		if err != nil {
			return nil, err
		}
		return &Recognition{Text: text, Tokens: toTokens(boxes)}, nil
	})
	if err != nil {
		if engerrors.HasCode(err, engerrors.ErrCancelled) {
			return nil, err
		}
		return nil, engerrors.OCRError(filePath, err)
	}
	return rec, nil
}

// toTokens 转换为引擎词元，置信度取整到 0-100
func toTokens(boxes []gosseract.BoundingBox) []model.OcrToken {
	tokens := make([]model.OcrToken, 0, len(boxes))
	for _, b := range boxes {
		conf := int(b.Confidence)
		if conf < 0 {
			conf = 0
		} else if conf > 100 {
			conf = 100
		}
		tokens = append(tokens, model.OcrToken{
			Text:       b.Word,
			Confidence: conf,
			Box: model.BoundingBox{
				X:      b.Box.Min.X,
				Y:      b.Box.Min.Y,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
		})
	}
	return tokens
}
