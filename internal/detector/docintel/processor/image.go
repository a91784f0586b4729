package processor

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
)

// ImageProcessor 图像处理器：OCR 得到文本与词元
type ImageProcessor struct {
	base   *BaseProcessor
	engine OcrEngine
	config *ImageProcessorConfig
}

// ImageProcessorConfig 图像处理器配置
type ImageProcessorConfig struct {
	MaxFileSize int64
	MinSize     int // 宽或高小于该值的图片（图标等）不做 OCR
}

// DefaultImageProcessorConfig 返回默认配置
func DefaultImageProcessorConfig() *ImageProcessorConfig {
	return &ImageProcessorConfig{
		MaxFileSize: 20 * 1024 * 1024,
		MinSize:     32,
	}
}

// tesseract 可直接读取的格式，其余格式先转码为 PNG
var nativeOcrFormats = map[string]bool{
	"jpeg": true, "png": true, "bmp": true, "tiff": true,
}

// NewImageProcessor 创建图像处理器
func NewImageProcessor(engine OcrEngine) *ImageProcessor {
	return NewImageProcessorWithConfig(engine, nil)
}

// NewImageProcessorWithConfig 使用指定配置创建图像处理器
func NewImageProcessorWithConfig(engine OcrEngine, config *ImageProcessorConfig) *ImageProcessor {
	if config == nil {
		config = DefaultImageProcessorConfig()
	}
	return &ImageProcessor{
		base: NewBaseProcessor("ImageProcessor", "image OCR (tesseract)",
			[]string{"jpg", "jpeg", "png", "bmp", "tif", "tiff", "webp", "gif"}),
		engine: engine,
		config: config,
	}
}

// Name 返回处理器名称
func (p *ImageProcessor) Name() string { return p.base.Name() }

// Description 返回处理器描述
func (p *ImageProcessor) Description() string { return p.base.Description() }

// SupportedTypes 返回支持的文件类型
func (p *ImageProcessor) SupportedTypes() []string { return p.base.SupportedTypes() }

// Engine 返回使用的 OCR 引擎
func (p *ImageProcessor) Engine() OcrEngine { return p.engine }

// Process 识别图片，返回文本与词元
func (p *ImageProcessor) Process(ctx context.Context, filePath string) (*Content, error) {
	if err := fileutil.ValidateFile(filePath, p.config.MaxFileSize); err != nil {
		return nil, err
	}

	cfg, format, err := decodeConfig(filePath)
	if err != nil {
		return nil, engerrors.ImageLoadError(filePath, err).WithComponent(p.Name())
	}

	content := &Content{Source: SourceImage, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width < p.config.MinSize || cfg.Height < p.config.MinSize {
		return content, nil
	}

	if p.engine == nil || !p.engine.IsAvailable() {
		return nil, engerrors.OCRUnavailableError(nil).WithFile(filePath)
	}

	var rec *Recognition
	if nativeOcrFormats[format] {
		rec, err = p.engine.Recognize(ctx, filePath)
	} else {
		var data []byte
		data, err = transcodePNG(filePath)
		if err != nil {
			return nil, engerrors.ImageLoadError(filePath, err).WithComponent(p.Name())
		}
		rec, err = p.engine.RecognizeBytes(ctx, data)
	}
	if err != nil {
		if ee := engerrors.AsEngineError(err); ee != nil && ee.FilePath == "" {
			ee.WithFile(filePath)
		}
		return nil, err
	}

	content.Text = rec.Text
	content.Tokens = rec.Tokens
	return content, nil
}

// IsOcrAvailable OCR 是否可用
func (p *ImageProcessor) IsOcrAvailable() bool {
	return p.engine != nil && p.engine.IsAvailable()
}

func decodeConfig(filePath string) (image.Config, string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()
	return image.DecodeConfig(bufio.NewReader(f))
}

// transcodePNG 解码后重新编码为 PNG（无损），坐标与原图一致
func transcodePNG(filePath string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
