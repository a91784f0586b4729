package docintel

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"docIntelligence/internal/detector/docintel/classifier"
	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/extractor"
	"docIntelligence/internal/detector/docintel/fileutil"
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/processor"
	"docIntelligence/internal/detector/docintel/redactor"
)

// service 引擎实现
type service struct {
	config     Config
	logger     *engerrors.Logger
	classifier *classifier.Classifier
	extractors *extractor.Registry
	redactor   *redactor.Redactor
	processors *processor.Registry
	ocr        processor.OcrEngine
}

// newService 创建服务实例
func newService(cfg Config) *service {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.KeywordWeight <= 0 {
		cfg.KeywordWeight = def.KeywordWeight
	}
	if cfg.PatternWeight <= 0 {
		cfg.PatternWeight = def.PatternWeight
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = def.MinConfidence
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = def.OutputFormat
	}

	logger := cfg.Logger
	if logger == nil {
		logger = engerrors.GetDefaultLogger()
	}

	s := &service{
		config: cfg,
		logger: logger.With("component", "docintel"),
		classifier: classifier.New(&classifier.Config{
			KeywordWeight: cfg.KeywordWeight,
			PatternWeight: cfg.PatternWeight,
		}),
		extractors: extractor.NewRegistry(),
		redactor: redactor.New(redactor.Options{
			MinConfidence: cfg.MinConfidence,
			Padding:       cfg.Padding,
		}),
	}
	s.registerProcessors()
	return s
}

// registerProcessors 注册文件处理器，关闭 OCR 时不处理图片
func (s *service) registerProcessors() {
	cfg := s.config
	s.processors = processor.NewRegistry()
	s.processors.Register(processor.NewTextProcessorWithConfig(&processor.TextProcessorConfig{
		MaxFileSize: cfg.MaxFileSize,
	}))
	s.processors.Register(processor.NewPdfProcessorWithConfig(&processor.PdfProcessorConfig{
		MaxFileSize: cfg.MaxFileSize,
		MaxPages:    cfg.PdfMaxPages,
	}))

	if !cfg.EnableOCR {
		return
	}
	s.ocr = cfg.OCREngine
	if s.ocr == nil {
		tcfg := processor.DefaultTesseractConfig()
		if len(cfg.OCRLanguages) > 0 {
			tcfg.Languages = cfg.OCRLanguages
		}
		tcfg.DataPath = cfg.OCRDataPath
		s.ocr = processor.NewTesseractEngine(tcfg)
	}
	imgCfg := processor.DefaultImageProcessorConfig()
	imgCfg.MaxFileSize = cfg.MaxFileSize
	s.processors.Register(processor.NewImageProcessorWithConfig(s.ocr, imgCfg))
}

// Classify 实现 Engine 接口
func (s *service) Classify(text string) model.ClassificationResult {
	return s.classifier.Classify(text)
}

// Extract 实现 Engine 接口
func (s *service) Extract(t model.DocumentType, text string, redact bool) *model.FieldMap {
	return s.extractors.Extract(t, text, redact)
}

// Redact 实现 Engine 接口
func (s *service) Redact(img image.Image, tokens []model.OcrToken, t model.DocumentType) *image.RGBA {
	out, _ := s.redactor.Redact(img, tokens, t)
	return out
}

// ProcessText 实现 Engine 接口
func (s *service) ProcessText(ctx context.Context, name, text string) *model.Result {
	start := time.Now()
	res := model.NewResult("", name)
	res.Source = processor.SourceText
	s.analyze(res, text)
	res.ProcessTime = time.Since(start)
	s.logResult(res)
	return res
}

// analyze 分类并提取原始值与脱敏值
func (s *service) analyze(res *model.Result, text string) {
	res.TextLength = len(text)
	res.Classification = s.classifier.Classify(text)
	t := res.Classification.DocumentType
	res.RawFields = s.extractors.Extract(t, text, false)
	res.MaskedFields = s.extractors.Extract(t, text, true)
}

// outcome 处理协程的输出
type outcome struct {
	content *processor.Content
	redact  *redactor.FileResult
	err     error
}

// ProcessFile 实现 Engine 接口
func (s *service) ProcessFile(ctx context.Context, filePath string) (*model.Result, error) {
	start := time.Now()

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	res := model.NewResult(absPath, filepath.Base(filePath))
	log := s.logger.With("request_id", res.ID, "file", res.FileName)

	fail := func(err error) (*model.Result, error) {
		res.SetError(err)
		res.ProcessTime = time.Since(start)
		log.LogError(err)
		return res, err
	}

	// 1. 验证文件
	if err := fileutil.ValidateFile(absPath, s.config.MaxFileSize); err != nil {
		return fail(err)
	}

	// 2. 选择处理器
	proc, ft, err := s.processors.ForFile(absPath)
	if err != nil {
		return fail(err)
	}
	log.Debug("processor selected", "processor", proc.Name(), "file_type", ft.String())

	// 3. 超时控制（调用方已设置截止时间时沿用）
	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.config.Timeout)*time.Second)
	}
	defer cancel()

	// 4. 在独立协程中读取内容（带 panic 恢复）
	done := make(chan outcome, 1)
	go func() {
		var out outcome
		out.err = engerrors.SafeExecute(func() error {
			content, err := engerrors.RetryWithResult(func() (*processor.Content, error) {
				return proc.Process(runCtx, absPath)
			}, engerrors.DefaultRetryConfig())
			out.content = content
			return err
		})
		done <- out
	}()

	var out outcome
	select {
	case out = <-done:
	case <-runCtx.Done():
		return fail(s.contextError(ctx, absPath))
	}
	if out.err != nil {
		// 处理器因上下文结束而返回时，按超时 / 取消上报
		if runCtx.Err() != nil {
			return fail(s.contextError(ctx, absPath))
		}
		return fail(out.err)
	}

	content := out.content
	res.Source = content.Source
	res.TokenCount = len(content.Tokens)
	if content.Empty() {
		log.Log(engerrors.NoContentError(absPath))
	}

	// 5. 分类与提取
	s.analyze(res, content.Text)

	// 6. 敏感证件图像涂黑
	t := res.DocumentType()
	if content.IsImage() && t.IsSensitive() && s.config.RedactImages {
		fr, err := s.redactor.RedactFile(absPath, content.Tokens, t, redactor.OutputOptions{
			Dir:         s.config.OutputDir,
			Format:      s.config.OutputFormat,
			JPEGQuality: s.config.JPEGQuality,
		})
		if err != nil {
			return fail(err)
		}
		res.RedactedImagePath = fr.OutputPath
		res.RedactedRegions = len(fr.Regions)
	}

	res.ProcessTime = time.Since(start)
	s.logResult(res)
	return res, nil
}

func (s *service) contextError(ctx context.Context, filePath string) *engerrors.EngineError {
	if ctx.Err() == context.Canceled {
		return engerrors.New(engerrors.ErrCancelled, "processing cancelled").
			WithFile(filePath).
			WithCause(ctx.Err())
	}
	return engerrors.TimeoutError(filePath, time.Duration(s.config.Timeout)*time.Second)
}

func (s *service) logResult(res *model.Result) {
	s.logger.Info("document processed",
		"request_id", res.ID,
		"file", res.FileName,
		"doc_type", res.DocumentType().String(),
		"confidence", fmt.Sprintf("%.2f", res.Classification.Confidence),
		"fields_found", res.MaskedFields.FoundCount(),
		"redacted_regions", res.RedactedRegions,
		"duration_ms", res.ProcessTime.Milliseconds(),
	)
}

// Status 实现 Engine 接口
func (s *service) Status() Status {
	st := Status{SupportedTypes: s.processors.SupportedTypes()}
	for _, p := range s.processors.All() {
		st.Processors = append(st.Processors, p.Name())
	}
	for _, t := range model.AllDocumentTypes() {
		st.DocumentTypes = append(st.DocumentTypes, t.String())
	}
	if s.ocr != nil {
		st.OCREngine = s.ocr.GetName()
		st.OCRAvailable = s.ocr.IsAvailable()
		if st.OCRAvailable {
			st.OCRVersion = s.ocr.GetVersion()
		}
	}
	return st
}
