package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docIntelligence/internal/detector/docintel/classifier"
	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/processor"
	"docIntelligence/internal/detector/docintel/redactor"
)

var (
	inputText   string
	docTypeName string
	showRaw     bool
	tokensPath  string
)

// ==========================================
// 输入
// ==========================================

// textInput 解析文本输入：--text、"-"（标准输入）或文本文件
// 非文本文件返回 ok=false，由调用方走完整流程
func textInput(args []string) (name, text string, ok bool, err error) {
	if inputText != "" {
		return "<text>", inputText, true, nil
	}
	if len(args) == 0 {
		return "", "", false, engerrors.New(engerrors.ErrInvalidInput, "no input: pass a file, '-' or --text")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", false, engerrors.FileReadError("<stdin>", err)
		}
		text, err := processor.DecodeText(data)
		return "<stdin>", text, true, err
	}

	ft, err := fileutil.DetectFileType(args[0])
	if err != nil {
		return "", "", false, engerrors.FileNotFoundError(args[0]).WithCause(err)
	}
	if ft.Category != fileutil.CategoryText {
		return args[0], "", false, nil
	}
	data, err := fileutil.ReadFileSafe(args[0], appConfig.Engine.MaxFileSize)
	if err != nil {
		return "", "", false, err
	}
	text, err = processor.DecodeText(data)
	return args[0], text, true, err
}

// analyzeInput 文本直接分析，其他文件走完整流程（不写涂黑图像）
func analyzeInput(ctx context.Context, args []string) (*model.Result, error) {
	name, text, ok, err := textInput(args)
	if err != nil {
		return nil, err
	}
	appConfig.Redaction.Enable = false
	engine := newEngine()
	if ok {
		return engine.ProcessText(ctx, name, text), nil
	}
	return engine.ProcessFile(ctx, name)
}

func parseTypeFlag() (model.DocumentType, bool, error) {
	if docTypeName == "" {
		return 0, false, nil
	}
	t, ok := model.ParseDocumentType(docTypeName)
	if !ok {
		return 0, false, engerrors.New(engerrors.ErrInvalidInput, fmt.Sprintf("unknown document type %q", docTypeName))
	}
	return t, true, nil
}

// ==========================================
// classify 命令
// ==========================================

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Detect the document type of OCR text, a PDF or an image",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	res, err := analyzeInput(cmd.Context(), args)
	if err != nil {
		return err
	}
	c := res.Classification
	if jsonOutput {
		return printJSON(c)
	}

	colorCyan.Printf("%s\n", res.FileName)
	colorGreen.Printf("  %-12s %s\n", "Type:", c.DocumentType)
	colorWhite.Printf("  %-12s %d%% (%s)\n", "Confidence:", c.Percent(), classifier.ConfidenceLevel(c.Confidence))
	if verbose {
		fmt.Println("  Scores:")
		for _, s := range c.Scores {
			fmt.Printf("    %-16s %3d", s.Type.String(), s.Score)
			if len(s.Patterns) > 0 {
				fmt.Printf("  patterns=%s", strings.Join(s.Patterns, ","))
			}
			if len(s.Keywords) > 0 {
				fmt.Printf("  keywords=%s", strings.Join(s.Keywords, ","))
			}
			fmt.Println()
		}
	}
	return nil
}

// ==========================================
// extract 命令
// ==========================================

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract (masked) fields from a document",
	Long: `Classify the document and extract its type-specific fields.
Values are masked unless --raw is given. --type skips classification
and is only available for text input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	forced, hasType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	var fields *model.FieldMap
	var name string
	if hasType {
		n, text, ok, err := textInput(args)
		if err != nil {
			return err
		}
		if !ok {
			return engerrors.New(engerrors.ErrInvalidInput, "--type requires text input; use 'process' for images and PDFs")
		}
		name = n
		fields = newEngine().Extract(forced, text, !showRaw)
	} else {
		res, err := analyzeInput(cmd.Context(), args)
		if err != nil {
			return err
		}
		name = res.FileName
		forced = res.DocumentType()
		fields = res.MaskedFields
		if showRaw {
			fields = res.RawFields
		}
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"file":          name,
			"document_type": forced,
			"fields":        fields,
		})
	}
	colorCyan.Printf("%s: %s\n", name, forced)
	printFields(fields)
	return nil
}

// ==========================================
// redact 命令
// ==========================================

var redactCmd = &cobra.Command{
	Use:   "redact <image>",
	Short: "Black out sensitive regions of a scanned document",
	Long: `Redact an image using OCR tokens. Tokens are read from --tokens (a JSON
array of {text, confidence, bounding_box}) or produced by tesseract. Without
--type the document type is classified from the OCR text.`,
	Args: cobra.ExactArgs(1),
	RunE: runRedact,
}

func runRedact(cmd *cobra.Command, args []string) error {
	src := args[0]
	t, hasType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	var tokens []model.OcrToken
	var text string
	if tokensPath != "" {
		if tokens, err = loadTokens(tokensPath); err != nil {
			return err
		}
		text = tokenText(tokens)
	} else {
		tcfg := processor.DefaultTesseractConfig()
		tcfg.Languages = appConfig.OCR.Languages
		tcfg.DataPath = appConfig.OCR.DataPath
		rec, err := processor.NewTesseractEngine(tcfg).Recognize(cmd.Context(), src)
		if err != nil {
			return err
		}
		tokens, text = rec.Tokens, rec.Text
	}
	if !hasType {
		t = newEngine().Classify(text).DocumentType
	}

	r := redactor.New(redactor.Options{
		MinConfidence: appConfig.Redaction.MinConfidence,
		Padding:       appConfig.Redaction.Padding,
	})
	res, err := r.RedactFile(src, tokens, t, redactor.OutputOptions{
		Dir:         appConfig.Redaction.OutputDir,
		Format:      appConfig.Redaction.OutputFormat,
		JPEGQuality: appConfig.Redaction.JPEGQuality,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"source":        res.SourcePath,
			"output":        res.OutputPath,
			"document_type": t,
			"regions":       res.Regions,
		})
	}
	colorGreen.Printf("Redacted %d region(s) as %s\n", len(res.Regions), t)
	colorWhite.Printf("  %s\n", res.OutputPath)
	if verbose {
		for _, reg := range res.Regions {
			fmt.Printf("    %-10s x=%d y=%d w=%d h=%d\n", reg.Reason, reg.Box.X, reg.Box.Y, reg.Box.Width, reg.Box.Height)
		}
	}
	return nil
}

func loadTokens(path string) ([]model.OcrToken, error) {
	data, err := fileutil.ReadFileSafe(path, 0)
	if err != nil {
		return nil, err
	}
	var tokens []model.OcrToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, engerrors.New(engerrors.ErrFileFormat, "invalid token file").WithFile(path).WithCause(err)
	}
	return tokens, nil
}

// tokenText 词元拼接为分类文本
func tokenText(tokens []model.OcrToken) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	return strings.Join(words, " ")
}

// ==========================================
// process 命令
// ==========================================

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Run the full pipeline: read/OCR, classify, extract, mask and redact",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	engine := newEngine()
	var results []*model.Result
	var firstErr error
	for _, path := range args {
		res, err := engine.ProcessFile(cmd.Context(), path)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, res)
	}

	if jsonOutput {
		if len(results) == 1 {
			if err := printJSON(results[0]); err != nil {
				return err
			}
		} else if err := printJSON(results); err != nil {
			return err
		}
		return firstErr
	}
	for _, res := range results {
		printResult(res)
	}
	return firstErr
}

func init() {
	for _, c := range []*cobra.Command{classifyCmd, extractCmd} {
		c.Flags().StringVar(&inputText, "text", "", "analyse this text instead of a file")
	}
	extractCmd.Flags().StringVarP(&docTypeName, "type", "t", "", "document type (aadhar, pan, invoice, dl, voter, id, other)")
	extractCmd.Flags().BoolVar(&showRaw, "raw", false, "print unmasked values")

	redactCmd.Flags().StringVarP(&docTypeName, "type", "t", "", "document type (default: classify OCR text)")
	redactCmd.Flags().StringVar(&tokensPath, "tokens", "", "JSON file with OCR tokens")
}
