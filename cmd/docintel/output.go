package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docIntelligence/internal/config"
	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/report"
)

// ==========================================
// 输出辅助
// ==========================================

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSeparator() {
	fmt.Println(strings.Repeat("─", 60))
}

func printFields(fields *model.FieldMap) {
	if fields == nil || fields.Len() == 0 {
		colorYellow.Println("  (no fields for this document type)")
		return
	}
	for _, f := range fields.Fields() {
		label := fmt.Sprintf("  %-16s ", f.Label+":")
		if f.Found {
			colorWhite.Printf("%s%s\n", label, f.Value)
		} else {
			colorYellow.Printf("%s%s\n", label, model.NotFound)
		}
	}
}

func printResult(res *model.Result) {
	if res == nil {
		return
	}
	if !res.Success {
		colorRed.Printf("✗ %s: %s\n", res.FileName, res.Error)
		return
	}
	colorGreen.Printf("✓ %s\n", res.FileName)
	fmt.Printf("  %-16s %s (%d%%)\n", "Type:", res.DocumentType(), res.Classification.Percent())
	printFields(res.MaskedFields)
	if res.RedactedImagePath != "" {
		colorCyan.Printf("  %-16s %s (%d regions)\n", "Redacted image:", res.RedactedImagePath, res.RedactedRegions)
	}
	if verbose {
		fmt.Printf("  %-16s %s, %d chars, %d tokens, %v\n", "Source:", res.Source, res.TextLength, res.TokenCount, res.ProcessTime)
	}
}

func printSummaryLine(res *model.Result) {
	if res == nil {
		return
	}
	if res.Success {
		colorGreen.Print("✓ ")
	} else {
		colorRed.Print("✗ ")
	}
	fmt.Print(res.Summary())
}

func printBatchSummary(s report.Summary, errs *engerrors.ErrorCollection, elapsed time.Duration) {
	printSeparator()
	fmt.Printf("Total: %d  Succeeded: %d  Failed: %d  Redacted images: %d  Time: %v\n",
		s.Total, s.Succeeded, s.Failed, s.Redacted, elapsed.Round(time.Millisecond))
	for _, name := range s.TypeNames() {
		fmt.Printf("  %-16s %d\n", name, s.ByType[name])
	}
	if errs != nil && (errs.HasErrors() || len(errs.Warnings()) > 0) {
		colorYellow.Print(errs.Summary())
	}
}

// ==========================================
// status / version 命令
// ==========================================

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine, OCR and host status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	st := newEngine().Status()
	host, hostErr := config.GetHostInfo()
	mem := config.ProcessMemoryMB()

	if jsonOutput {
		out := map[string]any{
			"engine":    st,
			"version":   config.Version,
			"memory_mb": mem,
		}
		if hostErr == nil {
			out["host"] = host
		}
		return printJSON(out)
	}

	colorCyan.Printf("%s %s\n", appName, config.GetUserAgent())
	printSeparator()
	fmt.Printf("%-16s %s\n", "Processors:", strings.Join(st.Processors, ", "))
	fmt.Printf("%-16s %s\n", "File types:", strings.Join(st.SupportedTypes, ", "))
	fmt.Printf("%-16s %s\n", "Document types:", strings.Join(st.DocumentTypes, ", "))
	switch {
	case st.OCREngine == "":
		colorYellow.Printf("%-16s disabled\n", "OCR:")
	case st.OCRAvailable:
		colorGreen.Printf("%-16s %s %s\n", "OCR:", st.OCREngine, st.OCRVersion)
	default:
		colorRed.Printf("%-16s %s not available (install tesseract)\n", "OCR:", st.OCREngine)
	}
	if hostErr == nil {
		fmt.Printf("%-16s %s (%s)\n", "Host:", host.Hostname, host.Platform)
	}
	fmt.Printf("%-16s %.1f MB\n", "Memory:", mem)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetFullVersionInfo())
	},
}
