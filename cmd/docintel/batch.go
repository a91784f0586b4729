package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"docIntelligence/internal/detector/docintel"
	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
	"docIntelligence/internal/detector/docintel/model"
	"docIntelligence/internal/detector/docintel/report"
)

var (
	workers      int
	recursive    bool
	reportPath   string
	reportFormat string
)

// ==========================================
// batch 命令
// ==========================================

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every supported file in a directory",
	Long: `Process all text, PDF and image files of a directory in parallel.
Previously generated *_redacted.* files are skipped. With --report the
masked results are written as JSON or XLSX (chosen by extension or
--report-format).`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	if !cmd.Flags().Changed("workers") {
		workers = appConfig.Batch.Workers
	}
	if !cmd.Flags().Changed("recursive") {
		recursive = appConfig.Batch.Recursive
	}
	if reportPath == "" {
		reportPath = appConfig.Report.Path
	}
	if reportFormat == "" && reportPath != "" && appConfig.Report.Path == reportPath {
		reportFormat = appConfig.Report.Format
	}

	if !fileutil.IsDirectory(args[0]) {
		return engerrors.New(engerrors.ErrInvalidInput, "not a directory").WithFile(args[0])
	}
	files, err := fileutil.CollectFiles(args[0], recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		colorYellow.Println("No supported files found")
		return nil
	}
	if verbose {
		colorCyan.Printf("Processing %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results, errs := processBatch(cmd.Context(), newEngine(), files, workers)
	elapsed := time.Since(start)

	if reportPath != "" {
		if err := report.WriteFile(reportPath, reportFormat, results); err != nil {
			return err
		}
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"summary":    report.Summarize(results),
			"documents":  results,
			"total_time": elapsed.String(),
		})
	}

	for _, res := range results {
		if verbose {
			printResult(res)
		} else {
			printSummaryLine(res)
		}
	}
	printBatchSummary(report.Summarize(results), errs, elapsed)
	if reportPath != "" {
		colorGreen.Printf("Report written to %s\n", reportPath)
	}
	return nil
}

// processBatch 使用信号量限制并发，结果按输入顺序返回
func processBatch(ctx context.Context, engine docintel.Engine, files []string, workers int) ([]*model.Result, *engerrors.ErrorCollection) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]*model.Result, len(files))
	errs := engerrors.NewErrorCollection()
	var mu sync.Mutex
	var done int32

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, filePath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := engine.ProcessFile(ctx, filePath)
			results[i] = res
			if err != nil {
				mu.Lock()
				errs.Add(err)
				mu.Unlock()
			}
			n := atomic.AddInt32(&done, 1)
			if verbose && !jsonOutput {
				fmt.Printf("\r[%d/%d] %s", n, len(files), res.FileName)
				if int(n) == len(files) {
					fmt.Println()
				}
			}
		}(i, file)
	}
	wg.Wait()
	return results, errs
}

func init() {
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of parallel workers")
	batchCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into sub-directories")
	batchCmd.Flags().StringVar(&reportPath, "report", "", "write a summary report (.json or .xlsx)")
	batchCmd.Flags().StringVar(&reportFormat, "report-format", "", "report format: json or xlsx")
}
