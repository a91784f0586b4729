package main

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"docIntelligence/internal/config"
	"docIntelligence/internal/detector/docintel"
	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
)

// countingEngine 只实现 ProcessFile，其余方法不会被批处理调用
type countingEngine struct {
	docintel.Engine
	running int32
	peak    int32
}

func (e *countingEngine) ProcessFile(ctx context.Context, path string) (*model.Result, error) {
	n := atomic.AddInt32(&e.running, 1)
	for {
		p := atomic.LoadInt32(&e.peak)
		if n <= p || atomic.CompareAndSwapInt32(&e.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&e.running, -1)

	res := model.NewResult(path, filepath.Base(path))
	if strings.HasPrefix(filepath.Base(path), "bad") {
		err := engerrors.FileNotFoundError(path)
		res.SetError(err)
		return res, err
	}
	return res, nil
}

func TestProcessBatch(t *testing.T) {
	files := []string{"/d/a.txt", "/d/bad1.txt", "/d/c.png", "/d/bad2.pdf", "/d/e.txt", "/d/f.txt"}
	engine := &countingEngine{}

	results, errs := processBatch(context.Background(), engine, files, 2)

	if len(results) != len(files) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.FilePath != files[i] {
			t.Errorf("results[%d] = %s, want %s", i, res.FilePath, files[i])
		}
	}
	if got := len(errs.Errors()); got != 2 {
		t.Errorf("errors = %d, want 2", got)
	}
	if engine.peak > 2 {
		t.Errorf("peak concurrency %d exceeds worker count", engine.peak)
	}
}

func TestProcessBatchZeroWorkers(t *testing.T) {
	results, errs := processBatch(context.Background(), &countingEngine{}, []string{"/x/a.txt"}, 0)
	if len(results) != 1 || results[0] == nil || errs.HasErrors() {
		t.Errorf("unexpected outcome: %v %s", results, errs.Summary())
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Timeout = 90 * time.Second
	cfg.OCR.Enable = false
	cfg.Redaction.Padding = 4
	cfg.Redaction.OutputFormat = "png"

	ec := engineConfig(cfg)
	if ec.Timeout != 90 {
		t.Errorf("Timeout = %d", ec.Timeout)
	}
	if ec.EnableOCR {
		t.Error("OCR should be disabled")
	}
	if ec.Padding != 4 || ec.OutputFormat != "png" {
		t.Errorf("redaction mapping wrong: %+v", ec)
	}
	if ec.MinConfidence != cfg.Redaction.MinConfidence || ec.PatternWeight != cfg.Engine.PatternWeight {
		t.Errorf("defaults not carried: %+v", ec)
	}
}
