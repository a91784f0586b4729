package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/model"
)

func sampleResults() []*model.Result {
	pan := model.NewResult("/in/pan.txt", "pan.txt")
	pan.Source = "text"
	pan.Classification = model.ClassificationResult{DocumentType: model.PanCard, Confidence: 0.92}
	pan.RawFields = model.NewFieldMap(model.FieldSpec{Key: "PAN_Number", Label: "PAN Number"}, model.FieldSpec{Key: "Name", Label: "Name"})
	pan.RawFields.Set("PAN_Number", "ABCDE1234F")
	pan.MaskedFields = model.NewFieldMap(model.FieldSpec{Key: "PAN_Number", Label: "PAN Number"}, model.FieldSpec{Key: "Name", Label: "Name"})
	pan.MaskedFields.Set("PAN_Number", "ABCXX1234X")
	pan.RedactedImagePath = "/out/pan_redacted.jpg"
	pan.ProcessTime = 15 * time.Millisecond

	bad := model.NewResult("/in/bad.png", "bad.png")
	bad.SetError(errors.New("cannot decode image"))

	return []*model.Result{pan, nil, bad}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults())
	if s.Total != 2 || s.Succeeded != 1 || s.Failed != 1 || s.Redacted != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.ByType["PAN Card"] != 1 || len(s.TypeNames()) != 1 {
		t.Errorf("by type = %v", s.ByType)
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleResults()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "ABCDE1234F") {
		t.Error("raw values must not appear in reports")
	}
	if !strings.Contains(out, "ABCXX1234X") || !strings.Contains(out, `"Name":null`) {
		t.Errorf("masked fields missing: %s", out)
	}

	var decoded struct {
		Summary   Summary           `json:"summary"`
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Summary.Total != 2 || len(decoded.Documents) != 2 {
		t.Errorf("decoded = %+v", decoded.Summary)
	}
}

func TestXLSXWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&XLSXWriter{}).Write(&buf, sampleResults()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	docs, err := f.GetRows(SheetDocuments)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("documents rows = %d", len(docs))
	}
	if docs[1][0] != "pan.txt" || docs[1][1] != "PAN Card" || docs[1][2] != "92" || docs[2][8] != "failed" {
		t.Errorf("document rows = %v", docs)
	}

	fields, err := f.GetRows(SheetFields)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"File", "Document Type", "Field", "Value"},
		{"pan.txt", "PAN Card", "PAN Number", "ABCXX1234X"},
		{"pan.txt", "PAN Card", "Name", "Not found"},
	}
	if len(fields) != len(want) {
		t.Fatalf("field rows = %v", fields)
	}
	for i := range want {
		if strings.Join(fields[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, fields[i], want[i])
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"report.json", "report.xlsx"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, "", sampleResults()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written", name)
		}
	}

	err := WriteFile(filepath.Join(dir, "missing", "r.json"), "", nil)
	if !engerrors.HasCode(err, engerrors.ErrReportFailed) {
		t.Errorf("err = %v", err)
	}
	if _, err := NewWriter("csv"); !engerrors.HasCode(err, engerrors.ErrNotSupported) {
		t.Errorf("csv err = %v", err)
	}
}
