package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	engerrors "docIntelligence/internal/detector/docintel/errors"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

var (
	pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	jpgHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

func TestDetectBytes(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		ext      string
		category Category
		method   DetectionMethod
	}{
		{"png", pngHeader, "png", CategoryImage, MethodMagic},
		{"jpeg", jpgHeader, "jpg", CategoryImage, MethodMagic},
		{"pdf", pdfHeader, "pdf", CategoryPDF, MethodMagic},
		{"text", []byte("UIDAI\nName: Ravi Kumar\n"), "txt", CategoryText, MethodContent},
		{"utf16", []byte{0xFF, 0xFE, 'A', 0}, "txt", CategoryText, MethodContent},
		{"binary", []byte{0x01, 0x02, 0x00, 0x03}, "", CategoryOther, MethodUnknown},
		{"empty", nil, "", CategoryOther, MethodUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBytes(tt.data)
			if got.Extension != tt.ext || got.Category != tt.category || got.Method != tt.method {
				t.Errorf("DetectBytes = %+v", got)
			}
		})
	}
}

func TestDetectFileType_ExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "scan.webp", []byte{0x01, 0x00, 0x02})
	ft, err := DetectFileType(p)
	if err != nil {
		t.Fatal(err)
	}
	if ft.Extension != "webp" || ft.Method != MethodExtension || ft.Reliable {
		t.Errorf("ft = %+v", ft)
	}
	if !ft.IsImage() || !ft.IsSupported() {
		t.Error("webp should be a supported image")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", nil)
	big := writeFile(t, dir, "big.txt", make([]byte, 64))
	ok := writeFile(t, dir, "ok.txt", []byte("hello"))

	tests := []struct {
		path string
		code engerrors.ErrorCode
	}{
		{filepath.Join(dir, "missing.txt"), engerrors.ErrFileNotFound},
		{empty, engerrors.ErrFileEmpty},
		{big, engerrors.ErrFileTooLarge},
		{dir, engerrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		err := ValidateFile(tt.path, 32)
		if engerrors.GetErrorCode(err) != tt.code {
			t.Errorf("ValidateFile(%s) = %v, want code %d", tt.path, err, tt.code)
		}
	}
	if err := ValidateFile(ok, 32); err != nil {
		t.Errorf("ValidateFile(ok) = %v", err)
	}
	if data, err := ReadFileSafe(ok, 0); err != nil || string(data) != "hello" {
		t.Errorf("ReadFileSafe = %q, %v", data, err)
	}
}

func TestGetFileInfo(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.png", pngHeader)
	info, err := GetFileInfo(p)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "card.png" || info.Type.Extension != "png" || info.Extension != ".png" {
		t.Errorf("info = %+v", info)
	}
	if !FileExists(p) || FileExists(dir) || !IsDirectory(dir) {
		t.Error("existence helpers disagree")
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.png", pngHeader)
	b := writeFile(t, dir, "b.txt", []byte("x"))
	writeFile(t, dir, "a_redacted.jpg", jpgHeader)
	writeFile(t, dir, "notes.docx", []byte("x"))
	nested := writeFile(t, dir, "sub/c.pdf", pdfHeader)

	flat, err := CollectFiles(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(flat, []string{a, b}) {
		t.Errorf("flat = %v", flat)
	}

	all, err := CollectFiles(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(all, []string{a, b, nested}) {
		t.Errorf("recursive = %v", all)
	}
}

func TestRedactedPath(t *testing.T) {
	if got := RedactedPath("/in/card.png", "", "jpg"); got != "/in/card_redacted.jpg" {
		t.Errorf("RedactedPath = %q", got)
	}
	if got := RedactedPath("/in/card.png", "/out", ".png"); got != "/out/card_redacted.png" {
		t.Errorf("RedactedPath = %q", got)
	}
	if !IsRedactedOutput("/x/card_redacted.jpg") || IsRedactedOutput("/x/card.jpg") {
		t.Error("IsRedactedOutput mismatch")
	}
}
