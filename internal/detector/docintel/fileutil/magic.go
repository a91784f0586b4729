package fileutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// Category 文件分类
type Category string

// 文件分类常量
const (
	CategoryText  Category = "text"
	CategoryPDF   Category = "pdf"
	CategoryImage Category = "image"
	CategoryOther Category = "other"
)

// DetectionMethod 检测方法
type DetectionMethod string

const (
	MethodMagic     DetectionMethod = "magic"     // 通过魔数检测
	MethodContent   DetectionMethod = "content"   // 通过内容特征检测
	MethodExtension DetectionMethod = "extension" // 通过扩展名检测（不可靠）
	MethodUnknown   DetectionMethod = "unknown"   // 未知
)

// FileType 表示文件类型
type FileType struct {
	Extension string          // 文件扩展名 (不含点)
	MimeType  string          // MIME类型
	Category  Category        // 分类
	Method    DetectionMethod // 检测方法
	Reliable  bool            // 检测结果是否可靠
}

// TypeUnknown 未知类型
var TypeUnknown = FileType{"", "application/octet-stream", CategoryOther, MethodUnknown, false}

// 扩展名到文件类型的映射（仅作为最后备选）
var extensionMap = map[string]FileType{
	"txt":  {"txt", "text/plain", CategoryText, MethodExtension, false},
	"text": {"text", "text/plain", CategoryText, MethodExtension, false},
	"pdf":  {"pdf", "application/pdf", CategoryPDF, MethodExtension, false},
	"jpg":  {"jpg", "image/jpeg", CategoryImage, MethodExtension, false},
	"jpeg": {"jpeg", "image/jpeg", CategoryImage, MethodExtension, false},
	"png":  {"png", "image/png", CategoryImage, MethodExtension, false},
	"bmp":  {"bmp", "image/bmp", CategoryImage, MethodExtension, false},
	"tif":  {"tif", "image/tiff", CategoryImage, MethodExtension, false},
	"tiff": {"tiff", "image/tiff", CategoryImage, MethodExtension, false},
	"webp": {"webp", "image/webp", CategoryImage, MethodExtension, false},
}

// 可解码的图片格式
var supportedImages = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "bmp": true, "tif": true, "tiff": true, "webp": true, "gif": true,
}

// headerSize 魔数检测读取的字节数
const headerSize = 8192

// DetectFileType 检测文件类型，魔数优先，其次内容特征，最后扩展名
func DetectFileType(filePath string) (FileType, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return TypeUnknown, err
	}
	defer file.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return TypeUnknown, err
	}
	header = header[:n]

	if ft := DetectBytes(header); ft.Method != MethodUnknown {
		return ft, nil
	}
	return detectByExtension(filePath), nil
}

// DetectBytes 根据内容检测类型
func DetectBytes(header []byte) FileType {
	if len(header) == 0 {
		return TypeUnknown
	}

	// 步骤 1: 魔数检测
	if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
		ft := FileType{
			Extension: kind.Extension,
			MimeType:  kind.MIME.Value,
			Method:    MethodMagic,
			Reliable:  true,
			Category:  CategoryOther,
		}
		switch {
		case kind.Extension == "pdf":
			ft.Category = CategoryPDF
		case filetype.IsImage(header):
			ft.Category = CategoryImage
		}
		return ft
	}

	// 步骤 2: 内容特征检测
	if isTextContent(header) {
		return FileType{"txt", "text/plain", CategoryText, MethodContent, true}
	}
	return TypeUnknown
}

func detectByExtension(filePath string) FileType {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	if ft, ok := extensionMap[ext]; ok {
		return ft
	}
	return TypeUnknown
}

// isTextContent 判断是否为文本内容（UTF-8 或带 BOM 的 UTF-16）
func isTextContent(buf []byte) bool {
	if bytes.HasPrefix(buf, []byte{0xFF, 0xFE}) || bytes.HasPrefix(buf, []byte{0xFE, 0xFF}) {
		return true
	}
	// 截断的多字节字符不算错误
	for i := 0; i < 3 && len(buf) > 0 && !utf8.Valid(buf); i++ {
		buf = buf[:len(buf)-1]
	}
	if !utf8.Valid(buf) {
		return false
	}
	for _, b := range buf {
		if b == 0 {
			return false
		}
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			return false
		}
	}
	return true
}

// IsImage 是否为可解码的图片
func (ft FileType) IsImage() bool {
	return ft.Category == CategoryImage && supportedImages[ft.Extension]
}

// IsSupported 是否为引擎可处理的输入
func (ft FileType) IsSupported() bool {
	switch ft.Category {
	case CategoryText, CategoryPDF:
		return true
	case CategoryImage:
		return supportedImages[ft.Extension]
	}
	return false
}

// String 返回类型描述
func (ft FileType) String() string {
	if ft.Extension == "" {
		return "unknown"
	}
	return ft.Extension + " (" + ft.MimeType + ", " + string(ft.Method) + ")"
}
