package redactor

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	// 注册额外的解码器
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	engerrors "docIntelligence/internal/detector/docintel/errors"
	"docIntelligence/internal/detector/docintel/fileutil"
	"docIntelligence/internal/detector/docintel/model"
)

// OutputOptions 输出配置
type OutputOptions struct {
	Dir         string // 输出目录，空则与源文件同目录
	Format      string // jpg / png
	JPEGQuality int
}

// DefaultOutputOptions 默认输出 <base>_redacted.jpg
func DefaultOutputOptions() OutputOptions {
	return OutputOptions{Format: "jpg", JPEGQuality: 95}
}

// FileResult 文件涂黑结果
type FileResult struct {
	SourcePath string
	OutputPath string
	Format     string // 源图格式
	Regions    []Region
}

// LoadImage 解码图像文件，失败时返回 ErrImageLoad
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", engerrors.ImageLoadError(path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", engerrors.ImageLoadError(path, err)
	}
	return img, format, nil
}

// SaveImage 按格式编码写出
func SaveImage(img image.Image, path string, opts OutputOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return engerrors.ImageEncodeError(path, err)
	}

	switch strings.ToLower(opts.Format) {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg", "":
		q := opts.JPEGQuality
		if q <= 0 || q > 100 {
			q = jpeg.DefaultQuality
		}
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: q})
	default:
		err = fmt.Errorf("unsupported output format %q", opts.Format)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return engerrors.ImageEncodeError(path, err)
	}
	return nil
}

// RedactFile 读取图像、涂黑并写出 <base>_redacted.<ext>
func (r *Redactor) RedactFile(srcPath string, tokens []model.OcrToken, t model.DocumentType, opts OutputOptions) (*FileResult, error) {
	img, format, err := LoadImage(srcPath)
	if err != nil {
		return nil, err
	}

	out, regions := r.Redact(img, tokens, t)

	ext := strings.ToLower(opts.Format)
	if ext == "" || ext == "jpeg" {
		ext = "jpg"
	}
	outPath := fileutil.RedactedPath(srcPath, opts.Dir, ext)
	if err := SaveImage(out, outPath, opts); err != nil {
		return nil, err
	}

	return &FileResult{
		SourcePath: srcPath,
		OutputPath: outPath,
		Format:     format,
		Regions:    regions,
	}, nil
}
