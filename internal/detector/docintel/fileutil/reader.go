package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	engerrors "docIntelligence/internal/detector/docintel/errors"
)

// FileInfo 文件信息
type FileInfo struct {
	Path      string   // 绝对路径
	Name      string   // 文件名
	Size      int64    // 文件大小
	Type      FileType // 文件类型
	Extension string   // 原始扩展名
}

// GetFileInfo 获取文件信息
func GetFileInfo(filePath string) (*FileInfo, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, engerrors.FileReadError(filePath, err)
	}

	stat, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, engerrors.FileNotFoundError(absPath)
		}
		return nil, engerrors.FileReadError(absPath, err)
	}
	if stat.IsDir() {
		return nil, engerrors.New(engerrors.ErrInvalidInput, "path is a directory").WithFile(absPath)
	}

	fileType, err := DetectFileType(absPath)
	if err != nil {
		fileType = TypeUnknown
	}

	return &FileInfo{
		Path:      absPath,
		Name:      stat.Name(),
		Size:      stat.Size(),
		Type:      fileType,
		Extension: filepath.Ext(stat.Name()),
	}, nil
}

// ValidateFile 验证文件是否可用于处理
func ValidateFile(filePath string, maxSize int64) error {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return engerrors.FileNotFoundError(filePath)
		}
		return engerrors.FileReadError(filePath, err)
	}
	if info.IsDir() {
		return engerrors.New(engerrors.ErrInvalidInput, "path is a directory").WithFile(filePath)
	}
	if info.Size() == 0 {
		return engerrors.FileEmptyError(filePath)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return engerrors.FileTooLargeError(filePath, info.Size(), maxSize)
	}
	return nil
}

// ReadFileSafe 安全读取文件内容（带大小限制）
func ReadFileSafe(filePath string, maxSize int64) ([]byte, error) {
	if err := ValidateFile(filePath, maxSize); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, engerrors.FileReadError(filePath, err)
	}
	return content, nil
}

// FileExists 检查文件是否存在
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDirectory 检查路径是否为目录
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CollectFiles 收集目录下可处理的文件（按路径排序）
// 已生成的 *_redacted.* 文件会被跳过
func CollectFiles(dir string, recursive bool) ([]string, error) {
	var files []string
	walk := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsRedactedOutput(path) {
			return nil
		}
		ft := detectByExtension(path)
		if ft.IsSupported() {
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, engerrors.FileReadError(dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// RedactedPath 返回涂黑图片的输出路径 <dir>/<base>_redacted.<ext>
func RedactedPath(srcPath, outDir, ext string) string {
	if outDir == "" {
		outDir = filepath.Dir(srcPath)
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(outDir, base+"_redacted."+strings.TrimPrefix(ext, "."))
}

// IsRedactedOutput 是否为引擎生成的涂黑图片
func IsRedactedOutput(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(base, "_redacted")
}
