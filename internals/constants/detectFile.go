package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = 1
	FileTypeUnknown = 99
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}

func IsImageFile(filename string) bool {
	return DetectFileTypeFromExt(filename) == FileTypeImage
}
