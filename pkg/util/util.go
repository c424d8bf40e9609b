package util

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成一个标准的 UUID (v4)
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateShortUUID 生成一个不带中划线的短 UUID
func GenerateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GenerateStoredFileName 为上传文件生成存储名，保留原始扩展名避免同名覆盖
func GenerateStoredFileName(originalName string) string {
	ext := filepath.Ext(originalName)
	return GenerateShortUUID() + ext
}
