package storage

import "context"

// StoredFile 附件存储后的稳定引用
type StoredFile struct {
	Path     string `json:"path"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
}

// AttachmentStore 附件存储适配器。核心只持有引用，不关心文件内容。
// DeleteMany 必须幂等：引用不存在视为删除成功。
type AttachmentStore interface {
	Store(ctx context.Context, data []byte, mimeType string, originalName string) (*StoredFile, error)
	DeleteMany(ctx context.Context, paths []string) (succeeded []string, failed []string)
}
