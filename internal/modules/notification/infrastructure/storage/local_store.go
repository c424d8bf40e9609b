package storage

import (
	"context"
	"os"
	"path/filepath"

	domainStorage "OrgLink/internal/modules/notification/domain/storage"
	"OrgLink/pkg/util"
)

// LocalStore 本地磁盘附件存储
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(ctx context.Context, data []byte, mimeType string, originalName string) (*domainStorage.StoredFile, error) {
	name := util.GenerateStoredFileName(originalName)
	fullPath := filepath.Join(s.dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, err
	}
	return &domainStorage.StoredFile{
		Path:     filepath.ToSlash(fullPath),
		FileType: mimeType,
		FileName: originalName,
	}, nil
}

// DeleteMany 逐个删除，引用不存在按成功处理（幂等）
func (s *LocalStore) DeleteMany(ctx context.Context, paths []string) (succeeded []string, failed []string) {
	for _, p := range paths {
		err := os.Remove(filepath.FromSlash(p))
		if err != nil && !os.IsNotExist(err) {
			failed = append(failed, p)
			continue
		}
		succeeded = append(succeeded, p)
	}
	return succeeded, failed
}
