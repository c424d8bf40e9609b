package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	domainStorage "OrgLink/internal/modules/notification/domain/storage"
	"OrgLink/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store 对象存储附件后端，引用形如 https://bucket.s3.region.amazonaws.com/key
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	region    string
	keyPrefix string
}

func NewS3Store(ctx context.Context, region string, bucket string, keyPrefix string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}, nil
}

func (s *S3Store) Store(ctx context.Context, data []byte, mimeType string, originalName string) (*domainStorage.StoredFile, error) {
	key := util.GenerateStoredFileName(originalName)
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, err
	}

	return &domainStorage.StoredFile{
		Path:     fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, url.PathEscape(key)),
		FileType: mimeType,
		FileName: originalName,
	}, nil
}

// DeleteMany 逐个删除，S3 对不存在的 key 返回成功，天然幂等
func (s *S3Store) DeleteMany(ctx context.Context, paths []string) (succeeded []string, failed []string) {
	for _, p := range paths {
		key, err := s.keyFromPath(p)
		if err != nil {
			failed = append(failed, p)
			continue
		}
		_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			failed = append(failed, p)
			continue
		}
		succeeded = append(succeeded, p)
	}
	return succeeded, failed
}

func (s *S3Store) keyFromPath(p string) (string, error) {
	u, err := url.Parse(p)
	if err != nil {
		return "", err
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return "", err
	}
	return key, nil
}
