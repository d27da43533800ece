package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// AssetService 二进制资产存储（品目图片等），MinIO后端。
// 上传返回稳定URL，按不透明的对象ID删除。
type AssetService struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewAssetService(client *minio.Client, bucket, baseURL string) *AssetService {
	return &AssetService{client: client, bucket: bucket, baseURL: baseURL}
}

// UploadedAsset 上传结果
type UploadedAsset struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func (s *AssetService) Upload(ctx context.Context, filename, contentType string, size int64, reader io.Reader) (*UploadedAsset, error) {
	if s.client == nil {
		return nil, fmt.Errorf("asset store not configured")
	}

	now := time.Now()
	assetID := uuid.New().String()[:32]
	objectName := fmt.Sprintf("%d/%02d/%s%s", now.Year(), now.Month(), assetID, filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}

	return &UploadedAsset{
		ID:          objectName,
		URL:         fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName),
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Delete 按对象ID删除，无版本概念
func (s *AssetService) Delete(ctx context.Context, objectID string) error {
	if s.client == nil {
		return fmt.Errorf("asset store not configured")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete asset %s: %w", objectID, err)
	}
	return nil
}
