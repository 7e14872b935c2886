// File: /services/media_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"motorestore-api/config"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// MediaService uploads motor media to an S3-compatible bucket and hands
// back a stable public URL. A failed upload never touches the motor record;
// callers attach the URL only after Upload returns successfully.
type MediaService struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// UploadResult carries the stable URL and the resolved media kind
type UploadResult struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

func NewMediaService(cfg *config.Config) (*MediaService, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MediaService{
		client:  client,
		bucket:  cfg.StorageBucket,
		baseURL: strings.TrimRight(cfg.MediaBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the media bucket if it does not exist yet
func (ms *MediaService) EnsureBucket(ctx context.Context) error {
	exists, err := ms.client.BucketExists(ctx, ms.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := ms.client.MakeBucket(ctx, ms.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", ms.bucket, err)
	}
	return nil
}

// Upload streams the file into the bucket under motors/<id>/ and returns
// its public URL. The media kind is inferred from the content type prefix.
func (ms *MediaService) Upload(ctx context.Context, motorID, filename, contentType string, reader io.Reader, size int64) (*UploadResult, error) {
	kind := KindFromContentType(contentType)

	objectKey := fmt.Sprintf("motors/%s/%d-%s", motorID, time.Now().UnixMilli(), sanitizeFilename(filename))

	_, err := ms.client.PutObject(ctx, ms.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	return &UploadResult{
		URL:  fmt.Sprintf("%s/%s/%s", ms.baseURL, ms.bucket, objectKey),
		Kind: kind,
		Key:  objectKey,
	}, nil
}

// KindFromContentType maps a MIME type onto the two supported media kinds.
// Anything that is not a video is treated as an image.
func KindFromContentType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return MediaKindVideo
	}
	return MediaKindImage
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "-")
	if base == "." || base == "" {
		return "upload"
	}
	return base
}
