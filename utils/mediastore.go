package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"taskhive/config"
	"taskhive/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore wraps the external object store used for comment
// attachments and project files.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMediaStore connects to the configured object store and makes sure
// the upload bucket exists.
func NewMediaStore(cfg config.MediaStoreConfig) (*MediaStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("media store endpoint is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MediaStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// Upload stores the payload under a fresh object key and returns the
// public URL plus the key needed for later deletion.
func (ms *MediaStore) Upload(ctx context.Context, fileName, contentType string, data []byte) (url, objectKey string, err error) {
	objectKey = uuid.NewString() + filepath.Ext(fileName)

	_, err = ms.client.PutObject(ctx, ms.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object: %w", err)
	}

	return ms.publicURL + "/" + objectKey, objectKey, nil
}

// Delete removes an object from the store
func (ms *MediaStore) Delete(ctx context.Context, objectKey string) error {
	return ms.client.RemoveObject(ctx, ms.bucket, objectKey, minio.RemoveObjectOptions{})
}

// DecodeBase64Payload decodes an uploaded file body. Both raw base64
// and data-URI payloads ("data:image/png;base64,...") are accepted; the
// content type embedded in a data URI wins over the caller's.
func DecodeBase64Payload(payload, contentType string) ([]byte, string, error) {
	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ";")
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, contentType, nil
}

// CategoryFromMIME buckets an upload by its MIME type for display
func CategoryFromMIME(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.AttachmentCategoryImage
	case strings.HasPrefix(contentType, "video/"):
		return models.AttachmentCategoryVideo
	case contentType == "application/pdf":
		return models.AttachmentCategoryPDF
	case contentType == "application/vnd.ms-excel",
		contentType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return models.AttachmentCategoryExcel
	case contentType == "application/msword",
		contentType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return models.AttachmentCategoryWord
	default:
		return models.AttachmentCategoryOther
	}
}
