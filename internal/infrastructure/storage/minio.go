package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/emotioncoach/emotion-coach/pkg/config"
)

// MinIOClient archives uploaded recordings
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public base URL when MinIO sits behind a reverse proxy
	expiry    time.Duration
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		expiry:    cfg.URLExpiry,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadObjectKey builds uploads/yyyy/mm/dd/<id><ext>
func UploadObjectKey(now time.Time, id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("uploads", now.UTC().Format("2006/01/02"), id+ext)
}

// ArchiveFile uploads a local file and returns a presigned URL for it
func (m *MinIOClient) ArchiveFile(ctx context.Context, objectName, filePath, contentType string) (string, error) {
	if _, err := m.client.FPutObject(ctx, m.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return m.GetFileURL(ctx, objectName)
}

// GetFileURL gets a presigned URL, rewritten onto the public base URL when one is configured
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string) (string, error) {
	expiry := m.expiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return rewriteHost(u, m.publicURL), nil
}

// rewriteHost keeps path and query of u and swaps scheme://host for publicURL
func rewriteHost(u *url.URL, publicURL string) string {
	if publicURL == "" {
		return u.String()
	}
	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}
	return publicURL + pathAndQuery
}

// Ping checks that the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}
