package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/global-ministries/global-connect-sub001/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOClient keeps a copy of every uploaded import file.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg *config.Config, logger *zap.Logger) (*MinIOClient, error) {
	minioCfg := cfg.MinIO
	client, err := minio.New(minioCfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioCfg.AccessKey, minioCfg.SecretKey, ""),
		Secure: minioCfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, minioCfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, minioCfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("bucket created", zap.String("bucket", minioCfg.Bucket))
	}

	return &MinIOClient{
		client: client,
		bucket: minioCfg.Bucket,
	}, nil
}

// ImportObjectKey builds imports/{actor}/{timestamp}-{filename}.
func ImportObjectKey(actorID uuid.UUID, filename string, at time.Time) string {
	return path.Join("imports", actorID.String(), at.UTC().Format("20060102T150405Z")+"-"+path.Base(filename))
}

// ArchiveImport uploads the raw import file and returns its object key.
func (m *MinIOClient) ArchiveImport(ctx context.Context, actorID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	objectKey := ImportObjectKey(actorID, filename, time.Now())
	_, err := m.client.PutObject(ctx, m.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive import file: %w", err)
	}
	return objectKey, nil
}
