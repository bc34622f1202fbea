package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cineticket/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ImageService stores binary objects and hands out time-limited GET URLs.
type ImageService interface {
	GetImageURL(ctx context.Context, objectName string, expiry time.Duration, bucket string) (string, error)
	UploadBytes(ctx context.Context, data []byte, objectName, contentType, bucket string) error
	Upload(ctx context.Context, r io.Reader, size int64, objectName, contentType, bucket string) error
}

type minioStorage struct {
	client *minio.Client
	log    *zap.Logger
}

func NewMinioStorage(ctx context.Context, config utils.StorageConfig, log *zap.Logger) (ImageService, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	s := &minioStorage{client: client, log: log.With(zap.String("component", "storage"))}
	for _, bucket := range []string{config.PosterBucket, config.TicketBucket} {
		if err := s.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *minioStorage) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	s.log.Info("Bucket created", zap.String("bucket", bucket))
	return nil
}

func (s *minioStorage) GetImageURL(ctx context.Context, objectName string, expiry time.Duration, bucket string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, objectName, err)
	}
	return u.String(), nil
}

func (s *minioStorage) UploadBytes(ctx context.Context, data []byte, objectName, contentType, bucket string) error {
	return s.Upload(ctx, bytes.NewReader(data), int64(len(data)), objectName, contentType, bucket)
}

func (s *minioStorage) Upload(ctx context.Context, r io.Reader, size int64, objectName, contentType, bucket string) error {
	_, err := s.client.PutObject(ctx, bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.log.Error("Failed to upload object",
			zap.Error(err),
			zap.String("bucket", bucket),
			zap.String("object", objectName))
		return fmt.Errorf("upload %s/%s: %w", bucket, objectName, err)
	}
	return nil
}
