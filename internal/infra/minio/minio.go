package infra_minio

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/humanbelnik/catalog/internal/config"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage struct {
	client *minio.Client
	bucket string
	prefix string
}

func MustEstablishConn(cfg config.Storage) *minio.Client {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Fatal(err)
	}
	return client
}

// New makes sure the bucket exists before returning the storage.
func New(ctx context.Context, client *minio.Client, bucket, prefix string) (*Storage, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		log.Printf("[minio]: bucket %s created", bucket)
	}
	return &Storage{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *Storage) buildKey(key string) string {
	clean := strings.ReplaceAll(key, "\\", "")
	return path.Join(s.prefix, strings.TrimPrefix(path.Clean("/"+clean), "/"))
}

func (s *Storage) Save(ctx context.Context, key string, f model.File) (string, error) {
	fullKey := s.buildKey(key)
	_, err := s.client.PutObject(ctx, s.bucket, fullKey, bytes.NewReader(f.Content), f.Size(),
		minio.PutObjectOptions{ContentType: f.ContentType})
	if err != nil {
		return "", fmt.Errorf("failed to save object to minio: %w", err)
	}
	return fullKey, nil
}

func (s *Storage) Delete(ctx context.Context, fullKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fullKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object from minio: %w", err)
	}
	return nil
}

func (s *Storage) GeneratePresignedURL(ctx context.Context, fullKey string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, fullKey, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}
