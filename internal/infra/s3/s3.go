package infra_s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/humanbelnik/catalog/internal/model"
)

type S3Storage struct {
	client *s3.Client

	prefix     string
	bucketName string
}

// New checks that the bucket is reachable. A missing bucket is created.
func New(ctx context.Context, bucketName string, client *s3.Client, prefix string) (*S3Storage, error) {
	storage := S3Storage{
		bucketName: bucketName,
		client:     client,
		prefix:     prefix,
	}

	_, err := storage.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err == nil {
		log.Printf("[S3]: bucket %v exists and you already own it", bucketName)
		return &storage, nil
	}

	if !isNotFound(err) {
		return nil, fmt.Errorf("bucket %s is not accessible: %w", bucketName, err)
	}

	log.Printf("[S3]: bucket %v is available, creating", bucketName)
	if _, err := storage.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}); err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	return &storage, nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiError smithy.APIError
	if errors.As(err, &apiError) && apiError.ErrorCode() == "NotFound" {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}

func (s *S3Storage) buildKey(key string) string {
	clean := strings.ReplaceAll(key, "\\", "")
	return path.Join(s.prefix, strings.TrimPrefix(path.Clean("/"+clean), "/"))
}

// Save uploads f under key and returns the full object key.
func (s *S3Storage) Save(ctx context.Context, key string, f model.File) (string, error) {
	fullKey := s.buildKey(key)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(f.Content),
		ContentType: aws.String(f.ContentType),
		ACL:         types.ObjectCannedACLPrivate,
	}); err != nil {
		return "", fmt.Errorf("failed to save object to S3: %w", err)
	}
	return fullKey, nil
}

func (s *S3Storage) Delete(ctx context.Context, fullKey string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(fullKey),
	}); err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}

func (s *S3Storage) GeneratePresignedURL(ctx context.Context, fullKey string, ttl time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(fullKey),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}

	return req.URL, nil
}
