package repositories

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domainrepos "joke-demo/internal/domain/repositories"
	"joke-demo/internal/domain/valueobjects"
)

const previewPrefix = "previews/"

type MinioConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioPreviewStore keeps previews as objects under previews/ in one bucket.
type MinioPreviewStore struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewMinioPreviewStore(cfg MinioConfig) (*MinioPreviewStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("minio access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	return &MinioPreviewStore{
		client:     client,
		bucketName: bucket,
		region:     region,
	}, nil
}

func (s *MinioPreviewStore) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *MinioPreviewStore) Create(ctx context.Context, image *valueobjects.ImageData) (valueobjects.PreviewRef, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	ref := valueobjects.PreviewRef(uuid.NewString())
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey(ref),
		bytes.NewReader(image.Data()), int64(image.Size()),
		minio.PutObjectOptions{ContentType: image.MimeType()},
	)
	if err != nil {
		return "", fmt.Errorf("put preview: %w", err)
	}
	return ref, nil
}

func (s *MinioPreviewStore) Open(ctx context.Context, ref valueobjects.PreviewRef) (io.ReadCloser, string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, "", fmt.Errorf("ensure bucket: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, objectKey(ref), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("get preview: %w", err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", domainrepos.ErrPreviewNotFound
		}
		return nil, "", fmt.Errorf("stat preview: %w", err)
	}
	return obj, info.ContentType, nil
}

func (s *MinioPreviewStore) Release(ctx context.Context, ref valueobjects.PreviewRef) error {
	if ref.IsZero() {
		return nil
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	// RemoveObject succeeds for missing keys
	if err := s.client.RemoveObject(ctx, s.bucketName, objectKey(ref), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove preview: %w", err)
	}
	return nil
}

func objectKey(ref valueobjects.PreviewRef) string {
	return previewPrefix + string(ref)
}
