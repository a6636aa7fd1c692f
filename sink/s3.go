package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/willibrandon/slingshot/observability"
)

// S3Config holds the connection settings for s3:// targets.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// ContentType of uploaded objects, application/xml when empty
	ContentType string
}

// s3Sink buffers output and uploads it as one object on Commit.
type s3Sink struct {
	client      *minio.Client
	bucket      string
	key         string
	region      string
	contentType string
	buf         bytes.Buffer
}

func newS3Client(cfg S3Config) (*minio.Client, string, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, "", fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, "", fmt.Errorf("s3 access key and secret key are required")
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
		return nil, "", fmt.Errorf("init s3 client: %w", err)
	}
	return client, region, nil
}

func newS3Sink(_ context.Context, cfg S3Config, bucket, key string) (*s3Sink, error) {
	client, region, err := newS3Client(cfg)
	if err != nil {
		return nil, err
	}
	contentType := cfg.ContentType
	if contentType == "" {
		contentType = "application/xml"
	}
	return &s3Sink{
		client:      client,
		bucket:      bucket,
		key:         key,
		region:      region,
		contentType: contentType,
	}, nil
}

func (s *s3Sink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *s3Sink) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
}

func (s *s3Sink) Commit(ctx context.Context) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	size := int64(s.buf.Len())
	_, err := s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(s.buf.Bytes()), size, minio.PutObjectOptions{
		ContentType: s.contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", s.Location(), err)
	}

	observability.OutputBytesTotal.WithLabelValues(KindS3).Add(float64(size))
	return nil
}

func (s *s3Sink) Abort() error {
	s.buf.Reset()
	return nil
}

func (s *s3Sink) Kind() string     { return KindS3 }
func (s *s3Sink) Location() string { return "s3://" + s.bucket + "/" + s.key }
