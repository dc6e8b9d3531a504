package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore abstracts the external image storage service
type ObjectStore interface {
	// Put streams an object and returns its public URL
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes a previously stored object
	Delete(ctx context.Context, key string) error
}

// S3Config holds settings for an S3-compatible object store
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string // set for MinIO-compatible stores
	PublicURL    string // base URL objects are served from
}

// S3Store is an ObjectStore backed by an S3-compatible service
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store creates an S3-backed object store
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
	})

	return &S3Store{client: client, cfg: cfg}, nil
}

// Ensure S3Store implements the interface
var _ ObjectStore = (*S3Store)(nil)

// Put streams the body to the bucket under key
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("putting object %s: %w", key, err)
	}
	return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key, nil
}

// Delete removes the object under key
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// newStorageKey generates a date-partitioned object key
func newStorageKey(now time.Time) string {
	return fmt.Sprintf("campgrounds/%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}
