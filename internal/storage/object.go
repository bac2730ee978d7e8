package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ObjectConfig - параметры S3-совместимого хранилища (AWS S3 или Cloudflare R2)
type ObjectConfig struct {
	Provider   string
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BaseURL    string
	PublicRead bool
}

// ObjectStorage - S3-совместимое хранилище. R2 работает через тот же SDK.
type ObjectStorage struct {
	client     *s3.S3
	uploader   *s3manager.Uploader
	bucket     string
	baseURL    string
	publicRead bool
}

func NewObjectStorage(cfg ObjectConfig) (*ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required for object storage")
	}

	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}

	switch cfg.Provider {
	case TypeCloudflareR2:
		// Формат endpoint: https://<account_id>.r2.cloudflarestorage.com
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for Cloudflare R2")
		}
		awsConfig.Region = aws.String("auto")
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	default:
		region := cfg.Region
		if region == "" {
			region = "us-east-1"
		}
		awsConfig.Region = aws.String(region)
		if cfg.Endpoint != "" {
			awsConfig.Endpoint = aws.String(cfg.Endpoint)
			awsConfig.S3ForcePathStyle = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage session: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Provider == TypeCloudflareR2 {
			baseURL = fmt.Sprintf("https://%s.r2.dev", cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, aws.StringValue(awsConfig.Region))
		}
	}

	return &ObjectStorage{
		client:     s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		bucket:     cfg.Bucket,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicRead: cfg.PublicRead,
	}, nil
}

func (s *ObjectStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	input := &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	}
	if s.publicRead {
		input.ACL = aws.String(s3.ObjectCannedACLPublicRead)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *ObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var aerr awserr.RequestFailure
	if errors.As(err, &aerr) && aerr.StatusCode() == 404 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check object: %w", err)
}

func (s *ObjectStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
