package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mworley/recipebox/backend/config"
)

// ImageStore persists uploaded recipe images under storage keys and serves
// back public URLs.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// DetectImageFormat decodes the payload header and returns the image format
// ("jpeg", "png", "gif"). Non-image payloads yield ErrInvalidImage.
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	return format, nil
}

// NewImageStore selects S3 when a bucket is configured, local disk otherwise.
func NewImageStore(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3ImageStore(s3Cfg), nil
	}
	log.Printf("S3 bucket not configured, storing images under %s", cfg.MediaDir)
	return NewLocalImageStore(cfg.MediaDir, cfg.MediaBaseURL), nil
}

// S3ImageStore stores images in an S3 bucket with public-read URLs.
type S3ImageStore struct {
	s3 *config.S3Config
}

func NewS3ImageStore(s3Cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3: s3Cfg}
}

func (s *S3ImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3.BucketName, key), nil
}

func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.s3.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// LocalImageStore stores images on local disk, for development and tests.
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
