package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/iudanet/shopkeeper/internal/config"
)

// s3API is the subset of the S3 client the uploader needs
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads files to an S3-compatible backend (MinIO, AWS)
type S3Uploader struct {
	logger        *slog.Logger
	client        s3API
	bucket        string
	endpoint      string
	publicBaseURL string
}

// NewS3Uploader builds the S3 client from injected configuration.
// Credentials come from config only, never from source.
func NewS3Uploader(ctx context.Context, logger *slog.Logger, cfg config.Media) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// MinIO не поддерживает virtual-host адресацию бакетов
		o.UsePathStyle = true
	})

	return &S3Uploader{
		logger:        logger,
		client:        client,
		bucket:        cfg.Bucket,
		endpoint:      cfg.Endpoint,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Upload sends the local file to the bucket and returns its public URL.
// The local file is deleted exactly once, regardless of outcome.
func (u *S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrLocalFileMissing, localPath)
		}
		return "", fmt.Errorf("failed to open local file: %w", err)
	}

	// Единственная точка удаления временного файла: выполняется после
	// любой попытки загрузки, успешной или нет
	defer func() {
		f.Close()
		if err := os.Remove(localPath); err != nil {
			u.logger.Warn("failed to remove temp file", slog.String("path", localPath), slog.Any("error", err))
		}
	}()

	key := storageKey(filepath.Ext(localPath))

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			// Сервис ответил отказом — это не сетевая проблема
			return "", fmt.Errorf("%w: %s", ErrUploadRejected, apiErr.ErrorCode())
		}
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return u.objectURL(key), nil
}

// storageKey раскладывает объекты по дате, имя — случайный UUID
func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// objectURL собирает публичный URL объекта
func (u *S3Uploader) objectURL(key string) string {
	if u.publicBaseURL != "" {
		if joined, err := url.JoinPath(u.publicBaseURL, key); err == nil {
			return joined
		}
	}
	if joined, err := url.JoinPath(u.endpoint, u.bucket, key); err == nil {
		return joined
	}
	return u.endpoint + "/" + u.bucket + "/" + key
}
