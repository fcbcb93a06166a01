package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"deutschklasse_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// HomeworkFileStore keeps submitted homework files in S3 and hands out
// time-limited download links.
type HomeworkFileStore struct {
	s3Client *s3.Client
	bucket   string
}

// NewHomeworkFileStore creates the store from the ambient AWS config.
func NewHomeworkFileStore() (*HomeworkFileStore, error) {
	cfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion(config.AppConfig.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &HomeworkFileStore{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   config.AppConfig.S3BucketName,
	}, nil
}

// UploadResult describes a stored homework file.
type UploadResult struct {
	Key      string
	FileName string
	FileSize string
	FileType string
}

// Upload stores one submitted file under homework/<uid>/<date>/<random>.<ext>.
func (h *HomeworkFileStore) Upload(ctx context.Context, file *multipart.FileHeader, studentUID string) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if ext == "" {
		ext = "bin"
	}

	now := time.Now()
	randomID := uuid.New().String()[:16]
	key := fmt.Sprintf("homework/%s/%d/%02d/%02d/%s.%s",
		studentUID, now.Year(), now.Month(), now.Day(), randomID, ext)

	_, err = h.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(fileBytes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		Key:      key,
		FileName: file.Filename,
		FileSize: formatFileSize(int64(len(fileBytes))),
		FileType: fileTypeForExt(ext),
	}, nil
}

// PresignDownload returns a temporary GET URL for a stored file.
func (h *HomeworkFileStore) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigner := s3.NewPresignClient(h.s3Client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return req.URL, nil
}

func formatFileSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.0f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func fileTypeForExt(ext string) string {
	switch ext {
	case "txt", "md":
		return "text"
	case "pdf":
		return "pdf"
	case "jpg", "jpeg", "png", "webp":
		return "image"
	case "mp3", "wav", "m4a":
		return "audio"
	default:
		return "file"
	}
}
