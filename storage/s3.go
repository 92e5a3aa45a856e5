package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/wildhavenhq/media/config"
	"github.com/wildhavenhq/media/model"
)

// S3 writes to any S3-compatible object store (AWS, Cloudflare R2, MinIO).
// The client is created once at startup and is safe for concurrent use.
type S3 struct {
	svc    *s3.S3
	bucket string
}

func NewS3(cfg config.AppConfig) (S3, error) {
	region := cfg.S3Region
	if region == "" {
		// R2-style endpoints ignore the region but the SDK requires one
		region = "auto"
	}

	awsCfg := &aws.Config{
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
	}
	if cfg.S3AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return S3{}, fmt.Errorf("creating s3 session: %w", err)
	}

	return S3{svc: s3.New(sess), bucket: cfg.S3Bucket}, nil
}

func (s S3) Save(data model.UploadFileData) (string, error) {
	obj := &s3.PutObjectInput{
		Body:   data.File,
		Bucket: aws.String(s.bucket),
		Key:    aws.String(data.FileKey),
	}
	if data.MimeType != "" {
		obj.ContentType = aws.String(data.MimeType)
	}

	if _, err := s.svc.PutObject(obj); err != nil {
		return "", fmt.Errorf("put object %s: %w", data.FileKey, err)
	}

	return data.FileKey, nil
}

func (s S3) Delete(fileKey string) error {
	obj := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileKey),
	}
	if _, err := s.svc.DeleteObject(obj); err != nil {
		return fmt.Errorf("delete object %s: %w", fileKey, err)
	}
	return nil
}

// PresignUpload mints a time-limited PUT URL scoped to exactly one key and
// content type.
func (s S3) PresignUpload(fileKey, contentType string) (string, error) {
	req, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	})

	url, err := req.Presign(PresignTTL)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", fileKey, err)
	}

	return url, nil
}
