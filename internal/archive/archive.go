package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Photo is an uploaded image to archive.
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Archiver stores uploaded photos and returns the key they were stored under.
type Archiver interface {
	Store(ctx context.Context, workspaceID string, photo Photo) (string, error)
}

// Disabled is an Archiver that stores nothing.
type Disabled struct{}

// Store implements Archiver.
func (Disabled) Store(context.Context, string, Photo) (string, error) {
	return "", nil
}

// PutObjectAPI is the subset of the S3 client used by S3Archiver.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes photos to an S3 bucket.
type S3Archiver struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Archiver loads the default AWS configuration for region and returns an
// archiver writing to bucket under prefix.
func NewS3Archiver(ctx context.Context, bucket, region, prefix string) (*S3Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if strings.TrimSpace(region) != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}
	return NewS3ArchiverWithClient(s3.NewFromConfig(cfg), bucket, prefix)
}

// NewS3ArchiverWithClient builds an archiver around an existing client.
func NewS3ArchiverWithClient(client PutObjectAPI, bucket, prefix string) (*S3Archiver, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("archive: bucket must not be empty")
	}
	if client == nil {
		return nil, errors.New("archive: nil s3 client")
	}
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		now:    time.Now,
	}, nil
}

// Store implements Archiver.
func (a *S3Archiver) Store(ctx context.Context, workspaceID string, photo Photo) (string, error) {
	if len(photo.Data) == 0 {
		return "", errors.New("archive: empty photo")
	}

	contentType := strings.TrimSpace(photo.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := a.objectKey(workspaceID, photo.FileName, contentType)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive: put object %s: %w", key, err)
	}
	return key, nil
}

func (a *S3Archiver) objectKey(workspaceID, fileName, contentType string) string {
	name := fmt.Sprintf("%d%s", a.now().UnixNano(), extension(fileName, contentType))
	parts := []string{}
	if a.prefix != "" {
		parts = append(parts, a.prefix)
	}
	if workspaceID = strings.TrimSpace(workspaceID); workspaceID != "" {
		parts = append(parts, workspaceID)
	}
	parts = append(parts, name)
	return path.Join(parts...)
}

func extension(fileName, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
