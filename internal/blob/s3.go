// Package blob uploads captured band images to S3-compatible object storage.
// The upload is strictly best-effort: a save never fails because of it.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/humiapp/humi/internal/filex"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Uploader is the blob storage surface the persistence layer depends on.
type Uploader interface {
	// Upload stores data under key and returns the public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Options configures the S3 backend (MinIO-compatible: static credentials
// plus a custom base endpoint).
type Options struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
}

type S3Uploader struct {
	opts   Options
	client *s3.Client
}

func NewS3Uploader(ctx context.Context, opts Options) (*S3Uploader, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{opts: opts, client: client}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := putObject(u.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.urlFor(key), nil
}

func (u *S3Uploader) urlFor(key string) string {
	if u.opts.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.opts.BaseEndpoint, "/"), u.opts.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.opts.Bucket, u.opts.Region, key)
}

// ImageKey builds the object key for a captured band image:
// cigars/<user>/<unix-millis>_<sanitized-name>.jpg
func ImageKey(userID, fullName string, now time.Time) string {
	name := filex.SanitizeFilename(strings.ReplaceAll(strings.TrimSpace(fullName), " ", "_"))
	if name == "" {
		name = "cigar"
	}
	return fmt.Sprintf("cigars/%s/%d_%s.jpg", userID, now.UnixMilli(), name)
}
