package blob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploader(t *testing.T) *S3Uploader {
	t.Helper()
	u, err := NewS3Uploader(context.Background(), Options{
		AccessKey:    "admin",
		SecretKey:    "secret",
		Bucket:       "humidor",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	})
	require.NoError(t, err)
	return u
}

func TestUpload(t *testing.T) {
	orig := putObject
	t.Cleanup(func() { putObject = orig })

	var gotBucket, gotKey, gotType string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		gotType = *in.ContentType
		return &s3.PutObjectOutput{}, nil
	}

	u := newTestUploader(t)
	url, err := u.Upload(context.Background(), "cigars/u1/1_cohiba.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "humidor", gotBucket)
	assert.Equal(t, "cigars/u1/1_cohiba.jpg", gotKey)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "http://127.0.0.1:9000/humidor/cigars/u1/1_cohiba.jpg", url)
}

func TestUpload_Error(t *testing.T) {
	orig := putObject
	t.Cleanup(func() { putObject = orig })

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("connection refused")
	}

	u := newTestUploader(t)
	_, err := u.Upload(context.Background(), "k", []byte("img"), "image/jpeg")
	require.Error(t, err)
}

func TestImageKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := ImageKey("u1", "Cohiba Robusto", now)
	assert.Equal(t, "cigars/u1/1700000000000_Cohiba_Robusto.jpg", key)

	key = ImageKey("u1", "  ", now)
	assert.Equal(t, "cigars/u1/1700000000000_cigar.jpg", key)
}
