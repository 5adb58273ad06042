package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorageClient uploads artifacts to S3 compatible object storage.
type ObjectStorageClient interface {
	Connect(endpoint, accessKeyID, secretAccessKey, region string, useSSL bool) error
	UploadObject(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string, expiry time.Duration) (string, error)
}

// ObjectStorage holds the object storage client instance
type ObjectStorage struct {
	Conn   *minio.Client
	region string
}

// NewObjectStorage initialization
func NewObjectStorage() *ObjectStorage {
	return &ObjectStorage{}
}

// Connect creates the minio client. No request is made until the first upload.
func (o *ObjectStorage) Connect(endpoint, accessKeyID, secretAccessKey, region string, useSSL bool) error {
	var err error
	o.Conn, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	o.region = region
	return nil
}

// UploadObject stores content under objectName, creating the bucket if needed,
// and returns a presigned GET URL valid for expiry.
func (o *ObjectStorage) UploadObject(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string, expiry time.Duration) (string, error) {
	if o.Conn == nil {
		return "", fmt.Errorf("object storage is not connected")
	}

	// Check or create bucket
	exists, err := o.Conn.BucketExists(ctx, bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := o.Conn.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: o.region}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}

	// Overwrites if same object name already exists
	if _, err := o.Conn.PutObject(ctx, bucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	presignedURL, err := o.Conn.PresignedGetObject(ctx, bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}

	return presignedURL.String(), nil
}
