package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockObjectStorage is a mock implementation of the ObjectStorageClient interface
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Connect(endpoint, accessKeyID, secretAccessKey, region string, useSSL bool) error {
	args := m.Called(endpoint, accessKeyID, secretAccessKey, region, useSSL)
	return args.Error(0)
}

func (m *MockObjectStorage) UploadObject(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, content, size, contentType, expiry)
	return args.String(0), args.Error(1)
}
