package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore holds uploaded post images in a MinIO bucket.
type ImageStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

// NewImageStore creates a MinIO-backed image store and ensures the bucket
// exists.
func NewImageStore(endpoint, accessKey, secretKey, bucket string) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &ImageStore{
		client:   client,
		bucket:   bucket,
		endpoint: endpoint,
	}, nil
}

// Put stores an image object in the bucket.
func (s *ImageStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// URL returns the public URL for a stored image.
func (s *ImageStore) URL(key string) string {
	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, key)
}

// Remove deletes an image object from the bucket.
func (s *ImageStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
