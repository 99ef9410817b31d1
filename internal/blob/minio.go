package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStorage keeps payloads as objects in an S3-compatible bucket. The
// location of a payload is its object key.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO connects to the object store described by cfg and makes sure the
// bucket exists.
func NewMinIO(cfg config.MinIO) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidMinIOConfig)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: credentials are required", ErrInvalidMinIOConfig)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidMinIOConfig)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err = cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

func (m *minioStorage) Location(key string) string {
	return key
}

func (m *minioStorage) Put(ctx context.Context, location string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, location, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", location, err)
	}

	return nil
}

func (m *minioStorage) Get(ctx context.Context, location string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, location, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", location, mapMinIOError(err))
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces a missing key.
	if _, err = obj.Stat(); err != nil {
		return nil, fmt.Errorf("stat object %s: %w", location, mapMinIOError(err))
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", location, mapMinIOError(err))
	}

	return data, nil
}

func (m *minioStorage) Delete(ctx context.Context, location string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, location, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", location, mapMinIOError(err))
	}
	return nil
}

// mapMinIOError turns a missing key into ErrObjectNotFound and keeps the
// S3 error otherwise.
func mapMinIOError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	return err
}
