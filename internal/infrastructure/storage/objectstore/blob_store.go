package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domainerrors "github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/config"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage"
)

// BlobStore implementa ports.BlobStore sobre um bucket MinIO/S3.
// O PutObject do MinIO só materializa o objeto quando o upload completa,
// então a atomicidade exigida do contrato vem de graça.
type BlobStore struct {
	client *minio.Client
	bucket string
	cipher ports.Cipher
}

// NewBlobStore cria o cliente MinIO e garante que o bucket existe
func NewBlobStore(cfg *config.StorageConfig, cipher ports.Cipher) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &BlobStore{client: client, bucket: cfg.Bucket, cipher: cipher}, nil
}

func (s *BlobStore) Store(ctx context.Context, originalName string, data io.Reader) (string, error) {
	storedName := storage.NewStoredName(originalName)

	raw, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("%w: reading upload: %v", domainerrors.ErrStorageWrite, err)
	}

	payload, err := s.cipher.Encrypt(raw)
	if err != nil {
		return "", fmt.Errorf("%w: encrypting blob: %v", domainerrors.ErrStorageWrite, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, storedName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("%w: uploading blob: %v", domainerrors.ErrStorageWrite, err)
	}

	return storedName, nil
}

func (s *BlobStore) Retrieve(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if !storage.IsSafeStoredName(storedName) {
		return nil, domainerrors.ErrUnsafeBlobName
	}

	object, err := s.client.GetObject(ctx, s.bucket, storedName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching blob: %v", domainerrors.ErrStorageWrite, err)
	}
	defer object.Close()

	payload, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domainerrors.ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: reading blob: %v", domainerrors.ErrStorageWrite, err)
	}

	raw, err := s.cipher.Decrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypting blob: %v", domainerrors.ErrStorageWrite, err)
	}

	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *BlobStore) Delete(ctx context.Context, storedName string) error {
	if !storage.IsSafeStoredName(storedName) {
		return domainerrors.ErrUnsafeBlobName
	}

	// RemoveObject já é idempotente no MinIO
	err := s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: removing blob: %v", domainerrors.ErrStorageWrite, err)
	}
	return nil
}
