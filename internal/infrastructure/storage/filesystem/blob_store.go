package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	domainerrors "github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage"
)

// BlobStore implementa ports.BlobStore sobre um diretório local.
//
// A escrita é atômica: os bytes vão para um arquivo temporário dentro da
// própria raiz e só depois do fsync o arquivo é renomeado para o nome
// final. Um leitor nunca observa um blob parcial.
type BlobStore struct {
	root   string
	cipher ports.Cipher
}

// NewBlobStore cria um BlobStore sobre root, criando o diretório se
// necessário. cipher é a transformação opcional entre o repositório e o
// disco (identidade quando a criptografia não está configurada).
func NewBlobStore(root string, cipher ports.Cipher) (*BlobStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating storage root: %v", domainerrors.ErrStorageWrite, err)
	}
	return &BlobStore{root: root, cipher: cipher}, nil
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

	// Temp file na mesma raiz para que o rename seja atômico
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file: %v", domainerrors.ErrStorageWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: writing blob: %v", domainerrors.ErrStorageWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: syncing blob: %v", domainerrors.ErrStorageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: closing blob: %v", domainerrors.ErrStorageWrite, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.root, storedName)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: publishing blob: %v", domainerrors.ErrStorageWrite, err)
	}

	return storedName, nil
}

func (s *BlobStore) Retrieve(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if !storage.IsSafeStoredName(storedName) {
		return nil, domainerrors.ErrUnsafeBlobName
	}

	payload, err := os.ReadFile(filepath.Join(s.root, storedName))
	if err != nil {
		if os.IsNotExist(err) {
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

	// Idempotente: o registro de metadados é a fonte de verdade
	err := os.Remove(filepath.Join(s.root, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing blob: %v", domainerrors.ErrStorageWrite, err)
	}
	return nil
}
