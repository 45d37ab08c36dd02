package ports

import (
	"context"
	"io"
)

// BlobStore define a interface do repositório de blobs.
//
// Store gera o nome de armazenamento (token aleatório + nome original
// sanitizado) e grava os bytes de forma atômica: um leitor nunca observa
// um blob parcialmente escrito. O nome retornado é globalmente único e
// nunca reutilizado.
//
// Retrieve rejeita nomes contendo sequências de path traversal, mesmo
// sendo os nomes gerados pelo sistema (defesa em profundidade).
//
// Delete é idempotente: deletar um blob inexistente não é erro — o
// registro de metadados é a fonte de verdade sobre existência.
type BlobStore interface {
	Store(ctx context.Context, originalName string, data io.Reader) (storedName string, err error)
	Retrieve(ctx context.Context, storedName string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedName string) error
}
