package repositories

import (
	"context"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
)

// DocumentRepository define a interface para persistência de metadados de
// documentos. A chave de tenant é o e-mail do dono (esquema herdado);
// trocar para ID de usuário tocaria apenas esta interface e sua
// implementação.
type DocumentRepository interface {
	// Create persiste o documento e preenche document.ID
	Create(ctx context.Context, document *entities.Document) error

	// FindByOwner retorna os documentos do dono em ordem de inserção
	FindByOwner(ctx context.Context, ownerEmail string) ([]*entities.Document, error)

	// FindByID retorna (nil, nil) quando o documento não existe
	FindByID(ctx context.Context, id string) (*entities.Document, error)

	// FindByStoredName retorna (nil, nil) quando nenhum documento
	// referencia o nome de armazenamento
	FindByStoredName(ctx context.Context, storedName string) (*entities.Document, error)

	// Update aplica apenas os campos presentes e retorna quantos campos
	// foram de fato alterados (0 não é erro). Retorna
	// errors.ErrDocumentNotFound se o ID não existe.
	Update(ctx context.Context, id string, update entities.DocumentUpdate) (int, error)

	// Delete remove o registro; retorna true se algo foi removido
	Delete(ctx context.Context, id string) (bool, error)
}
