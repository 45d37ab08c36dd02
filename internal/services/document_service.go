package services

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/domain/repositories"
)

// DocumentService orquestra upload, listagem, atualização e deleção de
// documentos, mantendo o repositório de blobs e o de metadados
// consistentes.
//
// Ordem no upload: blob primeiro, metadados depois — se o blob falha não
// existe registro órfão; se os metadados falham o blob recém-escrito é
// removido (ação compensatória, best-effort). Ordem na deleção:
// metadados primeiro, blob depois — uma leitura concorrente nunca vê um
// registro cujo blob já se foi. Um crash entre os dois passos pode
// deixar um blob órfão; isso é registrado como gap aceito, sem varredura
// de limpeza aqui.
type DocumentService struct {
	docRepo  repositories.DocumentRepository
	blobs    ports.BlobStore
	notifier ports.Notifier
	logger   ports.Logger
}

// NewDocumentService cria um novo DocumentService
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	blobs ports.BlobStore,
	notifier ports.Notifier,
	logger ports.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:  docRepo,
		blobs:    blobs,
		notifier: notifier,
		logger:   logger,
	}
}

// UploadInput representa os dados de um upload de documento
type UploadInput struct {
	OwnerEmail   string
	Title        string
	PropertyName string
	Address      string
	DocType      string
	OriginalName string
	Data         []byte
}

// Upload valida, grava o blob e então o registro de metadados.
// Falha do blob aborta sem registro; falha dos metadados dispara a
// deleção compensatória do blob recém-gravado.
func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*entities.Document, error) {
	start := time.Now()

	if input.OwnerEmail == "" {
		return nil, errors.ErrMissingOwner
	}
	if len(input.Data) == 0 {
		return nil, errors.ErrEmptyFile
	}

	storedName, err := s.blobs.Store(ctx, input.OriginalName, bytes.NewReader(input.Data))
	if err != nil {
		s.logger.Error("upload failed storing blob",
			"owner", input.OwnerEmail,
			"original_name", input.OriginalName,
			"error", err,
		)
		return nil, err
	}

	now := time.Now().UTC()
	title := input.Title
	if title == "" {
		title = storedName
	}

	document := &entities.Document{
		OwnerEmail:   input.OwnerEmail,
		Title:        title,
		StoredName:   storedName,
		OriginalName: input.OriginalName,
		PropertyName: input.PropertyName,
		Address:      input.Address,
		DocType:      input.DocType,
		UploadedAt:   now,
		CreatedAt:    now,
	}

	if err := s.docRepo.Create(ctx, document); err != nil {
		// Compensação: remover o blob para não deixar órfão.
		// Falha aqui é logada, não surfaced — o erro original prevalece.
		if delErr := s.blobs.Delete(ctx, storedName); delErr != nil {
			s.logger.Error("orphan blob cleanup failed",
				"stored_name", storedName,
				"error", delErr,
			)
		}
		s.logger.Error("upload failed storing metadata",
			"owner", input.OwnerEmail,
			"stored_name", storedName,
			"error", err,
		)
		return nil, errors.ErrStore
	}

	s.notifier.Publish(ports.DocumentEvent{
		Kind:       "uploaded",
		DocumentID: document.ID,
		OwnerEmail: document.OwnerEmail,
		Title:      document.Title,
	})

	s.logger.Info("document uploaded",
		"id", document.ID,
		"owner", document.OwnerEmail,
		"stored_name", storedName,
		"size_bytes", len(input.Data),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return document, nil
}

// List retorna os documentos do dono em ordem de inserção.
// callerEmail vem da identidade autenticada e deve ser o próprio dono.
func (s *DocumentService) List(ctx context.Context, callerEmail, ownerEmail string) ([]*entities.Document, error) {
	if callerEmail != ownerEmail {
		return nil, errors.ErrForbidden
	}

	start := time.Now()
	documents, err := s.docRepo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		s.logger.Error("list failed", "owner", ownerEmail, "error", err)
		return nil, errors.ErrStore
	}

	s.logger.Info("documents listed",
		"owner", ownerEmail,
		"count", len(documents),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return documents, nil
}

// Update aplica o subconjunto mutável de campos {title, propertyName,
// address, docType}. Campos fora da whitelist nunca chegam aqui: o DTO
// só materializa os quatro. Retorna quantos campos mudaram de fato.
func (s *DocumentService) Update(ctx context.Context, callerEmail, id string, update entities.DocumentUpdate) (int, error) {
	start := time.Now()

	document, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update failed", "id", id, "error", err)
		return 0, errors.ErrStore
	}
	if document == nil {
		return 0, errors.ErrDocumentNotFound
	}
	if document.OwnerEmail != callerEmail {
		return 0, errors.ErrForbidden
	}

	changed, err := s.docRepo.Update(ctx, id, update)
	if err != nil {
		if err == errors.ErrDocumentNotFound {
			// deletado entre o Find e o Update; para o chamador é 404
			return 0, err
		}
		s.logger.Error("update failed", "id", id, "error", err)
		return 0, errors.ErrStore
	}

	s.notifier.Publish(ports.DocumentEvent{
		Kind:       "updated",
		DocumentID: id,
		OwnerEmail: document.OwnerEmail,
		Title:      document.Title,
	})

	s.logger.Info("document updated",
		"id", id,
		"owner", document.OwnerEmail,
		"fields_changed", changed,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return changed, nil
}

// Delete remove o registro de metadados e depois o blob. Se a remoção do
// blob falha o documento já se foi do ponto de vista do chamador: a
// falha é logada em severidade error e a operação reporta sucesso.
func (s *DocumentService) Delete(ctx context.Context, callerEmail, id string) error {
	start := time.Now()

	document, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		return errors.ErrStore
	}
	if document == nil {
		return errors.ErrDocumentNotFound
	}
	if document.OwnerEmail != callerEmail {
		return errors.ErrForbidden
	}

	removed, err := s.docRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		return errors.ErrStore
	}
	if !removed {
		return errors.ErrDocumentNotFound
	}

	if err := s.blobs.Delete(ctx, document.StoredName); err != nil {
		// Blob órfão: gap de consistência aceito e documentado
		s.logger.Error("orphan blob left after delete",
			"id", id,
			"stored_name", document.StoredName,
			"error", err,
		)
	}

	s.notifier.Publish(ports.DocumentEvent{
		Kind:       "deleted",
		DocumentID: id,
		OwnerEmail: document.OwnerEmail,
		Title:      document.Title,
	})

	s.logger.Info("document deleted",
		"id", id,
		"owner", document.OwnerEmail,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RetrieveFile resolve o documento pelo nome de armazenamento e devolve
// os bytes. Falta de metadados ou de blob resulta em not found.
func (s *DocumentService) RetrieveFile(ctx context.Context, callerEmail, storedName string) (*entities.Document, io.ReadCloser, error) {
	document, err := s.docRepo.FindByStoredName(ctx, storedName)
	if err != nil {
		s.logger.Error("retrieve failed", "stored_name", storedName, "error", err)
		return nil, nil, errors.ErrStore
	}
	if document == nil {
		return nil, nil, errors.ErrDocumentNotFound
	}
	if document.OwnerEmail != callerEmail {
		return nil, nil, errors.ErrForbidden
	}

	reader, err := s.blobs.Retrieve(ctx, storedName)
	if err != nil {
		if err == errors.ErrBlobNotFound || err == errors.ErrUnsafeBlobName {
			return nil, nil, errors.ErrDocumentNotFound
		}
		s.logger.Error("retrieve failed", "stored_name", storedName, "error", err)
		return nil, nil, err
	}

	return document, reader, nil
}

// RetrieveFileByID resolve primeiro os metadados pelo ID do documento
func (s *DocumentService) RetrieveFileByID(ctx context.Context, callerEmail, id string) (*entities.Document, io.ReadCloser, error) {
	document, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("retrieve failed", "id", id, "error", err)
		return nil, nil, errors.ErrStore
	}
	if document == nil {
		return nil, nil, errors.ErrDocumentNotFound
	}
	if document.OwnerEmail != callerEmail {
		return nil, nil, errors.ErrForbidden
	}

	reader, err := s.blobs.Retrieve(ctx, document.StoredName)
	if err != nil {
		if err == errors.ErrBlobNotFound || err == errors.ErrUnsafeBlobName {
			return nil, nil, errors.ErrDocumentNotFound
		}
		s.logger.Error("retrieve failed", "id", id, "error", err)
		return nil, nil, err
	}

	return document, reader, nil
}
