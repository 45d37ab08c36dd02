package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	domainerrors "github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage"
)

// nopLogger implementa ports.Logger para testes
type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) With(args ...any) ports.Logger { return nopLogger{} }

// fakeBlobStore guarda blobs em memória
type fakeBlobStore struct {
	blobs   map[string][]byte
	failPut bool
	failDel bool
	deleted []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Store(ctx context.Context, originalName string, data io.Reader) (string, error) {
	if s.failPut {
		return "", domainerrors.ErrStorageWrite
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	name := storage.NewStoredName(originalName)
	s.blobs[name] = raw
	return name, nil
}

func (s *fakeBlobStore) Retrieve(ctx context.Context, storedName string) (io.ReadCloser, error) {
	raw, ok := s.blobs[storedName]
	if !ok {
		return nil, domainerrors.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, storedName string) error {
	s.deleted = append(s.deleted, storedName)
	if s.failDel {
		return domainerrors.ErrStorageWrite
	}
	delete(s.blobs, storedName)
	return nil
}

// fakeDocumentRepository guarda documentos em memória, em ordem de inserção
type fakeDocumentRepository struct {
	docs       []*entities.Document
	nextID     int
	failCreate bool
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{}
}

func (r *fakeDocumentRepository) Create(ctx context.Context, document *entities.Document) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	r.nextID++
	document.ID = fmt.Sprintf("doc-%d", r.nextID)
	clone := *document
	r.docs = append(r.docs, &clone)
	return nil
}

func (r *fakeDocumentRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*entities.Document, error) {
	var result []*entities.Document
	for _, doc := range r.docs {
		if doc.OwnerEmail == ownerEmail {
			clone := *doc
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepository) FindByID(ctx context.Context, id string) (*entities.Document, error) {
	for _, doc := range r.docs {
		if doc.ID == id {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) FindByStoredName(ctx context.Context, storedName string) (*entities.Document, error) {
	for _, doc := range r.docs {
		if doc.StoredName == storedName {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, id string, update entities.DocumentUpdate) (int, error) {
	for _, doc := range r.docs {
		if doc.ID != id {
			continue
		}
		changed := 0
		if update.Title != nil && *update.Title != doc.Title {
			doc.Title = *update.Title
			changed++
		}
		if update.PropertyName != nil && *update.PropertyName != doc.PropertyName {
			doc.PropertyName = *update.PropertyName
			changed++
		}
		if update.Address != nil && *update.Address != doc.Address {
			doc.Address = *update.Address
			changed++
		}
		if update.DocType != nil && *update.DocType != doc.DocType {
			doc.DocType = *update.DocType
			changed++
		}
		return changed, nil
	}
	return 0, domainerrors.ErrDocumentNotFound
}

func (r *fakeDocumentRepository) Delete(ctx context.Context, id string) (bool, error) {
	for i, doc := range r.docs {
		if doc.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// recordingNotifier captura eventos publicados
type recordingNotifier struct {
	events []ports.DocumentEvent
}

func (n *recordingNotifier) Publish(event ports.DocumentEvent) {
	n.events = append(n.events, event)
}

func newTestService() (*DocumentService, *fakeDocumentRepository, *fakeBlobStore, *recordingNotifier) {
	repo := newFakeDocumentRepository()
	blobs := newFakeBlobStore()
	notifier := &recordingNotifier{}
	service := NewDocumentService(repo, blobs, notifier, nopLogger{})
	return service, repo, blobs, notifier
}

func TestDocumentServiceUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("upload seguido de retrieve devolve os mesmos bytes", func(t *testing.T) {
		service, _, _, _ := newTestService()
		content := []byte("0123456789")

		document, err := service.Upload(ctx, UploadInput{
			OwnerEmail:   "a@x.com",
			OriginalName: "deed.pdf",
			Data:         content,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if document.StoredName == "deed.pdf" {
			t.Error("nome de armazenamento igual ao nome original")
		}

		_, reader, err := service.RetrieveFile(ctx, "a@x.com", document.StoredName)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		if !bytes.Equal(got, content) {
			t.Errorf("esperava %q, obteve %q", content, got)
		}
	})

	t.Run("dono ausente é erro de validação", func(t *testing.T) {
		service, repo, _, _ := newTestService()

		_, err := service.Upload(ctx, UploadInput{OriginalName: "x.pdf", Data: []byte("a")})
		if !errors.Is(err, domainerrors.ErrMissingOwner) {
			t.Errorf("esperava ErrMissingOwner, obteve %v", err)
		}
		if len(repo.docs) != 0 {
			t.Error("registro criado apesar da validação falhar")
		}
	})

	t.Run("arquivo vazio é erro de validação", func(t *testing.T) {
		service, _, blobs, _ := newTestService()

		_, err := service.Upload(ctx, UploadInput{OwnerEmail: "a@x.com", OriginalName: "x.pdf"})
		if !errors.Is(err, domainerrors.ErrEmptyFile) {
			t.Errorf("esperava ErrEmptyFile, obteve %v", err)
		}
		if len(blobs.blobs) != 0 {
			t.Error("blob gravado apesar da validação falhar")
		}
	})

	t.Run("falha do blob aborta sem criar metadados", func(t *testing.T) {
		service, repo, blobs, _ := newTestService()
		blobs.failPut = true

		_, err := service.Upload(ctx, UploadInput{
			OwnerEmail:   "a@x.com",
			OriginalName: "x.pdf",
			Data:         []byte("abc"),
		})
		if !errors.Is(err, domainerrors.ErrStorageWrite) {
			t.Errorf("esperava ErrStorageWrite, obteve %v", err)
		}
		if len(repo.docs) != 0 {
			t.Error("metadados órfãos criados após falha do blob")
		}
	})

	t.Run("falha dos metadados dispara a deleção compensatória do blob", func(t *testing.T) {
		service, repo, blobs, _ := newTestService()
		repo.failCreate = true

		_, err := service.Upload(ctx, UploadInput{
			OwnerEmail:   "a@x.com",
			OriginalName: "x.pdf",
			Data:         []byte("abc"),
		})
		if !errors.Is(err, domainerrors.ErrStore) {
			t.Errorf("esperava ErrStore, obteve %v", err)
		}
		if len(blobs.deleted) != 1 {
			t.Fatalf("esperava 1 deleção compensatória, obteve %d", len(blobs.deleted))
		}
		if len(blobs.blobs) != 0 {
			t.Error("blob órfão sobrou após compensação")
		}
	})

	t.Run("título ausente assume o nome de armazenamento", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, err := service.Upload(ctx, UploadInput{
			OwnerEmail:   "a@x.com",
			OriginalName: "deed.pdf",
			Data:         []byte("abc"),
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if document.Title != document.StoredName {
			t.Errorf("esperava título %q, obteve %q", document.StoredName, document.Title)
		}
	})

	t.Run("dois donos com o mesmo nome original não interferem", func(t *testing.T) {
		service, _, _, _ := newTestService()

		docA, err := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "deed.pdf", Data: []byte("conteudo de a"),
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		docB, err := service.Upload(ctx, UploadInput{
			OwnerEmail: "b@x.com", OriginalName: "deed.pdf", Data: []byte("conteudo de b"),
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if docA.StoredName == docB.StoredName {
			t.Fatal("dois uploads receberam o mesmo nome de armazenamento")
		}

		_, readerB, err := service.RetrieveFile(ctx, "b@x.com", docB.StoredName)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		defer readerB.Close()
		got, _ := io.ReadAll(readerB)
		if string(got) != "conteudo de b" {
			t.Errorf("esperava 'conteudo de b', obteve %q", got)
		}
	})

	t.Run("publica evento uploaded", func(t *testing.T) {
		service, _, _, notifier := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		if len(notifier.events) != 1 {
			t.Fatalf("esperava 1 evento, obteve %d", len(notifier.events))
		}
		event := notifier.events[0]
		if event.Kind != "uploaded" || event.DocumentID != document.ID || event.OwnerEmail != "a@x.com" {
			t.Errorf("evento inesperado: %+v", event)
		}
	})
}

func TestDocumentServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("lista apenas os documentos do dono", func(t *testing.T) {
		service, _, _, _ := newTestService()

		if _, err := service.Upload(ctx, UploadInput{OwnerEmail: "a@x.com", OriginalName: "deed.pdf", Data: []byte("0123456789")}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if _, err := service.Upload(ctx, UploadInput{OwnerEmail: "b@x.com", OriginalName: "other.pdf", Data: []byte("x")}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		documents, err := service.List(ctx, "a@x.com", "a@x.com")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(documents) != 1 {
			t.Fatalf("esperava exatamente 1 documento, obteve %d", len(documents))
		}
		if documents[0].OwnerEmail != "a@x.com" {
			t.Errorf("documento de outro dono listado: %+v", documents[0])
		}
	})

	t.Run("identidade diferente do dono é proibida", func(t *testing.T) {
		service, _, _, _ := newTestService()

		if _, err := service.List(ctx, "intruso@x.com", "a@x.com"); !errors.Is(err, domainerrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestDocumentServiceUpdate(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("atualiza só os campos presentes", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", Title: "antigo", PropertyName: "casa",
			OriginalName: "deed.pdf", Data: []byte("abc"),
		})

		changed, err := service.Update(ctx, "a@x.com", document.ID, entities.DocumentUpdate{
			Title: strPtr("X"),
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if changed != 1 {
			t.Errorf("esperava 1 campo alterado, obteve %d", changed)
		}

		documents, _ := service.List(ctx, "a@x.com", "a@x.com")
		if documents[0].Title != "X" {
			t.Errorf("esperava título 'X', obteve %q", documents[0].Title)
		}
		if documents[0].PropertyName != "casa" {
			t.Errorf("campo não alterado mudou: %q", documents[0].PropertyName)
		}
	})

	t.Run("update sem mudança real reporta zero campos", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", Title: "igual", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		changed, err := service.Update(ctx, "a@x.com", document.ID, entities.DocumentUpdate{
			Title: strPtr("igual"),
		})
		if err != nil {
			t.Fatalf("esperava sucesso (no-op), obteve erro: %v", err)
		}
		if changed != 0 {
			t.Errorf("esperava 0 campos alterados, obteve %d", changed)
		}
	})

	t.Run("id desconhecido é not found e não cria registro", func(t *testing.T) {
		service, repo, _, _ := newTestService()

		_, err := service.Update(ctx, "a@x.com", "doc-999", entities.DocumentUpdate{Title: strPtr("X")})
		if !errors.Is(err, domainerrors.ErrDocumentNotFound) {
			t.Errorf("esperava ErrDocumentNotFound, obteve %v", err)
		}
		if len(repo.docs) != 0 {
			t.Error("update de id inexistente criou registro")
		}
	})

	t.Run("quem não é dono não atualiza", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		_, err := service.Update(ctx, "intruso@x.com", document.ID, entities.DocumentUpdate{Title: strPtr("X")})
		if !errors.Is(err, domainerrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestDocumentServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete remove metadados e blob", func(t *testing.T) {
		service, _, blobs, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		if err := service.Delete(ctx, "a@x.com", document.ID); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if _, _, err := service.RetrieveFile(ctx, "a@x.com", document.StoredName); !errors.Is(err, domainerrors.ErrDocumentNotFound) {
			t.Errorf("esperava ErrDocumentNotFound após delete, obteve %v", err)
		}
		if len(blobs.blobs) != 0 {
			t.Error("blob sobrou após delete")
		}
	})

	t.Run("falha ao remover o blob não falha o delete", func(t *testing.T) {
		service, repo, blobs, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})
		blobs.failDel = true

		if err := service.Delete(ctx, "a@x.com", document.ID); err != nil {
			t.Errorf("esperava sucesso mesmo com blob órfão, obteve erro: %v", err)
		}
		if len(repo.docs) != 0 {
			t.Error("metadados sobraram após delete")
		}
	})

	t.Run("id desconhecido é not found", func(t *testing.T) {
		service, _, _, _ := newTestService()

		if err := service.Delete(ctx, "a@x.com", "doc-999"); !errors.Is(err, domainerrors.ErrDocumentNotFound) {
			t.Errorf("esperava ErrDocumentNotFound, obteve %v", err)
		}
	})

	t.Run("quem não é dono não deleta", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		if err := service.Delete(ctx, "intruso@x.com", document.ID); !errors.Is(err, domainerrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestDocumentServiceRetrieveFile(t *testing.T) {
	ctx := context.Background()

	t.Run("nome desconhecido é not found", func(t *testing.T) {
		service, _, _, _ := newTestService()

		if _, _, err := service.RetrieveFile(ctx, "a@x.com", "nao-existe"); !errors.Is(err, domainerrors.ErrDocumentNotFound) {
			t.Errorf("esperava ErrDocumentNotFound, obteve %v", err)
		}
	})

	t.Run("blob sumido vira not found", func(t *testing.T) {
		service, _, blobs, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})
		delete(blobs.blobs, document.StoredName)

		if _, _, err := service.RetrieveFile(ctx, "a@x.com", document.StoredName); !errors.Is(err, domainerrors.ErrDocumentNotFound) {
			t.Errorf("esperava ErrDocumentNotFound, obteve %v", err)
		}
	})

	t.Run("recupera pelo id do documento", func(t *testing.T) {
		service, _, _, _ := newTestService()
		content := []byte("pelo id")

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: content,
		})

		_, reader, err := service.RetrieveFileByID(ctx, "a@x.com", document.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		if !bytes.Equal(got, content) {
			t.Errorf("esperava %q, obteve %q", content, got)
		}
	})

	t.Run("quem não é dono não lê", func(t *testing.T) {
		service, _, _, _ := newTestService()

		document, _ := service.Upload(ctx, UploadInput{
			OwnerEmail: "a@x.com", OriginalName: "x.pdf", Data: []byte("abc"),
		})

		if _, _, err := service.RetrieveFile(ctx, "intruso@x.com", document.StoredName); !errors.Is(err, domainerrors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}
