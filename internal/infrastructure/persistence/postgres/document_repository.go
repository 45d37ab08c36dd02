package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	domainerrors "github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/repositories"
)

// DocumentRepository implementa repositories.DocumentRepository
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository cria um novo DocumentRepository
func NewDocumentRepository(db *gorm.DB) repositories.DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, document *entities.Document) error {
	model := r.toModel(document)

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	document.ID = model.ID
	return nil
}

func (r *DocumentRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*entities.Document, error) {
	var models []*DocumentModel

	db := r.getDB(ctx)
	// Ordem de inserção para listagem determinística
	err := db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at, id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	documents := make([]*entities.Document, 0, len(models))
	for _, model := range models {
		documents = append(documents, r.toEntity(model))
	}
	return documents, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entities.Document, error) {
	var model DocumentModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *DocumentRepository) FindByStoredName(ctx context.Context, storedName string) (*entities.Document, error) {
	var model DocumentModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("stored_name = ?", storedName).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *DocumentRepository) Update(ctx context.Context, id string, update entities.DocumentUpdate) (int, error) {
	var model DocumentModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domainerrors.ErrDocumentNotFound
		}
		return 0, err
	}

	// Aplicar apenas campos presentes que de fato mudam o registro
	changes := map[string]interface{}{}
	if update.Title != nil && *update.Title != model.Title {
		changes["title"] = *update.Title
	}
	if update.PropertyName != nil && *update.PropertyName != model.PropertyName {
		changes["property_name"] = *update.PropertyName
	}
	if update.Address != nil && *update.Address != model.Address {
		changes["address"] = *update.Address
	}
	if update.DocType != nil && *update.DocType != model.DocType {
		changes["doc_type"] = *update.DocType
	}

	if len(changes) == 0 {
		return 0, nil
	}

	err := db.WithContext(ctx).
		Model(&DocumentModel{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return 0, err
	}

	return len(changes), nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) (bool, error) {
	db := r.getDB(ctx)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&DocumentModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *DocumentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func (r *DocumentRepository) toModel(document *entities.Document) *DocumentModel {
	return &DocumentModel{
		ID:           document.ID,
		OwnerEmail:   document.OwnerEmail,
		Title:        document.Title,
		StoredName:   document.StoredName,
		OriginalName: document.OriginalName,
		PropertyName: document.PropertyName,
		Address:      document.Address,
		DocType:      document.DocType,
		UploadedAt:   document.UploadedAt.Unix(),
		CreatedAt:    document.CreatedAt.Unix(),
	}
}

func (r *DocumentRepository) toEntity(model *DocumentModel) *entities.Document {
	return &entities.Document{
		ID:           model.ID,
		OwnerEmail:   model.OwnerEmail,
		Title:        model.Title,
		StoredName:   model.StoredName,
		OriginalName: model.OriginalName,
		PropertyName: model.PropertyName,
		Address:      model.Address,
		DocType:      model.DocType,
		UploadedAt:   time.Unix(model.UploadedAt, 0),
		CreatedAt:    time.Unix(model.CreatedAt, 0),
	}
}
