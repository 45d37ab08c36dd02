package entities

import (
	"errors"
	"time"
)

// Document representa um documento enviado por um usuário.
//
// OwnerEmail é a chave de tenant (herdada do esquema original; a migração
// para ownership por ID de usuário ficaria isolada no repositório).
// StoredName é o nome único sob o qual os bytes vivem no repositório de
// blobs — nunca é igual ao nome de arquivo enviado pelo usuário e nunca é
// reutilizado, mesmo depois de deletado.
type Document struct {
	ID           string
	OwnerEmail   string
	Title        string
	StoredName   string
	OriginalName string
	PropertyName string
	Address      string
	DocType      string
	UploadedAt   time.Time
	CreatedAt    time.Time
}

// DocumentUpdate contém os campos mutáveis de um documento.
// Apenas campos não-nil são aplicados (update parcial).
type DocumentUpdate struct {
	Title        *string
	PropertyName *string
	Address      *string
	DocType      *string
}

// IsEmpty informa se o update não altera campo algum
func (u DocumentUpdate) IsEmpty() bool {
	return u.Title == nil && u.PropertyName == nil && u.Address == nil && u.DocType == nil
}

// Validate valida regras de negócio da entidade Document
func (d *Document) Validate() error {
	if d.OwnerEmail == "" {
		return errors.New("owner email is required")
	}

	if d.StoredName == "" {
		return errors.New("stored name is required")
	}

	return nil
}
