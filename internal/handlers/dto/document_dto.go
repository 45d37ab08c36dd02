package dto

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
)

func init() {
	// docfield: metadados livres, mas sem quebras de linha nem NUL —
	// esses valores terminam em logs e cabeçalhos
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("docfield", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "\x00\n\r")
		})
	}
}

// UploadDocumentRequest representa os campos multipart do upload
// (o arquivo em si chega no campo "document")
type UploadDocumentRequest struct {
	Title        string `form:"title" binding:"omitempty,docfield,max=500"`
	PropertyName string `form:"propertyName" binding:"omitempty,docfield,max=500"`
	Address      string `form:"address" binding:"omitempty,docfield,max=500"`
	DocType      string `form:"type" binding:"omitempty,docfield,max=100"`
}

// UpdateDocumentRequest representa o update parcial de um documento.
// Só os quatro campos mutáveis existem aqui; qualquer outra chave no
// JSON é ignorada silenciosamente.
type UpdateDocumentRequest struct {
	Title        *string `json:"title" binding:"omitempty,docfield,max=500"`
	PropertyName *string `json:"propertyName" binding:"omitempty,docfield,max=500"`
	Address      *string `json:"address" binding:"omitempty,docfield,max=500"`
	DocType      *string `json:"type" binding:"omitempty,docfield,max=100"`
}

// ToDocumentUpdate converte a requisição para o update de domínio
func (r UpdateDocumentRequest) ToDocumentUpdate() entities.DocumentUpdate {
	return entities.DocumentUpdate{
		Title:        r.Title,
		PropertyName: r.PropertyName,
		Address:      r.Address,
		DocType:      r.DocType,
	}
}

// DocumentResponse é a projeção de um documento para o cliente.
// Filename é o nome de armazenamento (nunca o caminho real); FileURL é
// a URL resolvível construída a partir dele.
type DocumentResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"original_name,omitempty"`
	PropertyName string     `json:"property_name"`
	Address      string     `json:"address"`
	DocType      string     `json:"type"`
	FileURL      string     `json:"fileUrl"`
	UploadedAt   *time.Time `json:"upload_date"`
	CreatedAt    *time.Time `json:"created_at"`
}

// UpdateDocumentResponse reporta o resultado de um update parcial
type UpdateDocumentResponse struct {
	Message       string `json:"message"`
	FieldsChanged int    `json:"fields_changed"`
}

// ToDocumentResponse converte uma entidade Document para DocumentResponse
func ToDocumentResponse(c *gin.Context, document *entities.Document) DocumentResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return DocumentResponse{
		ID:           document.ID,
		Title:        document.Title,
		Filename:     document.StoredName,
		OriginalName: document.OriginalName,
		PropertyName: document.PropertyName,
		Address:      document.Address,
		DocType:      document.DocType,
		FileURL:      baseURL + "/api/documents/file/" + document.StoredName,
		UploadedAt:   nullableTime(document.UploadedAt),
		CreatedAt:    nullableTime(document.CreatedAt),
	}
}

// ToDocumentResponses converte uma lista de documentos
func ToDocumentResponses(c *gin.Context, documents []*entities.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(documents))
	for i, document := range documents {
		responses[i] = ToDocumentResponse(c, document)
	}
	return responses
}

// nullableTime rende timestamp ausente como null ao invés de época zero
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() || t.Unix() == 0 {
		return nil
	}
	return &t
}
