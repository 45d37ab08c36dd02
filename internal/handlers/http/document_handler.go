package http

import (
	errs "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/handlers/dto"
	"github.com/elegacy/elegacy-backend/internal/handlers/middleware"
	"github.com/elegacy/elegacy-backend/internal/services"
)

// DocumentHandler lida com requisições HTTP de documentos.
// O dono de cada operação é sempre a identidade do token — nunca um
// e-mail vindo do payload.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler cria um novo DocumentHandler
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Upload recebe o multipart e cria o documento
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, []dto.ValidationError{
			{Field: "document", Message: dto.T(c, "error.missing_file"), Tag: "required"},
		}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}

	document, err := h.documentService.Upload(c.Request.Context(), services.UploadInput{
		OwnerEmail:   middleware.IdentityEmail(c),
		Title:        req.Title,
		PropertyName: req.PropertyName,
		Address:      req.Address,
		DocType:      req.DocType,
		OriginalName: fileHeader.Filename,
		Data:         data,
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrMissingOwner), errs.Is(err, errors.ErrEmptyFile):
			dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  dto.T(c, "document.upload.success"),
		"document": dto.ToDocumentResponse(c, document),
	})
}

// List devolve os documentos do usuário autenticado
func (h *DocumentHandler) List(c *gin.Context) {
	caller := middleware.IdentityEmail(c)

	// ?owner= é aceito por compatibilidade, mas precisa bater com o token
	owner := c.DefaultQuery("owner", caller)

	documents, err := h.documentService.List(c.Request.Context(), caller, owner)
	if err != nil {
		if errs.Is(err, errors.ErrForbidden) {
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": dto.ToDocumentResponses(c, documents),
	})
}

// Update aplica o update parcial dos campos mutáveis
func (h *DocumentHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	changed, err := h.documentService.Update(c.Request.Context(), middleware.IdentityEmail(c), id, req.ToDocumentUpdate())
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrDocumentNotFound):
			dto.RespondProblem(c, dto.NotFoundErrorResponseI18n(c, "Document"))
		case errs.Is(err, errors.ErrForbidden):
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, dto.UpdateDocumentResponse{
		Message:       dto.T(c, "document.update.success"),
		FieldsChanged: changed,
	})
}

// Delete remove o documento e o blob associado
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.documentService.Delete(c.Request.Context(), middleware.IdentityEmail(c), id)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrDocumentNotFound):
			dto.RespondProblem(c, dto.NotFoundErrorResponseI18n(c, "Document"))
		case errs.Is(err, errors.ErrForbidden):
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": dto.T(c, "document.delete.success"),
	})
}

// RetrieveFile serve os bytes do blob pelo nome de armazenamento
func (h *DocumentHandler) RetrieveFile(c *gin.Context) {
	storedName := c.Param("storedName")

	document, reader, err := h.documentService.RetrieveFile(c.Request.Context(), middleware.IdentityEmail(c), storedName)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrDocumentNotFound):
			dto.RespondProblem(c, dto.NotFoundErrorResponseI18n(c, "Document"))
		case errs.Is(err, errors.ErrForbidden):
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+document.StoredName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// RetrieveFileByID serve os bytes do blob resolvendo pelo ID do documento
func (h *DocumentHandler) RetrieveFileByID(c *gin.Context) {
	id := c.Param("id")

	document, reader, err := h.documentService.RetrieveFileByID(c.Request.Context(), middleware.IdentityEmail(c), id)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrDocumentNotFound):
			dto.RespondProblem(c, dto.NotFoundErrorResponseI18n(c, "Document"))
		case errs.Is(err, errors.ErrForbidden):
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+document.StoredName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
