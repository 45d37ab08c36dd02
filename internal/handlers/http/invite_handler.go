package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/handlers/dto"
	"github.com/elegacy/elegacy-backend/internal/handlers/middleware"
	"github.com/elegacy/elegacy-backend/internal/services"
)

// InviteHandler lida com convites de compartilhamento
type InviteHandler struct {
	inviteService *services.InviteService
}

// NewInviteHandler cria um novo InviteHandler
func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// Send convida um e-mail a visualizar um documento do remetente
func (h *InviteHandler) Send(c *gin.Context) {
	var req dto.SendInviteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	invite, err := h.inviteService.Send(c.Request.Context(), middleware.IdentityEmail(c), req.Recipient, req.DocumentID)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrDocumentNotFound):
			dto.RespondProblem(c, dto.NotFoundErrorResponseI18n(c, "Document"))
		case errs.Is(err, errors.ErrForbidden):
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
		case errs.Is(err, errors.ErrInvalidEmail):
			dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": dto.T(c, "invite.send.success"),
		"invite":  dto.ToInviteResponse(invite),
	})
}

// ListReceived lista os convites recebidos pela identidade autenticada
func (h *InviteHandler) ListReceived(c *gin.Context) {
	caller := middleware.IdentityEmail(c)
	recipient := c.DefaultQuery("recipient", caller)

	invites, err := h.inviteService.ListByRecipient(c.Request.Context(), caller, recipient)
	if err != nil {
		if errs.Is(err, errors.ErrForbidden) {
			dto.RespondProblem(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invites": dto.ToInviteResponses(invites),
	})
}
