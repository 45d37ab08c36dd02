package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/handlers/dto"
	"github.com/elegacy/elegacy-backend/internal/services"
)

// AuthHandler lida com signup e login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registra um novo usuário
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrEmailAlreadyExists):
			dto.RespondProblem(c, dto.ConflictErrorResponseI18n(c, "error.email_already_exists"))
		case errs.Is(err, errors.ErrInvalidEmail):
			dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		default:
			dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": dto.T(c, "auth.signup.success"),
		"user":    dto.ToUserResponse(user),
	})
}

// Login autentica credenciais e devolve o token de sessão
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	token, user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) {
			dto.RespondProblem(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}
		dto.RespondProblem(c, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
