package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Problem é a resposta de erro RFC 7807 (Problem Details for HTTP APIs),
// com a lista opcional de erros de validação por campo.
type Problem struct {
	problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewProblemI18n monta um problem RFC 7807 com título e detalhe i18n
func NewProblemI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) Problem {
	// Pegar base URL da configuração
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return Problem{
		Problem: problems.Problem{
			Type:     baseURL + problemType,
			Title:    T(c, titleKey, params...),
			Status:   status,
			Detail:   T(c, detailKey, params...),
			Instance: c.Request.URL.Path,
		},
	}
}

// RespondProblem escreve o problem com o media type RFC 7807
func RespondProblem(c *gin.Context, p Problem) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.JSON(p.Status, p)
}

// Helper functions para respostas de erro comuns com i18n

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) Problem {
	p := NewProblemI18n(
		c,
		"/problems/validation-error",
		"error.validation.title",
		"error.validation.detail",
		400,
	)
	p.Errors = validationErrors
	return p
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, resource string) Problem {
	return NewProblemI18n(
		c,
		"/problems/not-found",
		"error.not_found.title",
		"error.not_found.detail",
		404,
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) Problem {
	return NewProblemI18n(
		c,
		"/problems/conflict",
		"error.conflict.title",
		detailKey,
		409,
		params...,
	)
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		"/problems/unauthorized",
		"error.unauthorized.title",
		"error.unauthorized.detail",
		401,
	)
}

// ForbiddenErrorResponseI18n cria uma resposta de erro 403
func ForbiddenErrorResponseI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		"/problems/forbidden",
		"error.forbidden.title",
		"error.forbidden.detail",
		403,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		"/problems/internal-error",
		"error.internal.title",
		"error.internal.detail",
		500,
	)
}
