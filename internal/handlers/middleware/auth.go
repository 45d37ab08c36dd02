package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/i18n"
)

const (
	// IdentityEmailContextKey é a chave do e-mail autenticado no contexto
	IdentityEmailContextKey = "identity_email"
	// IdentityUserIDContextKey é a chave do ID do usuário autenticado
	IdentityUserIDContextKey = "identity_user_id"
)

// AuthMiddleware verifica o bearer token e injeta a identidade no contexto
type AuthMiddleware struct {
	tokens ports.TokenManager
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(tokens ports.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejeita requisições sem um token de sessão válido.
// Toda operação sobre documentos passa por aqui; os handlers comparam a
// identidade do token com o dono do recurso alvo.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := m.tokens.Verify(token)
		if err != nil || claims.Email == "" {
			abortUnauthorized(c)
			return
		}

		c.Set(IdentityEmailContextKey, claims.Email)
		c.Set(IdentityUserIDContextKey, claims.UserID)
		c.Next()
	}
}

// IdentityEmail retorna o e-mail autenticado da requisição
func IdentityEmail(c *gin.Context) string {
	return c.GetString(IdentityEmailContextKey)
}

// abortUnauthorized escreve o problem RFC 7807 de não autorizado.
// O pacote dto importa este; o problem é montado aqui para não criar
// ciclo de import.
func abortUnauthorized(c *gin.Context) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	p := problems.Problem{
		Type:     baseURL + "/problems/unauthorized",
		Title:    translate(c, "error.unauthorized.title"),
		Status:   http.StatusUnauthorized,
		Detail:   translate(c, "error.unauthorized.detail"),
		Instance: c.Request.URL.Path,
	}

	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(http.StatusUnauthorized, p)
}

// translate traduz uma chave com o serviço i18n do contexto, caindo na
// própria chave quando o middleware de i18n não rodou
func translate(c *gin.Context, key string) string {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}

	lang := c.GetString(LanguageContextKey)
	if lang == "" {
		lang = service.GetDefaultLanguage()
	}

	return service.T(lang, key)
}
