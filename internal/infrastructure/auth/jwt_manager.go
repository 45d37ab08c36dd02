package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// JWTManager implementa ports.TokenManager usando HMAC-SHA256
type JWTManager struct {
	secret []byte
}

// NewJWTManager cria um novo JWTManager
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) Generate(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(m.secret)
}

func (m *JWTManager) Verify(tokenString string) (ports.TokenClaims, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		// Só HS256; rejeitar qualquer outro método de assinatura
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ports.TokenClaims{}, ErrInvalidToken
	}

	return ports.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
