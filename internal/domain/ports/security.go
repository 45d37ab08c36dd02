package ports

import "time"

// PasswordHasher encapsula a função de hash de senha (one-way, com salt)
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenClaims é a identidade extraída de um token de sessão verificado
type TokenClaims struct {
	UserID string
	Email  string
	Name   string
}

// TokenManager emite e verifica tokens de sessão (bearer)
type TokenManager interface {
	Generate(claims TokenClaims, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}
