package entities

import (
	"errors"
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
// O ciclo de vida é mínimo: criado uma vez no signup e imutável depois.
// Nenhuma operação exposta remove usuários.
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}
