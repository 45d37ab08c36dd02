package services

import (
	"context"
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/domain/repositories"
	"github.com/elegacy/elegacy-backend/internal/domain/valueobjects"
)

// AuthService é o Access Controller: registra usuários, autentica
// credenciais e verifica tokens de sessão.
type AuthService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	tokenTTL time.Duration
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	tokenTTL time.Duration,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register cria um novo usuário; e-mail duplicado resulta em conflito
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Verificação + criação na mesma transação para não registrar o
	// mesmo e-mail duas vezes sob concorrência
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "email", email.String())
	return user, nil
}

// Authenticate verifica as credenciais e emite um token de sessão.
// E-mail desconhecido, e-mail malformado e senha errada produzem
// exatamente o mesmo erro para não vazar qual parte falhou.
func (s *AuthService) Authenticate(ctx context.Context, rawEmail, password string) (string, *entities.User, error) {
	// Registro persiste o e-mail normalizado; o login precisa passar
	// pela mesma normalização ou a busca nunca encontra o usuário
	email, err := valueobjects.NewEmail(rawEmail)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email.String(),
		Name:   user.Name,
	}, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user authenticated", "id", user.ID)
	return token, user, nil
}

// Verify valida um token de sessão e devolve a identidade embutida
func (s *AuthService) Verify(token string) (ports.TokenClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return ports.TokenClaims{}, errors.ErrUnauthorized
	}
	return claims, nil
}
