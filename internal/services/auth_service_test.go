package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	domainerrors "github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
)

// fakeUserRepository guarda usuários em memória
type fakeUserRepository struct {
	users  []*entities.User
	nextID int
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entities.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email.String() == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

// passthroughUoW executa a função sem transação real
type passthroughUoW struct{}

func (passthroughUoW) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUoW) Commit(ctx context.Context) error                   { return nil }
func (passthroughUoW) Rollback(ctx context.Context) error                 { return nil }

func (passthroughUoW) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeHasher marca o hash com um prefixo determinístico
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

// fakeTokenManager embute o e-mail no próprio token
type fakeTokenManager struct{}

func (fakeTokenManager) Generate(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	return "tok:" + claims.Email, nil
}

func (fakeTokenManager) Verify(token string) (ports.TokenClaims, error) {
	if !strings.HasPrefix(token, "tok:") {
		return ports.TokenClaims{}, errors.New("invalid token")
	}
	return ports.TokenClaims{Email: strings.TrimPrefix(token, "tok:")}, nil
}

func newTestAuthService() (*AuthService, *fakeUserRepository) {
	repo := &fakeUserRepository{}
	service := NewAuthService(repo, passthroughUoW{}, fakeHasher{}, fakeTokenManager{}, time.Hour, nopLogger{})
	return service, repo
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registra usuário com senha hasheada", func(t *testing.T) {
		service, repo := newTestAuthService()

		user, err := service.Register(ctx, RegisterInput{
			Name: "Alice", Email: "alice@x.com", Password: "s3cret",
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if user.ID == "" {
			t.Error("usuário criado sem ID")
		}
		if user.PasswordHash == "s3cret" {
			t.Error("senha armazenada em claro")
		}
		if len(repo.users) != 1 {
			t.Errorf("esperava 1 usuário no repositório, obteve %d", len(repo.users))
		}
	})

	t.Run("e-mail duplicado é conflito e não altera o registro existente", func(t *testing.T) {
		service, repo := newTestAuthService()

		if _, err := service.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "primeira"}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		originalHash := repo.users[0].PasswordHash

		_, err := service.Register(ctx, RegisterInput{Name: "Imposter", Email: "alice@x.com", Password: "outra"})
		if !errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
			t.Errorf("esperava ErrEmailAlreadyExists, obteve %v", err)
		}
		if len(repo.users) != 1 {
			t.Errorf("esperava 1 usuário após conflito, obteve %d", len(repo.users))
		}
		if repo.users[0].PasswordHash != originalHash {
			t.Error("conflito alterou o hash do usuário existente")
		}
	})

	t.Run("e-mail inválido é rejeitado", func(t *testing.T) {
		service, _ := newTestAuthService()

		if _, err := service.Register(ctx, RegisterInput{Name: "A", Email: "nao-e-email", Password: "x"}); !errors.Is(err, domainerrors.ErrInvalidEmail) {
			t.Errorf("esperava ErrInvalidEmail, obteve %v", err)
		}
	})
}

func TestAuthServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("credenciais corretas emitem token verificável", func(t *testing.T) {
		service, _ := newTestAuthService()
		if _, err := service.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "s3cret"}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		token, user, err := service.Authenticate(ctx, "alice@x.com", "s3cret")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if user.Email.String() != "alice@x.com" {
			t.Errorf("usuário errado autenticado: %q", user.Email.String())
		}

		claims, err := service.Verify(token)
		if err != nil {
			t.Fatalf("esperava token válido, obteve erro: %v", err)
		}
		if claims.Email != "alice@x.com" {
			t.Errorf("esperava identidade alice@x.com, obteve %q", claims.Email)
		}
	})

	t.Run("login com o e-mail em caixa mista do signup funciona", func(t *testing.T) {
		service, _ := newTestAuthService()
		if _, err := service.Register(ctx, RegisterInput{Name: "Alice", Email: "Alice@x.com", Password: "s3cret"}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		// exatamente as credenciais usadas no registro
		_, user, err := service.Authenticate(ctx, "Alice@x.com", "s3cret")
		if err != nil {
			t.Fatalf("esperava sucesso com as credenciais do signup, obteve erro: %v", err)
		}
		if user.Email.String() != "alice@x.com" {
			t.Errorf("esperava e-mail normalizado alice@x.com, obteve %q", user.Email.String())
		}

		if _, _, err := service.Authenticate(ctx, "ALICE@X.COM", "s3cret"); err != nil {
			t.Errorf("esperava sucesso com outra variação de caixa, obteve erro: %v", err)
		}
	})

	t.Run("e-mail malformado no login produz o erro de credenciais", func(t *testing.T) {
		service, _ := newTestAuthService()

		if _, _, err := service.Authenticate(ctx, "nao-e-email", "s3cret"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
			t.Errorf("esperava ErrInvalidCredentials, obteve %v", err)
		}
	})

	t.Run("e-mail desconhecido e senha errada produzem o mesmo erro", func(t *testing.T) {
		service, _ := newTestAuthService()
		if _, err := service.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "s3cret"}); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		_, _, errUnknown := service.Authenticate(ctx, "ninguem@x.com", "s3cret")
		_, _, errWrongPass := service.Authenticate(ctx, "alice@x.com", "errada")

		if !errors.Is(errUnknown, domainerrors.ErrInvalidCredentials) {
			t.Errorf("esperava ErrInvalidCredentials para e-mail desconhecido, obteve %v", errUnknown)
		}
		if !errors.Is(errWrongPass, domainerrors.ErrInvalidCredentials) {
			t.Errorf("esperava ErrInvalidCredentials para senha errada, obteve %v", errWrongPass)
		}
		if errUnknown.Error() != errWrongPass.Error() {
			t.Errorf("mensagens distintas vazam qual parte falhou: %q vs %q", errUnknown, errWrongPass)
		}
	})
}

func TestAuthServiceVerify(t *testing.T) {
	t.Run("token inválido é não autorizado", func(t *testing.T) {
		service, _ := newTestAuthService()

		if _, err := service.Verify("lixo"); !errors.Is(err, domainerrors.ErrUnauthorized) {
			t.Errorf("esperava ErrUnauthorized, obteve %v", err)
		}
	})
}
