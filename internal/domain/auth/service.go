package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tx"
	"gestor/pkg/logger"
)

const senhaMinLength = 8

// Credentials is the login payload.
type Credentials struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Usuario   *Usuario  `json:"usuario"`
}

// Service provides authentication logic.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, txManager tx.Manager, jwtService *JWTService) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		jwtService: jwtService,
	}
}

// Login authenticates by email and password and issues an access token.
// Unknown email, wrong password and disabled account all return the same
// unauthorized error.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Senha == "" {
		return nil, apperror.NewValidation("email e senha são obrigatórios")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("credenciais inválidas")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(creds.Senha)); err != nil {
		return nil, apperror.NewUnauthorized("credenciais inválidas")
	}

	if !u.Ativo {
		return nil, apperror.NewUnauthorized("credenciais inválidas")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "email", u.Email)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Usuario: u}, nil
}

// Register creates a new user. Not exposed over HTTP; used by the seed
// command and operator tooling.
func (s *Service) Register(ctx context.Context, email, senha, nome string) (*Usuario, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(senha) < senhaMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("senha must be at least %d characters", senhaMinLength),
		).WithDetail("field", "senha")
	}

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("email already registered").WithDetail("email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash senha: %w", err)
	}

	u := NewUsuario(email, string(hash), nome)
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// GetByID retrieves a user by ID.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*Usuario, error) {
	return s.repo.GetByID(ctx, userID)
}
