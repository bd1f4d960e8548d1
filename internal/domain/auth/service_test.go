package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
)

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUsers struct {
	byEmail map[string]*Usuario
}

func (m *memUsers) Create(ctx context.Context, u *Usuario) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, userID id.ID) (*Usuario, error) {
	for _, u := range m.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("usuario", userID.String())
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*Usuario, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("usuario", email)
}

func (m *memUsers) Exists(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newTestService(t *testing.T) (*Service, *memUsers) {
	t.Helper()
	repo := &memUsers{byEmail: make(map[string]*Usuario)}
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-key"))
	return NewService(repo, fakeTx{}, jwtSvc), repo
}

func seedUser(t *testing.T, repo *memUsers, email, senha string) *Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	u := NewUsuario(email, string(hash), "Ana Pereira")
	repo.byEmail[email] = u
	return u
}

func TestLogin_Sucesso(t *testing.T) {
	svc, repo := newTestService(t)
	u := seedUser(t, repo, "ana@oficina.com.br", "senha-forte-123")

	res, err := svc.Login(context.Background(), Credentials{
		Email: "  ANA@oficina.com.br ",
		Senha: "senha-forte-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, u.ID, res.Usuario.ID)

	// token round-trips into the request user context
	uc, err := NewJWTService(DefaultJWTConfig("test-secret-key")).ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), uc.UserID)
	assert.Equal(t, "ana@oficina.com.br", uc.Email)
}

func TestLogin_SenhaErrada(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "ana@oficina.com.br", "senha-forte-123")

	_, err := svc.Login(context.Background(), Credentials{
		Email: "ana@oficina.com.br",
		Senha: "outra-senha",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestLogin_EmailDesconhecido(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), Credentials{
		Email: "ninguem@oficina.com.br",
		Senha: "qualquer",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestLogin_UsuarioInativo(t *testing.T) {
	svc, repo := newTestService(t)
	u := seedUser(t, repo, "ana@oficina.com.br", "senha-forte-123")
	u.Ativo = false

	_, err := svc.Login(context.Background(), Credentials{
		Email: "ana@oficina.com.br",
		Senha: "senha-forte-123",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestValidateToken_SecretErrado(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "ana@oficina.com.br", "senha-forte-123")

	res, err := svc.Login(context.Background(), Credentials{
		Email: "ana@oficina.com.br",
		Senha: "senha-forte-123",
	})
	require.NoError(t, err)

	_, err = NewJWTService(DefaultJWTConfig("outro-secret")).ValidateToken(res.Token)
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService(t)

	u, err := svc.Register(context.Background(), "Novo@Oficina.com.br", "senha-forte-123", "Novo Usuário")
	require.NoError(t, err)
	assert.Equal(t, "novo@oficina.com.br", u.Email)
	assert.True(t, u.Ativo)
	assert.NotEqual(t, "senha-forte-123", u.SenhaHash)
	assert.Contains(t, repo.byEmail, "novo@oficina.com.br")

	_, err = svc.Register(context.Background(), "novo@oficina.com.br", "senha-forte-123", "Duplicado")
	require.Error(t, err)

	_, err = svc.Register(context.Background(), "curto@oficina.com.br", "curta", "Senha Curta")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
