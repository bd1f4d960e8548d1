// Package auth_repo provides PostgreSQL implementations for the auth and
// perfil repositories. Users and perfis are system-level tables, not
// empresa-scoped: the perfil is what binds a user to their empresa.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/domain/auth"
	"gestor/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.Repository over sys_usuarios.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

func (r *UserRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, u *auth.Usuario) error {
	query := `
		INSERT INTO sys_usuarios (id, email, senha_hash, nome, ativo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier(ctx).Exec(ctx, query,
		u.ID, u.Email, u.SenhaHash, u.Nome, u.Ativo, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("usuario", "email", u.Email).WithCause(err)
		}
		return fmt.Errorf("insert usuario: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.Usuario, error) {
	query := `
		SELECT id, email, senha_hash, nome, ativo, created_at
		FROM sys_usuarios
		WHERE id = $1
	`

	var u auth.Usuario
	err := r.querier(ctx).QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Email, &u.SenhaHash, &u.Nome, &u.Ativo, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("usuario", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query usuario: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.Usuario, error) {
	query := `
		SELECT id, email, senha_hash, nome, ativo, created_at
		FROM sys_usuarios
		WHERE email = $1
	`

	var u auth.Usuario
	err := r.querier(ctx).QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.SenhaHash, &u.Nome, &u.Ativo, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("usuario", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query usuario: %w", err)
	}

	return &u, nil
}

// Exists checks if the email is already registered.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sys_usuarios WHERE email = $1)`

	var exists bool
	if err := r.querier(ctx).QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}

	return exists, nil
}

// Ensure interface compliance
var _ auth.Repository = (*UserRepo)(nil)
