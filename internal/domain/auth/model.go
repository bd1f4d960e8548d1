// Package auth provides authentication: password login and JWT issuance.
// Authorization is flat — any authenticated user operates on the empresa
// their perfil binds them to.
package auth

import (
	"context"
	"time"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
)

// Usuario represents a system user (sys_usuarios).
type Usuario struct {
	ID        id.ID     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	SenhaHash string    `db:"senha_hash" json:"-"`
	Nome      string    `db:"nome" json:"nome"`
	Ativo     bool      `db:"ativo" json:"ativo"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewUsuario creates a new active user.
func NewUsuario(email, senhaHash, nome string) *Usuario {
	return &Usuario{
		ID:        id.New(),
		Email:     email,
		SenhaHash: senhaHash,
		Nome:      nome,
		Ativo:     true,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks user invariants.
func (u *Usuario) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if u.SenhaHash == "" {
		return apperror.NewValidation("senha is required").WithDetail("field", "senha")
	}
	return nil
}
