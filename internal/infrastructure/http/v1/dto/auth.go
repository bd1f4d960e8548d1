package dto

import (
	"time"

	"gestor/internal/domain/auth"
)

// LoginRequest for user login.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email: r.Email,
		Senha: r.Senha,
	}
}

// UsuarioResponse represents a user in API responses.
type UsuarioResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
}

// LoginResponse includes the token and user info.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Usuario   UsuarioResponse `json:"usuario"`
}

// FromLoginResult creates the response from a successful login.
func FromLoginResult(r *auth.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		Usuario: UsuarioResponse{
			ID:    r.Usuario.ID.String(),
			Email: r.Usuario.Email,
			Nome:  r.Usuario.Nome,
		},
	}
}
