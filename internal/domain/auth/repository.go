package auth

import (
	"context"

	"gestor/internal/core/id"
)

// Repository defines user storage operations.
type Repository interface {
	// Create creates a new user.
	Create(ctx context.Context, u *Usuario) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*Usuario, error)

	// GetByEmail retrieves user by email.
	GetByEmail(ctx context.Context, email string) (*Usuario, error)

	// Exists checks if the email is already registered.
	Exists(ctx context.Context, email string) (bool, error)
}
