package empresa

import (
	"context"

	"gestor/internal/core/id"
)

// Repository defines the interface for Empresa persistence.
type Repository interface {
	Create(ctx context.Context, e *Empresa) error
	GetByID(ctx context.Context, empresaID id.ID) (*Empresa, error)
	Update(ctx context.Context, e *Empresa) error
}
