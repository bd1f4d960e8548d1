package cliente

import (
	"context"

	"gestor/internal/core/id"
	"gestor/internal/domain"
)

// Repository defines the interface for Cliente persistence.
type Repository interface {
	domain.CatalogRepository[*Cliente]

	// GetNomes returns the names of the given clientes in one query.
	// Used to decorate quote/document listings without N+1 lookups.
	GetNomes(ctx context.Context, empresaID id.ID, ids []id.ID) (map[id.ID]string, error)
}
