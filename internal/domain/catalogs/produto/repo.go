package produto

import (
	"gestor/internal/domain"
)

// Repository defines the interface for Produto persistence.
type Repository interface {
	domain.CatalogRepository[*Produto]
}
