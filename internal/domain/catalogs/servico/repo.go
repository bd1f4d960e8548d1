package servico

import (
	"gestor/internal/domain"
)

// Repository defines the interface for Servico persistence.
type Repository interface {
	domain.CatalogRepository[*Servico]
}
