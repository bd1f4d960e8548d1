package entity

import (
	"context"

	"gestor/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Clientes, Produtos, Servicos.
type Catalog struct {
	BaseCatalog

	// Nome is the display name
	Nome string `db:"nome" json:"nome"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(nome string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Nome:        nome,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Nome == "" {
		return apperror.NewValidation("nome is required").
			WithDetail("field", "nome")
	}
	return nil
}
