// Package cliente provides the Cliente catalog: the customers of an empresa.
package cliente

import (
	"context"
	"regexp"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Cliente represents a customer of an empresa.
type Cliente struct {
	entity.Catalog
	entity.Tenanted

	// Documento is the CPF/CNPJ (free-form, optional)
	Documento *string `db:"documento" json:"documento,omitempty"`

	// Telefone is the primary contact phone
	Telefone *string `db:"telefone" json:"telefone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Observacoes is a free-form note
	Observacoes *string `db:"observacoes" json:"observacoes,omitempty"`
}

// NewCliente creates a new Cliente for an empresa.
func NewCliente(empresaID id.ID, nome string) *Cliente {
	return &Cliente{
		Catalog:  entity.NewCatalog(nome),
		Tenanted: entity.Tenanted{EmpresaID: empresaID},
	}
}

// Validate implements entity.Validatable interface.
func (c *Cliente) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if err := c.ValidateEmpresa(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
