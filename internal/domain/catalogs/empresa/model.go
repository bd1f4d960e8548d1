// Package empresa provides the Empresa catalog: the tenants of the system.
// Unlike the other catalogs, empresas are not themselves tenant-scoped.
package empresa

import (
	"context"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/tenant"
)

// Empresa represents a tenant: a small business running its back office here.
type Empresa struct {
	entity.Catalog

	// Documento is the CNPJ/CPF (free-form, optional)
	Documento *string `db:"documento" json:"documento,omitempty"`

	// Email is the contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Telefone is the contact phone
	Telefone *string `db:"telefone" json:"telefone,omitempty"`

	// Ramo switches domain behavior (AUTO enables placa search)
	Ramo tenant.Ramo `db:"ramo" json:"ramo"`

	// Ativo gates logins of the empresa's users
	Ativo bool `db:"ativo" json:"ativo"`
}

// NewEmpresa creates a new Empresa.
func NewEmpresa(nome string, ramo tenant.Ramo) *Empresa {
	return &Empresa{
		Catalog: entity.NewCatalog(nome),
		Ramo:    ramo,
		Ativo:   true,
	}
}

// Validate implements entity.Validatable interface.
func (e *Empresa) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !e.Ramo.Valid() {
		return apperror.NewValidation("invalid ramo").
			WithDetail("field", "ramo").
			WithDetail("value", string(e.Ramo))
	}

	return nil
}

// Resolved returns the lightweight tenant projection used for scoping.
func (e *Empresa) Resolved() *tenant.Empresa {
	return &tenant.Empresa{
		ID:   e.ID,
		Nome: e.Nome,
		Ramo: e.Ramo,
	}
}
