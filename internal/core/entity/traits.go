package entity

import (
	"context"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
)

// Tenanted is a trait for entities owned by an empresa.
// Used for composition in models like Cliente, Produto, Orcamento.
type Tenanted struct {
	// EmpresaID is the owning empresa; every query must be scoped by it
	EmpresaID id.ID `db:"empresa_id" json:"empresaId"`
}

// ValidateEmpresa ensures the owning empresa is set.
func (t *Tenanted) ValidateEmpresa(ctx context.Context) error {
	if id.IsNil(t.EmpresaID) {
		return apperror.NewValidation("empresa is required").
			WithDetail("field", "empresaId")
	}
	return nil
}

// GetEmpresaID returns the owning empresa ID (useful for interfaces).
func (t *Tenanted) GetEmpresaID() id.ID {
	return t.EmpresaID
}

// ITenanted is an interface for any entity owned by an empresa.
type ITenanted interface {
	GetEmpresaID() id.ID
}
