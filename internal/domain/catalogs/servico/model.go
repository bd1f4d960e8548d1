// Package servico provides the Servico catalog: services an empresa performs.
package servico

import (
	"context"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Servico represents a service offered by an empresa.
type Servico struct {
	entity.Catalog
	entity.Tenanted

	// Descricao is a free-form description
	Descricao string `db:"descricao" json:"descricao,omitempty"`

	// Preco is the default price
	Preco types.Money `db:"preco" json:"preco"`

	// DuracaoMinutos is the estimated duration (optional)
	DuracaoMinutos *int `db:"duracao_minutos" json:"duracaoMinutos,omitempty"`

	// Ativo indicates the servico can be used on new quotes
	Ativo bool `db:"ativo" json:"ativo"`
}

// NewServico creates a new Servico for an empresa.
func NewServico(empresaID id.ID, nome string, preco types.Money) *Servico {
	return &Servico{
		Catalog:  entity.NewCatalog(nome),
		Tenanted: entity.Tenanted{EmpresaID: empresaID},
		Preco:    preco,
		Ativo:    true,
	}
}

// Validate implements entity.Validatable interface.
func (s *Servico) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}
	if err := s.ValidateEmpresa(ctx); err != nil {
		return err
	}

	if s.Preco.IsNegative() {
		return apperror.NewValidation("preco must not be negative").
			WithDetail("field", "preco")
	}
	if s.DuracaoMinutos != nil && *s.DuracaoMinutos < 0 {
		return apperror.NewValidation("duracao_minutos must not be negative").
			WithDetail("field", "duracaoMinutos")
	}

	return nil
}
