// Package produto provides the Produto catalog: sellable goods of an empresa.
package produto

import (
	"context"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Produto represents a sellable good.
type Produto struct {
	entity.Catalog
	entity.Tenanted

	// Descricao is a free-form description
	Descricao string `db:"descricao" json:"descricao,omitempty"`

	// PrecoVenda is the default selling price
	PrecoVenda types.Money `db:"preco_venda" json:"precoVenda"`

	// ControlaEstoque enables the stock counter
	ControlaEstoque bool `db:"controla_estoque" json:"controlaEstoque"`

	// EstoqueAtual is the current stock level (informational counter)
	EstoqueAtual types.Money `db:"estoque_atual" json:"estoqueAtual"`

	// Ativo indicates the produto can be used on new quotes
	Ativo bool `db:"ativo" json:"ativo"`
}

// NewProduto creates a new Produto for an empresa.
func NewProduto(empresaID id.ID, nome string, precoVenda types.Money) *Produto {
	return &Produto{
		Catalog:    entity.NewCatalog(nome),
		Tenanted:   entity.Tenanted{EmpresaID: empresaID},
		PrecoVenda: precoVenda,
		Ativo:      true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Produto) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if err := p.ValidateEmpresa(ctx); err != nil {
		return err
	}

	if p.PrecoVenda.IsNegative() {
		return apperror.NewValidation("preco_venda must not be negative").
			WithDetail("field", "precoVenda")
	}
	if p.EstoqueAtual.IsNegative() {
		return apperror.NewValidation("estoque_atual must not be negative").
			WithDetail("field", "estoqueAtual")
	}

	return nil
}
