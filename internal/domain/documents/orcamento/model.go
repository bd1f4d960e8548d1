// Package orcamento provides the Orcamento document: a quote an empresa
// prepares for a cliente, with product/service line items and a stored total.
package orcamento

import (
	"context"
	"strings"
	"time"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusRascunho Status = "RASCUNHO"
	StatusEnviado  Status = "ENVIADO"
	StatusAprovado Status = "APROVADO"
	StatusRecusado Status = "RECUSADO"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusRascunho, StatusEnviado, StatusAprovado, StatusRecusado:
		return true
	}
	return false
}

// TipoItem is the kind of a quote line item.
type TipoItem string

const (
	TipoItemProduto TipoItem = "PRODUTO"
	TipoItemServico TipoItem = "SERVICO"
)

// Orcamento represents a quote.
type Orcamento struct {
	entity.Document
	entity.Tenanted

	// ClienteID references the cliente the quote is for
	ClienteID id.ID `db:"cliente_id" json:"clienteId"`

	// Validade is the expiry date (optional)
	Validade *time.Time `db:"validade" json:"validade,omitempty"`

	// Placa identifies the vehicle (empresas with ramo AUTO)
	Placa string `db:"placa" json:"placa,omitempty"`

	// VeiculoDescricao describes the vehicle
	VeiculoDescricao string `db:"veiculo_descricao" json:"veiculoDescricao,omitempty"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Total is the stored aggregate: the sum of item totals.
	// Maintained by the service inside the same transaction as the items.
	Total types.Money `db:"total" json:"total"`

	// Table part: line items
	Itens []Item `db:"-" json:"itens"`

	// ClienteNome is decorated on reads (not a column of doc_orcamentos)
	ClienteNome string `db:"-" json:"clienteNome,omitempty"`
}

// Item represents a quote line item.
type Item struct {
	ID          id.ID `db:"id" json:"id"`
	OrcamentoID id.ID `db:"orcamento_id" json:"orcamentoId"`
	Seq         int   `db:"seq" json:"seq"`

	// TipoItem selects the catalog the line refers to (may be empty for
	// free-form lines carrying only a description)
	TipoItem TipoItem `db:"tipo_item" json:"tipoItem,omitempty"`

	ProdutoID *id.ID `db:"produto_id" json:"produtoId,omitempty"`
	ServicoID *id.ID `db:"servico_id" json:"servicoId,omitempty"`

	Descricao     string      `db:"descricao" json:"descricao,omitempty"`
	Quantidade    types.Money `db:"quantidade" json:"quantidade"`
	PrecoUnitario types.Money `db:"preco_unitario" json:"precoUnitario"`

	// Total is stored per line: quantidade × preco_unitario at save time.
	Total types.Money `db:"total" json:"total"`
}

// Vazio reports whether the line carries no meaningful value at all.
// Empty drafts are silently dropped on save.
func (i Item) Vazio() bool {
	return i.TipoItem == "" &&
		i.ProdutoID == nil &&
		i.ServicoID == nil &&
		strings.TrimSpace(i.Descricao) == "" &&
		i.Quantidade.IsZero() &&
		i.PrecoUnitario.IsZero() &&
		i.Total.IsZero()
}

// NewOrcamento creates a new quote in RASCUNHO.
func NewOrcamento(empresaID, clienteID id.ID) *Orcamento {
	return &Orcamento{
		Document:  entity.NewDocument(),
		Tenanted:  entity.Tenanted{EmpresaID: empresaID},
		ClienteID: clienteID,
		Status:    StatusRascunho,
		Total:     types.Zero(),
		Itens:     make([]Item, 0),
	}
}

// Validate implements entity.Validatable.
func (o *Orcamento) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}
	if err := o.ValidateEmpresa(ctx); err != nil {
		return err
	}

	if id.IsNil(o.ClienteID) {
		return apperror.NewValidation("cliente is required").
			WithDetail("field", "clienteId")
	}

	if !o.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	for idx, item := range o.Itens {
		if item.Vazio() {
			continue
		}
		if item.Quantidade.IsNegative() {
			return apperror.NewValidation("quantidade must not be negative").
				WithDetail("field", "itens").
				WithDetail("seq", idx+1)
		}
		if item.PrecoUnitario.IsNegative() {
			return apperror.NewValidation("preco_unitario must not be negative").
				WithDetail("field", "itens").
				WithDetail("seq", idx+1)
		}
	}

	return nil
}

// NormalizarItens drops empty drafts, renumbers the surviving lines and
// stamps each line total (quantidade × preço). Absent numeric values stay
// zero, so a line with only a description gets total 0.
func (o *Orcamento) NormalizarItens() {
	kept := make([]Item, 0, len(o.Itens))
	for _, item := range o.Itens {
		if item.Vazio() {
			continue
		}
		if id.IsNil(item.ID) {
			item.ID = id.New()
		}
		item.OrcamentoID = o.ID
		item.Seq = len(kept) + 1
		item.Total = item.Quantidade.Mul(item.PrecoUnitario)
		kept = append(kept, item)
	}
	o.Itens = kept
}

// TotalItens returns the sum of the stored line totals.
func (o *Orcamento) TotalItens() types.Money {
	total := types.Zero()
	for _, item := range o.Itens {
		total = total.Add(item.Total)
	}
	return total
}

// Duplicar returns an independent copy of the quote in RASCUNHO.
// Line totals are copied verbatim, without recomputation, so the copy's
// total always equals the sum of the copied lines even if prices changed
// since the original was saved. The source is untouched.
func (o *Orcamento) Duplicar() *Orcamento {
	dup := &Orcamento{
		Document:         entity.NewDocument(),
		Tenanted:         o.Tenanted,
		ClienteID:        o.ClienteID,
		Validade:         o.Validade,
		Placa:            o.Placa,
		VeiculoDescricao: o.VeiculoDescricao,
		Status:           StatusRascunho,
		Itens:            make([]Item, 0, len(o.Itens)),
	}
	dup.Observacoes = o.Observacoes

	total := types.Zero()
	for seq, item := range o.Itens {
		copied := item
		copied.ID = id.New()
		copied.OrcamentoID = dup.ID
		copied.Seq = seq + 1
		dup.Itens = append(dup.Itens, copied)
		total = total.Add(copied.Total)
	}
	dup.Total = total

	return dup
}
