// Package documento provides the Documento transaction: a sale (VENDA) or
// service order (OS) with its payment ledger. Financial state is always
// derived from the payments, never stored.
package documento

import (
	"context"
	"time"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Tipo is the document kind.
type Tipo string

const (
	TipoVenda Tipo = "VENDA"
	TipoOS    Tipo = "OS"
)

// Valid reports whether the tipo is a known value.
func (t Tipo) Valid() bool {
	return t == TipoVenda || t == TipoOS
}

// FormaPagamento is the payment method.
type FormaPagamento string

const (
	FormaDinheiro FormaPagamento = "DINHEIRO"
	FormaCartao   FormaPagamento = "CARTAO"
	FormaPix      FormaPagamento = "PIX"
	FormaBoleto   FormaPagamento = "BOLETO"
	FormaOutro    FormaPagamento = "OUTRO"
)

// Valid reports whether the forma is a known value.
func (f FormaPagamento) Valid() bool {
	switch f {
	case FormaDinheiro, FormaCartao, FormaPix, FormaBoleto, FormaOutro:
		return true
	}
	return false
}

// StatusFinanceiro is the derived financial state shown to users.
type StatusFinanceiro string

const (
	StatusSemValor StatusFinanceiro = "Sem valor"
	StatusPago     StatusFinanceiro = "Pago"
	StatusParcial  StatusFinanceiro = "Parcial"
	StatusEmAberto StatusFinanceiro = "Em aberto"
)

// Documento represents a sale or service order.
type Documento struct {
	entity.Document
	entity.Tenanted

	ClienteID id.ID `db:"cliente_id" json:"clienteId"`

	Tipo Tipo `db:"tipo" json:"tipo"`

	// OrigemOrcamentoID references the quote this document was converted
	// from. Cleared by the schema when the quote is deleted.
	OrigemOrcamentoID *id.ID `db:"origem_orcamento_id" json:"origemOrcamentoId,omitempty"`

	Placa            string `db:"placa" json:"placa,omitempty"`
	VeiculoDescricao string `db:"veiculo_descricao" json:"veiculoDescricao,omitempty"`

	// Total is copied from the source quote at conversion time and never
	// modified by payments.
	Total types.Money `db:"total" json:"total"`

	// Pagamentos is loaded on detail reads
	Pagamentos []Pagamento `db:"-" json:"pagamentos,omitempty"`

	// ValorPago is derived: the sum of payment values. Detail reads compute
	// it from the loaded payments, list reads from an aggregate column.
	ValorPago types.Money `db:"-" json:"valorPago"`

	// ClienteNome is decorated on reads
	ClienteNome string `db:"-" json:"clienteNome,omitempty"`
}

// Pagamento is one entry in a document's payment ledger.
// Negative values are refunds (estorno).
type Pagamento struct {
	ID          id.ID          `db:"id" json:"id"`
	DocumentoID id.ID          `db:"documento_id" json:"documentoId"`
	Data        time.Time      `db:"data" json:"data"`
	Valor       types.Money    `db:"valor" json:"valor"`
	Forma       FormaPagamento `db:"forma_pagamento" json:"formaPagamento"`
	Observacoes string         `db:"observacoes" json:"observacoes,omitempty"`
}

// Validate implements entity.Validatable.
func (d *Documento) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}
	if err := d.ValidateEmpresa(ctx); err != nil {
		return err
	}
	if id.IsNil(d.ClienteID) {
		return apperror.NewValidation("cliente is required").
			WithDetail("field", "clienteId")
	}
	if !d.Tipo.Valid() {
		return apperror.NewValidation("invalid tipo").
			WithDetail("field", "tipo").
			WithDetail("value", string(d.Tipo))
	}
	return nil
}

// SomarPagamentos recomputes ValorPago from the loaded payment slice.
func (d *Documento) SomarPagamentos() {
	total := types.Zero()
	for _, p := range d.Pagamentos {
		total = total.Add(p.Valor)
	}
	d.ValorPago = total
}

// Saldo returns the outstanding amount: total minus payments.
// Overpayment yields a negative saldo.
func (d *Documento) Saldo() types.Money {
	return d.Total.Sub(d.ValorPago)
}

// Status derives the financial state. The checks run in a fixed order:
// a zero-total document is "Sem valor" even with payments recorded, a
// settled or overpaid one is "Pago", anything partially paid is "Parcial".
func (d *Documento) Status() StatusFinanceiro {
	switch {
	case d.Total.IsZero():
		return StatusSemValor
	case d.Saldo().Sign() <= 0:
		return StatusPago
	case d.ValorPago.Sign() > 0:
		return StatusParcial
	default:
		return StatusEmAberto
	}
}
