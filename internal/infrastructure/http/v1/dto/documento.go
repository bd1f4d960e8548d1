package dto

import (
	"time"

	"gestor/internal/core/types"
	"gestor/internal/domain/documents/documento"
)

// PagamentoRequest records one payment against a documento.
// Valor omitted or zero settles the outstanding saldo; negative values are
// refunds (estorno).
type PagamentoRequest struct {
	Valor       *types.Money `json:"valor"`
	Forma       string       `json:"forma" binding:"required"`
	Data        *time.Time   `json:"data"`
	Observacoes string       `json:"observacoes"`
}

// ToInput converts to the domain payment input.
func (r PagamentoRequest) ToInput() documento.PagamentoInput {
	return documento.PagamentoInput{
		Valor:       r.Valor,
		Forma:       documento.FormaPagamento(r.Forma),
		Data:        r.Data,
		Observacoes: r.Observacoes,
	}
}
