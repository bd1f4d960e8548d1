package documento

import (
	"context"
	"time"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// ListFilter narrows a document listing. All criteria are combined with AND.
type ListFilter struct {
	// Texto matches the cliente name or the observações (case-insensitive).
	Texto string

	// Tipo filters by document kind when non-empty.
	Tipo Tipo

	// DataDe / DataAte bound the business date (inclusive).
	DataDe  *time.Time
	DataAte *time.Time

	// BuscarPlaca extends Texto to also match the vehicle plate.
	// Set by the service for empresas with ramo AUTO.
	BuscarPlaca bool

	Limit  int
	Offset int
}

// Repository defines the interface for Documento persistence.
type Repository interface {
	Create(ctx context.Context, d *Documento) error
	GetByID(ctx context.Context, empresaID, documentoID id.ID) (*Documento, error)

	// GetByOrigem returns the document converted from the given quote with
	// the given tipo, or a not-found AppError.
	GetByOrigem(ctx context.Context, empresaID, orcamentoID id.ID, tipo Tipo) (*Documento, error)

	// List returns documents with ValorPago filled from an aggregate over
	// doc_pagamentos.
	List(ctx context.Context, empresaID id.ID, filter ListFilter) ([]*Documento, error)

	// GetPagamentos returns the payment ledger ordered by data.
	GetPagamentos(ctx context.Context, documentoID id.ID) ([]Pagamento, error)

	// SomaPagamentos returns the sum of payment values (zero when none).
	SomaPagamentos(ctx context.Context, documentoID id.ID) (types.Money, error)

	AddPagamento(ctx context.Context, p *Pagamento) error
	DeletePagamento(ctx context.Context, documentoID, pagamentoID id.ID) error
}
