package orcamento

import (
	"context"
	"time"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// ListFilter narrows a quote listing. All criteria are combined with AND.
type ListFilter struct {
	// Texto matches the cliente name or the observações (case-insensitive).
	Texto string

	// Status filters by lifecycle state when non-empty.
	Status Status

	// DataDe / DataAte bound the business date (inclusive).
	DataDe *time.Time
	DataAte *time.Time

	// BuscarPlaca extends Texto to also match the vehicle plate.
	// Set by the service for empresas with ramo AUTO.
	BuscarPlaca bool

	Limit  int
	Offset int
}

// Repository defines the interface for Orcamento persistence.
type Repository interface {
	Create(ctx context.Context, o *Orcamento) error
	GetByID(ctx context.Context, empresaID, orcamentoID id.ID) (*Orcamento, error)
	Update(ctx context.Context, o *Orcamento) error
	Delete(ctx context.Context, empresaID, orcamentoID id.ID) error
	List(ctx context.Context, empresaID id.ID, filter ListFilter) ([]*Orcamento, error)

	// SaveItens replaces the line items of a quote.
	SaveItens(ctx context.Context, orcamentoID id.ID, itens []Item) error

	// GetItens returns the line items ordered by seq.
	GetItens(ctx context.Context, orcamentoID id.ID) ([]Item, error)

	// UpdateTotal sets the stored aggregate. Called in the same transaction
	// that saved the items.
	UpdateTotal(ctx context.Context, empresaID, orcamentoID id.ID, total types.Money) error

	// SetStatus transitions the lifecycle state.
	SetStatus(ctx context.Context, empresaID, orcamentoID id.ID, status Status) error
}
