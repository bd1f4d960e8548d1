package entity

import (
	"context"
	"time"

	"gestor/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: Orcamento, Documento (venda / ordem de serviço).
type Document struct {
	BaseDocument

	// Numero is the document number (auto-generated, unique within type+period)
	Numero string `db:"numero" json:"numero"`

	// Data is the business date of the document
	Data time.Time `db:"data" json:"data"`

	// Observacoes is an optional user comment
	Observacoes string `db:"observacoes" json:"observacoes,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Data:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Data.IsZero() {
		return apperror.NewValidation("data is required").
			WithDetail("field", "data")
	}
	return nil
}
