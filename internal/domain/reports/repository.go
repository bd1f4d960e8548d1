package reports

import (
	"context"
	"time"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Repository defines dashboard data access.
type Repository interface {
	// GetFaturamento sums documento.total for business dates in [de, ate).
	GetFaturamento(ctx context.Context, empresaID id.ID, de, ate time.Time) (types.Money, error)

	// CountOSAbertas counts OS documents whose payments do not cover the total.
	CountOSAbertas(ctx context.Context, empresaID id.ID) (int64, error)

	// CountOrcamentosAbertos counts quotes with status other than RECUSADO.
	CountOrcamentosAbertos(ctx context.Context, empresaID id.ID) (int64, error)

	// GetUltimosOrcamentos returns the most recent quotes, newest first.
	GetUltimosOrcamentos(ctx context.Context, empresaID id.ID, limit int) ([]OrcamentoResumo, error)

	// GetUltimosDocumentos returns the most recent documents, newest first.
	GetUltimosDocumentos(ctx context.Context, empresaID id.ID, limit int) ([]DocumentoResumo, error)
}
