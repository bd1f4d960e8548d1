// Package reports provides the management dashboard.
package reports

import (
	"time"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

// Dashboard is the landing-page summary for one empresa.
type Dashboard struct {
	// FaturamentoHoje sums documento.total over today's business date
	FaturamentoHoje types.Money `json:"faturamentoHoje"`

	// FaturamentoMes sums documento.total over the current month
	FaturamentoMes types.Money `json:"faturamentoMes"`

	// OSAbertas counts service orders with outstanding saldo
	OSAbertas int64 `json:"osAbertas"`

	// OrcamentosAbertos counts quotes not yet refused
	OrcamentosAbertos int64 `json:"orcamentosAbertos"`

	UltimosOrcamentos []OrcamentoResumo `json:"ultimosOrcamentos"`
	UltimosDocumentos []DocumentoResumo `json:"ultimosDocumentos"`
}

// OrcamentoResumo is a quote row on the dashboard.
type OrcamentoResumo struct {
	ID          id.ID       `json:"id"`
	Numero      string      `json:"numero"`
	Data        time.Time   `json:"data"`
	ClienteNome string      `json:"clienteNome"`
	Status      string      `json:"status"`
	Total       types.Money `json:"total"`
}

// DocumentoResumo is a document row on the dashboard.
type DocumentoResumo struct {
	ID          id.ID       `json:"id"`
	Numero      string      `json:"numero"`
	Data        time.Time   `json:"data"`
	ClienteNome string      `json:"clienteNome"`
	Tipo        string      `json:"tipo"`
	Total       types.Money `json:"total"`
	ValorPago   types.Money `json:"valorPago"`
}
