// Package report_repo provides the PostgreSQL implementation of the
// dashboard queries. Everything is derived live from the documents and
// payments, nothing is pre-aggregated.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
	"gestor/internal/domain/reports"
	"gestor/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// GetFaturamento sums documento.total for business dates in [de, ate).
func (r *ReportRepo) GetFaturamento(ctx context.Context, empresaID id.ID, de, ate time.Time) (types.Money, error) {
	const query = `
		SELECT COALESCE(SUM(total), 0)
		FROM doc_documentos
		WHERE empresa_id = $1 AND data >= $2 AND data < $3
	`

	var total types.Money
	if err := pgxscan.Get(ctx, r.querier(ctx), &total, query, empresaID, de, ate); err != nil {
		return types.Zero(), fmt.Errorf("faturamento: %w", err)
	}

	return total, nil
}

// CountOSAbertas counts OS documents whose payments do not cover the total.
// Zero-total orders never count as open.
func (r *ReportRepo) CountOSAbertas(ctx context.Context, empresaID id.ID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM doc_documentos d
		WHERE d.empresa_id = $1
		  AND d.tipo = 'OS'
		  AND d.total > 0
		  AND d.total > COALESCE(
			(SELECT SUM(p.valor) FROM doc_pagamentos p WHERE p.documento_id = d.id), 0)
	`

	var count int64
	if err := pgxscan.Get(ctx, r.querier(ctx), &count, query, empresaID); err != nil {
		return 0, fmt.Errorf("count os abertas: %w", err)
	}

	return count, nil
}

// CountOrcamentosAbertos counts quotes with status other than RECUSADO.
func (r *ReportRepo) CountOrcamentosAbertos(ctx context.Context, empresaID id.ID) (int64, error) {
	q := r.builder.
		Select("COUNT(*)").
		From("doc_orcamentos").
		Where(squirrel.Eq{"empresa_id": empresaID}).
		Where(squirrel.NotEq{"status": "RECUSADO"})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.querier(ctx), &count, sql, args...); err != nil {
		return 0, fmt.Errorf("count orcamentos abertos: %w", err)
	}

	return count, nil
}

// GetUltimosOrcamentos returns the most recent quotes, newest first.
func (r *ReportRepo) GetUltimosOrcamentos(ctx context.Context, empresaID id.ID, limit int) ([]reports.OrcamentoResumo, error) {
	const query = `
		SELECT o.id, o.numero, o.data, c.nome AS cliente_nome, o.status, o.total
		FROM doc_orcamentos o
		JOIN cat_clientes c ON c.id = o.cliente_id
		WHERE o.empresa_id = $1
		ORDER BY o.data DESC, o.numero DESC
		LIMIT $2
	`

	var resumos []reports.OrcamentoResumo
	if err := pgxscan.Select(ctx, r.querier(ctx), &resumos, query, empresaID, limit); err != nil {
		return nil, fmt.Errorf("ultimos orcamentos: %w", err)
	}

	return resumos, nil
}

// GetUltimosDocumentos returns the most recent documents, newest first,
// with the payments aggregate alongside.
func (r *ReportRepo) GetUltimosDocumentos(ctx context.Context, empresaID id.ID, limit int) ([]reports.DocumentoResumo, error) {
	const query = `
		SELECT d.id, d.numero, d.data, c.nome AS cliente_nome, d.tipo, d.total,
		       COALESCE(
			(SELECT SUM(p.valor) FROM doc_pagamentos p WHERE p.documento_id = d.id), 0) AS valor_pago
		FROM doc_documentos d
		JOIN cat_clientes c ON c.id = d.cliente_id
		WHERE d.empresa_id = $1
		ORDER BY d.data DESC, d.numero DESC
		LIMIT $2
	`

	var resumos []reports.DocumentoResumo
	if err := pgxscan.Select(ctx, r.querier(ctx), &resumos, query, empresaID, limit); err != nil {
		return nil, fmt.Errorf("ultimos documentos: %w", err)
	}

	return resumos, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
