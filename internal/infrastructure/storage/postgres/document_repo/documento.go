package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/infrastructure/storage/postgres"
)

const (
	documentosTable = "doc_documentos"
	pagamentosTable = "doc_pagamentos"
)

// DocumentoRepo implements documento.Repository.
type DocumentoRepo struct {
	*BaseDocumentRepo[*documento.Documento]
}

// NewDocumentoRepo creates a new sale/service-order repository.
func NewDocumentoRepo(txManager *postgres.TxManager) *DocumentoRepo {
	return &DocumentoRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			documentosTable,
			"documento",
			postgres.ExtractDBColumns[documento.Documento](),
			func() *documento.Documento { return &documento.Documento{} },
		),
	}
}

// GetByOrigem finds the document converted from a quote with the given tipo.
func (r *DocumentoRepo) GetByOrigem(ctx context.Context, empresaID, orcamentoID id.ID, tipo documento.Tipo) (*documento.Documento, error) {
	q := r.baseSelect(empresaID).
		Where(squirrel.Eq{"origem_orcamento_id": orcamentoID}).
		Where(squirrel.Eq{"tipo": tipo})

	return r.FindOne(ctx, q)
}

// documentoRow carries the payments aggregate alongside the document columns.
type documentoRow struct {
	documento.Documento
	ValorPagoAgg types.Money `db:"valor_pago"`
}

// List retrieves documents with filtering, the same union semantics as the
// quote listing, and ValorPago filled from an aggregate over the payments.
// As in the quote listing, the union path pages after the merge.
func (r *DocumentoRepo) List(ctx context.Context, empresaID id.ID, filter documento.ListFilter) ([]*documento.Documento, error) {
	primaryQ := r.textSearch(r.filteredSelect(empresaID, filter), empresaID, filter.Texto).
		OrderBy("data DESC", "numero DESC")

	if !filter.BuscarPlaca || filter.Texto == "" {
		return r.selectDocRows(ctx, r.applyPaging(primaryQ, filter))
	}

	primary, err := r.selectDocRows(ctx, primaryQ)
	if err != nil {
		return nil, err
	}

	placaQ := r.filteredSelect(empresaID, filter).
		Where(squirrel.ILike{"placa": "%" + filter.Texto + "%"}).
		OrderBy("data DESC", "numero DESC")
	extra, err := r.selectDocRows(ctx, placaQ)
	if err != nil {
		return nil, err
	}

	merged := mergeByID(primary, extra, func(d *documento.Documento) id.ID { return d.ID })
	return paginate(merged, filter.Limit, filter.Offset), nil
}

func (r *DocumentoRepo) filteredSelect(empresaID id.ID, filter documento.ListFilter) squirrel.SelectBuilder {
	valorPago := fmt.Sprintf(
		"COALESCE((SELECT SUM(p.valor) FROM %s p WHERE p.documento_id = %s.id), 0) AS valor_pago",
		pagamentosTable, documentosTable,
	)

	q := r.Builder().
		Select(r.selectCols...).
		Column(valorPago).
		From(documentosTable).
		Where(squirrel.Eq{"empresa_id": empresaID})

	if filter.Tipo != "" {
		q = q.Where(squirrel.Eq{"tipo": filter.Tipo})
	}
	if filter.DataDe != nil {
		q = q.Where(squirrel.GtOrEq{"data::date": *filter.DataDe})
	}
	if filter.DataAte != nil {
		q = q.Where(squirrel.LtOrEq{"data::date": *filter.DataAte})
	}

	return q
}

func (r *DocumentoRepo) textSearch(q squirrel.SelectBuilder, empresaID id.ID, texto string) squirrel.SelectBuilder {
	if texto == "" {
		return q
	}
	pattern := "%" + texto + "%"
	return q.Where(squirrel.Or{
		squirrel.Expr(
			"cliente_id IN (SELECT id FROM cat_clientes WHERE empresa_id = ? AND nome ILIKE ?)",
			empresaID, pattern,
		),
		squirrel.ILike{"observacoes": pattern},
	})
}

func (r *DocumentoRepo) applyPaging(q squirrel.SelectBuilder, filter documento.ListFilter) squirrel.SelectBuilder {
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}

func (r *DocumentoRepo) selectDocRows(ctx context.Context, q squirrel.SelectBuilder) ([]*documento.Documento, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*documentoRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", documentosTable, err)
	}

	docs := make([]*documento.Documento, len(rows))
	for i, row := range rows {
		d := row.Documento
		d.ValorPago = row.ValorPagoAgg
		docs[i] = &d
	}
	return docs, nil
}

// GetPagamentos returns the payment ledger ordered by data.
func (r *DocumentoRepo) GetPagamentos(ctx context.Context, documentoID id.ID) ([]documento.Pagamento, error) {
	q := r.Builder().
		Select("id", "documento_id", "data", "valor", "forma_pagamento", "observacoes").
		From(pagamentosTable).
		Where(squirrel.Eq{"documento_id": documentoID}).
		OrderBy("data", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var pagamentos []documento.Pagamento
	if err := pgxscan.Select(ctx, r.querier(ctx), &pagamentos, sql, args...); err != nil {
		return nil, fmt.Errorf("get pagamentos: %w", err)
	}

	return pagamentos, nil
}

// SomaPagamentos returns the sum of payment values, zero when none exist.
func (r *DocumentoRepo) SomaPagamentos(ctx context.Context, documentoID id.ID) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(valor), 0)").
		From(pagamentosTable).
		Where(squirrel.Eq{"documento_id": documentoID})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build query: %w", err)
	}

	var soma types.Money
	if err := pgxscan.Get(ctx, r.querier(ctx), &soma, sql, args...); err != nil {
		return types.Zero(), fmt.Errorf("soma pagamentos: %w", err)
	}

	return soma, nil
}

// AddPagamento appends one entry to the payment ledger.
func (r *DocumentoRepo) AddPagamento(ctx context.Context, p *documento.Pagamento) error {
	q := r.Builder().
		Insert(pagamentosTable).
		Columns("id", "documento_id", "data", "valor", "forma_pagamento", "observacoes").
		Values(p.ID, p.DocumentoID, p.Data, p.Valor, p.Forma, p.Observacoes)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert pagamento: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert pagamento: %w", err)
	}

	return nil
}

// DeletePagamento removes one ledger entry.
func (r *DocumentoRepo) DeletePagamento(ctx context.Context, documentoID, pagamentoID id.ID) error {
	q := r.Builder().
		Delete(pagamentosTable).
		Where(squirrel.Eq{"id": pagamentoID}).
		Where(squirrel.Eq{"documento_id": documentoID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete pagamento: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete pagamento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("pagamento", pagamentoID.String())
	}

	return nil
}
