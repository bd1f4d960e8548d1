package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
	"gestor/internal/domain/documents/orcamento"
	"gestor/internal/infrastructure/storage/postgres"
)

const (
	orcamentosTable     = "doc_orcamentos"
	orcamentoItensTable = "doc_orcamento_itens"
)

// OrcamentoRepo implements orcamento.Repository.
type OrcamentoRepo struct {
	*BaseDocumentRepo[*orcamento.Orcamento]
}

// NewOrcamentoRepo creates a new quote repository.
func NewOrcamentoRepo(txManager *postgres.TxManager) *OrcamentoRepo {
	return &OrcamentoRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			orcamentosTable,
			"orcamento",
			postgres.ExtractDBColumns[orcamento.Orcamento](),
			func() *orcamento.Orcamento { return &orcamento.Orcamento{} },
		),
	}
}

// List retrieves quotes with filtering. The text filter matches the cliente
// name (via an empresa-scoped subquery) or the observações; for AUTO
// empresas a second query matches the vehicle plate and the results merge
// by id, keeping the primary ordering and appending plate-only matches.
// The union path pages after the merge: paging the source queries would let
// the id-dedup shrink a page or the two limits inflate it.
func (r *OrcamentoRepo) List(ctx context.Context, empresaID id.ID, filter orcamento.ListFilter) ([]*orcamento.Orcamento, error) {
	primaryQ := r.textSearch(r.filteredSelect(empresaID, filter), empresaID, filter.Texto).
		OrderBy("data DESC", "numero DESC")

	if !filter.BuscarPlaca || filter.Texto == "" {
		return r.selectRows(ctx, r.applyPaging(primaryQ, filter))
	}

	primary, err := r.selectRows(ctx, primaryQ)
	if err != nil {
		return nil, err
	}

	placaQ := r.filteredSelect(empresaID, filter).
		Where(squirrel.ILike{"placa": "%" + filter.Texto + "%"}).
		OrderBy("data DESC", "numero DESC")
	extra, err := r.selectRows(ctx, placaQ)
	if err != nil {
		return nil, err
	}

	merged := mergeByID(primary, extra, func(o *orcamento.Orcamento) id.ID { return o.ID })
	return paginate(merged, filter.Limit, filter.Offset), nil
}

// filteredSelect applies the shared status and date criteria.
func (r *OrcamentoRepo) filteredSelect(empresaID id.ID, filter orcamento.ListFilter) squirrel.SelectBuilder {
	q := r.baseSelect(empresaID)

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DataDe != nil {
		q = q.Where(squirrel.GtOrEq{"data::date": *filter.DataDe})
	}
	if filter.DataAte != nil {
		q = q.Where(squirrel.LtOrEq{"data::date": *filter.DataAte})
	}

	return q
}

func (r *OrcamentoRepo) textSearch(q squirrel.SelectBuilder, empresaID id.ID, texto string) squirrel.SelectBuilder {
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

func (r *OrcamentoRepo) applyPaging(q squirrel.SelectBuilder, filter orcamento.ListFilter) squirrel.SelectBuilder {
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}

// GetItens returns the line items ordered by seq.
func (r *OrcamentoRepo) GetItens(ctx context.Context, orcamentoID id.ID) ([]orcamento.Item, error) {
	q := r.Builder().
		Select(
			"id", "orcamento_id", "seq", "tipo_item", "produto_id", "servico_id",
			"descricao", "quantidade", "preco_unitario", "total",
		).
		From(orcamentoItensTable).
		Where(squirrel.Eq{"orcamento_id": orcamentoID}).
		OrderBy("seq")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var itens []orcamento.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &itens, sql, args...); err != nil {
		return nil, fmt.Errorf("get itens: %w", err)
	}

	return itens, nil
}

// SaveItens replaces the line items of a quote.
func (r *OrcamentoRepo) SaveItens(ctx context.Context, orcamentoID id.ID, itens []orcamento.Item) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + orcamentoItensTable + " WHERE orcamento_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, orcamentoID); err != nil {
		return fmt.Errorf("delete existing itens: %w", err)
	}

	if len(itens) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(orcamentoItensTable).
		Columns(
			"id", "orcamento_id", "seq", "tipo_item", "produto_id", "servico_id",
			"descricao", "quantidade", "preco_unitario", "total",
		)

	for _, item := range itens {
		q = q.Values(
			item.ID, orcamentoID, item.Seq, item.TipoItem, item.ProdutoID, item.ServicoID,
			item.Descricao, item.Quantidade, item.PrecoUnitario, item.Total,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert itens: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert itens: %w", err)
	}

	return nil
}

// UpdateTotal sets the stored aggregate.
func (r *OrcamentoRepo) UpdateTotal(ctx context.Context, empresaID, orcamentoID id.ID, total types.Money) error {
	q := r.Builder().
		Update(orcamentosTable).
		Set("total", total).
		Where(squirrel.Eq{"id": orcamentoID}).
		Where(squirrel.Eq{"empresa_id": empresaID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update total: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update total: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("orcamento", orcamentoID.String())
	}

	return nil
}

// SetStatus persists only the status column.
func (r *OrcamentoRepo) SetStatus(ctx context.Context, empresaID, orcamentoID id.ID, status orcamento.Status) error {
	q := r.Builder().
		Update(orcamentosTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orcamentoID}).
		Where(squirrel.Eq{"empresa_id": empresaID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set status: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("orcamento", orcamentoID.String())
	}

	return nil
}
