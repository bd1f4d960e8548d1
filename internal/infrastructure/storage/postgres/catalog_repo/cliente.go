package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestor/internal/core/id"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/internal/infrastructure/storage/postgres"
)

const clienteTable = "cat_clientes"

// ClienteRepo implements cliente.Repository.
type ClienteRepo struct {
	*BaseCatalogRepo[*cliente.Cliente]
}

// NewClienteRepo creates a new cliente repository.
func NewClienteRepo(txManager *postgres.TxManager) *ClienteRepo {
	return &ClienteRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(BaseCatalogRepoConfig[*cliente.Cliente]{
			TxManager:  txManager,
			TableName:  clienteTable,
			EntityName: "cliente",
			SelectCols: postgres.ExtractDBColumns[cliente.Cliente](),
			SearchCols: []string{"nome", "documento", "telefone", "email"},
			NewFn:      func() *cliente.Cliente { return &cliente.Cliente{} },
		}),
	}
}

// GetNomes returns the names of the given clientes in one query.
func (r *ClienteRepo) GetNomes(ctx context.Context, empresaID id.ID, ids []id.ID) (map[id.ID]string, error) {
	if len(ids) == 0 {
		return map[id.ID]string{}, nil
	}

	q := r.Builder().
		Select("id", "nome").
		From(clienteTable).
		Where(squirrel.Eq{"empresa_id": empresaID}).
		Where(squirrel.Eq{"id": ids})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		ID   id.ID  `db:"id"`
		Nome string `db:"nome"`
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get nomes: %w", err)
	}

	out := make(map[id.ID]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Nome
	}
	return out, nil
}
