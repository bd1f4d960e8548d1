package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/domain/catalogs/empresa"
	"gestor/internal/infrastructure/storage/postgres"
)

const empresaTable = "cat_empresas"

// EmpresaRepo implements empresa.Repository. Empresas are the tenancy root,
// so unlike the other catalogs their table carries no empresa_id scope.
type EmpresaRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewEmpresaRepo creates a new empresa repository.
func NewEmpresaRepo(txManager *postgres.TxManager) *EmpresaRepo {
	return &EmpresaRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[empresa.Empresa](),
	}
}

func (r *EmpresaRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *empresa.Empresa) error {
	data := postgres.StructToMap(e)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(empresaTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", empresaTable, err)
	}
	return nil
}

// GetByID retrieves an empresa.
func (r *EmpresaRepo) GetByID(ctx context.Context, empresaID id.ID) (*empresa.Empresa, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(empresaTable).
		Where(squirrel.Eq{"id": empresaID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	e := &empresa.Empresa{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("empresa", empresaID.String())
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return e, nil
}

// Update modifies an empresa with optimistic locking.
func (r *EmpresaRepo) Update(ctx context.Context, e *empresa.Empresa) error {
	data := postgres.StructToMap(e)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(empresaTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": e.ID}).
		Where(squirrel.Eq{"version": e.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", empresaTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("empresa", e.ID.String())
	}
	return nil
}
