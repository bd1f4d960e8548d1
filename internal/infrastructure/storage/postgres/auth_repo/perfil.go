package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/domain/catalogs/empresa"
	"gestor/internal/domain/perfil"
	"gestor/internal/infrastructure/storage/postgres"
)

// PerfilRepo implements perfil.Repository over sys_perfis.
type PerfilRepo struct {
	txManager *postgres.TxManager
}

// NewPerfilRepo creates a new perfil repository.
func NewPerfilRepo(txManager *postgres.TxManager) *PerfilRepo {
	return &PerfilRepo{txManager: txManager}
}

// GetEmpresaForUser returns the empresa bound to the user via sys_perfis.
func (r *PerfilRepo) GetEmpresaForUser(ctx context.Context, userID id.ID) (*empresa.Empresa, error) {
	query := `
		SELECT e.id, e.version, e.created_at, e.nome,
		       e.documento, e.email, e.telefone, e.ramo, e.ativo
		FROM sys_perfis p
		JOIN cat_empresas e ON e.id = p.empresa_id
		WHERE p.usuario_id = $1
	`

	var e empresa.Empresa
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.Version, &e.CreatedAt, &e.Nome,
		&e.Documento, &e.Email, &e.Telefone, &e.Ramo, &e.Ativo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("perfil", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query perfil: %w", err)
	}

	return &e, nil
}

// SetEmpresaForUser creates or replaces the user's binding. Used by seeding
// and admin tooling; regular requests only read.
func (r *PerfilRepo) SetEmpresaForUser(ctx context.Context, userID, empresaID id.ID) error {
	query := `
		INSERT INTO sys_perfis (usuario_id, empresa_id)
		VALUES ($1, $2)
		ON CONFLICT (usuario_id) DO UPDATE SET empresa_id = EXCLUDED.empresa_id
	`

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, query, userID, empresaID); err != nil {
		return fmt.Errorf("upsert perfil: %w", err)
	}

	return nil
}

// Ensure interface compliance
var _ perfil.Repository = (*PerfilRepo)(nil)
