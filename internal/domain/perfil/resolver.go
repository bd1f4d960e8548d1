// Package perfil resolves the empresa of an authenticated user.
// A perfil is the one-to-one binding between a usuário and their empresa;
// every request must resolve it before touching tenant-scoped data.
package perfil

import (
	"context"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/domain/catalogs/empresa"
)

// Repository looks up the perfil binding.
type Repository interface {
	// GetEmpresaForUser returns the empresa bound to the user via sys_perfis.
	// Returns a not-found AppError when the user has no binding.
	GetEmpresaForUser(ctx context.Context, userID id.ID) (*empresa.Empresa, error)
}

// Resolver resolves the request empresa from the authenticated principal.
type Resolver struct {
	repo Repository
}

// NewResolver creates a new Resolver.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the empresa of the given user.
//
// A user without a perfil, or bound to an inactive empresa, is a deployment
// mistake, not a bad request: the error is a configuration error (500) and
// retrying will not help until an operator fixes the binding.
func (r *Resolver) Resolve(ctx context.Context, userID id.ID) (*tenant.Empresa, error) {
	e, err := r.repo.GetEmpresaForUser(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewConfiguration("usuário sem empresa vinculada").
				WithDetail("user_id", userID.String())
		}
		return nil, err
	}

	if !e.Ativo {
		return nil, apperror.NewConfiguration("empresa vinculada está inativa").
			WithDetail("user_id", userID.String()).
			WithDetail("empresa_id", e.ID.String())
	}

	return e.Resolved(), nil
}
