package empresa

import (
	"context"
	"fmt"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tx"
)

// Service provides business logic for the Empresa catalog.
// The HTTP surface only exposes reading the caller's own empresa; create and
// update exist for the seed command and future admin tooling.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Empresa service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a new empresa.
func (s *Service) Create(ctx context.Context, e *Empresa) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create empresa: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an empresa.
func (s *Service) GetByID(ctx context.Context, empresaID id.ID) (*Empresa, error) {
	e, err := s.repo.GetByID(ctx, empresaID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("empresa", empresaID.String())
		}
		return nil, err
	}
	return e, nil
}

// Update modifies an empresa.
func (s *Service) Update(ctx context.Context, e *Empresa) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update empresa: %w", err)
		}
		return nil
	})
}
