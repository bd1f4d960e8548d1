// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/domain/audit"
	"gestor/pkg/logger"
)

// CatalogService provides business logic for empresa-scoped catalog entities.
// Concrete services embed it and set the entity's EmpresaID before delegating.
type CatalogService[T Scoped] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	auditor   audit.Recorder
	hooks     *HookRegistry[T]

	// entityName for error messages and audit entries
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T Scoped] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Audit      audit.Recorder
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T Scoped](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	auditor := cfg.Audit
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		auditor:    auditor,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found is mapped to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

func (s *CatalogService[T]) record(ctx context.Context, entityID id.ID, action audit.Action) {
	err := s.auditor.Record(ctx, audit.Entry{
		EntityType: s.entityName,
		EntityID:   entityID,
		Action:     action,
	})
	if err != nil {
		logger.Warn(ctx, "audit record failed", "entity", s.entityName, "error", err)
	}
}

// Create creates a new catalog entity.
// The caller must have set the entity's EmpresaID to the resolved empresa.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.RunBeforeCreate(ctx, entity); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, entity.GetID(), audit.ActionCreate)

	if err := s.hooks.RunAfterCreate(ctx, entity); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID within the resolved empresa.
func (s *CatalogService[T]) GetByID(ctx context.Context, emp *tenant.Empresa, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, emp.ID, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.RunBeforeUpdate(ctx, entity); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, entity.GetID(), audit.ActionUpdate)

	if err := s.hooks.RunAfterUpdate(ctx, entity); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete removes the entity. Records referenced by quotes or documents
// surface an in-use error from the repository (FK protection).
func (s *CatalogService[T]) Delete(ctx context.Context, emp *tenant.Empresa, entityID id.ID) error {
	entity, err := s.repo.GetByID(ctx, emp.ID, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.RunBeforeDelete(ctx, entity); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, emp.ID, entityID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, entityID, audit.ActionDelete)

	if err := s.hooks.RunAfterDelete(ctx, entity); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, emp *tenant.Empresa, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, emp.ID, filter)
}

// Exists checks if entity exists within the resolved empresa.
func (s *CatalogService[T]) Exists(ctx context.Context, emp *tenant.Empresa, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, emp.ID, entityID)
}
