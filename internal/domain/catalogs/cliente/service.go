package cliente

import (
	"context"
	"strings"

	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/domain"
	"gestor/internal/domain/audit"
)

// Service provides business logic for the Cliente catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Cliente]
	repo Repository
}

// NewService creates a new Cliente service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Cliente]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      auditor,
		EntityName: "cliente",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.normalize)
	base.Hooks().OnBeforeUpdate(svc.normalize)

	return svc
}

// normalize trims user-entered fields before persistence.
func (s *Service) normalize(ctx context.Context, c *Cliente) error {
	c.Nome = strings.TrimSpace(c.Nome)
	if c.Email != nil {
		trimmed := strings.TrimSpace(strings.ToLower(*c.Email))
		c.Email = &trimmed
	}
	return nil
}

// Create creates a cliente owned by the resolved empresa.
func (s *Service) Create(ctx context.Context, emp *tenant.Empresa, c *Cliente) error {
	c.EmpresaID = emp.ID
	return s.CatalogService.Create(ctx, c)
}

// Update updates a cliente within the resolved empresa.
// The stored row is fetched first so a foreign ID surfaces as not-found.
func (s *Service) Update(ctx context.Context, emp *tenant.Empresa, c *Cliente) error {
	existing, err := s.GetByID(ctx, emp, c.ID)
	if err != nil {
		return err
	}
	c.EmpresaID = emp.ID
	c.Version = existing.Version
	c.CreatedAt = existing.CreatedAt
	return s.CatalogService.Update(ctx, c)
}
