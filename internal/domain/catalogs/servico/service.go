package servico

import (
	"context"
	"strings"

	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/domain"
	"gestor/internal/domain/audit"
)

// Service provides business logic for the Servico catalog.
type Service struct {
	*domain.CatalogService[*Servico]
	repo Repository
}

// NewService creates a new Servico service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Servico]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      auditor,
		EntityName: "servico",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.normalize)
	base.Hooks().OnBeforeUpdate(svc.normalize)

	return svc
}

func (s *Service) normalize(ctx context.Context, sv *Servico) error {
	sv.Nome = strings.TrimSpace(sv.Nome)
	return nil
}

// Create creates a servico owned by the resolved empresa.
func (s *Service) Create(ctx context.Context, emp *tenant.Empresa, sv *Servico) error {
	sv.EmpresaID = emp.ID
	return s.CatalogService.Create(ctx, sv)
}

// Update updates a servico within the resolved empresa.
func (s *Service) Update(ctx context.Context, emp *tenant.Empresa, sv *Servico) error {
	existing, err := s.GetByID(ctx, emp, sv.ID)
	if err != nil {
		return err
	}
	sv.EmpresaID = emp.ID
	sv.Version = existing.Version
	sv.CreatedAt = existing.CreatedAt
	return s.CatalogService.Update(ctx, sv)
}
