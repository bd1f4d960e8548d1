package produto

import (
	"context"
	"strings"

	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/domain"
	"gestor/internal/domain/audit"
)

// Service provides business logic for the Produto catalog.
type Service struct {
	*domain.CatalogService[*Produto]
	repo Repository
}

// NewService creates a new Produto service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Produto]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      auditor,
		EntityName: "produto",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.normalize)
	base.Hooks().OnBeforeUpdate(svc.normalize)

	return svc
}

func (s *Service) normalize(ctx context.Context, p *Produto) error {
	p.Nome = strings.TrimSpace(p.Nome)
	return nil
}

// Create creates a produto owned by the resolved empresa.
func (s *Service) Create(ctx context.Context, emp *tenant.Empresa, p *Produto) error {
	p.EmpresaID = emp.ID
	return s.CatalogService.Create(ctx, p)
}

// Update updates a produto within the resolved empresa.
func (s *Service) Update(ctx context.Context, emp *tenant.Empresa, p *Produto) error {
	existing, err := s.GetByID(ctx, emp, p.ID)
	if err != nil {
		return err
	}
	p.EmpresaID = emp.ID
	p.Version = existing.Version
	p.CreatedAt = existing.CreatedAt
	return s.CatalogService.Update(ctx, p)
}
