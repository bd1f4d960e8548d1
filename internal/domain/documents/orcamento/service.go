package orcamento

import (
	"context"
	"fmt"
	"time"

	"gestor/internal/core/apperror"
	appctx "gestor/internal/core/context"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/core/types"
	"gestor/internal/domain/audit"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/pkg/logger"
	"gestor/pkg/numerator"
)

// Numerator issues document numbers. Implemented by pkg/numerator.
type Numerator interface {
	GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error)
}

// Service provides business logic for quotes.
type Service struct {
	repo      Repository
	clientes  cliente.Repository
	numerator Numerator
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new Orcamento service.
func NewService(repo Repository, clientes cliente.Repository, num Numerator, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		clientes:  clientes,
		numerator: num,
		txManager: txManager,
		auditor:   auditor,
	}
}

func (s *Service) record(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	err := s.auditor.Record(ctx, audit.Entry{
		EntityType: "orcamento",
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
	})
	if err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "orcamento", "error", err)
	}
}

// Create persists a new quote with its line items.
//
// The total is stored in two phases inside one transaction: the header is
// inserted with total 0, the normalized items are saved, and the header is
// then updated with the sum of the item totals. Readers in other
// transactions never observe a header whose total disagrees with its items.
func (s *Service) Create(ctx context.Context, emp *tenant.Empresa, o *Orcamento) error {
	o.EmpresaID = emp.ID
	if o.Status == "" {
		o.Status = StatusRascunho
	}
	if o.Data.IsZero() {
		o.Data = time.Now().UTC()
	}

	if err := o.Validate(ctx); err != nil {
		return err
	}

	ok, err := s.clientes.Exists(ctx, emp.ID, o.ClienteID)
	if err != nil {
		return fmt.Errorf("check cliente: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("cliente", o.ClienteID.String())
	}

	o.NormalizarItens()

	if o.Numero == "" {
		numero, err := s.numerator.GetNextNumber(ctx, numerator.ConfigFor("ORC", emp.ID.String()), nil, o.Data)
		if err != nil {
			return fmt.Errorf("generate numero: %w", err)
		}
		o.Numero = numero
	}

	o.CreatedBy = appctx.GetUserID(ctx)
	o.UpdatedBy = o.CreatedBy

	total := o.TotalItens()
	o.Total = types.Zero()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create orcamento: %w", err)
		}
		if err := s.repo.SaveItens(ctx, o.ID, o.Itens); err != nil {
			return fmt.Errorf("save itens: %w", err)
		}
		if err := s.repo.UpdateTotal(ctx, emp.ID, o.ID, total); err != nil {
			return fmt.Errorf("update total: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.Total = total

	s.record(ctx, o.ID, audit.ActionCreate, nil)
	return nil
}

// GetByID retrieves a quote with its line items and the cliente name.
func (s *Service) GetByID(ctx context.Context, emp *tenant.Empresa, orcamentoID id.ID) (*Orcamento, error) {
	o, err := s.repo.GetByID(ctx, emp.ID, orcamentoID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("orcamento", orcamentoID.String())
		}
		return nil, err
	}

	itens, err := s.repo.GetItens(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("load itens: %w", err)
	}
	o.Itens = itens

	if err := s.decorateNomes(ctx, emp.ID, []*Orcamento{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the quote header and its line items.
// Numero, criação and version are taken from the stored row, so a quote
// in another empresa surfaces as not-found before anything is written.
func (s *Service) Update(ctx context.Context, emp *tenant.Empresa, o *Orcamento) error {
	existing, err := s.repo.GetByID(ctx, emp.ID, o.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("orcamento", o.ID.String())
		}
		return err
	}

	o.EmpresaID = emp.ID
	o.Numero = existing.Numero
	o.Version = existing.Version
	o.CreatedAt = existing.CreatedAt
	o.CreatedBy = existing.CreatedBy
	if o.Status == "" {
		o.Status = existing.Status
	}
	if o.Data.IsZero() {
		o.Data = existing.Data
	}

	if err := o.Validate(ctx); err != nil {
		return err
	}

	ok, err := s.clientes.Exists(ctx, emp.ID, o.ClienteID)
	if err != nil {
		return fmt.Errorf("check cliente: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("cliente", o.ClienteID.String())
	}

	o.NormalizarItens()
	o.Total = o.TotalItens()
	o.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, o); err != nil {
			return fmt.Errorf("update orcamento: %w", err)
		}
		if err := s.repo.SaveItens(ctx, o.ID, o.Itens); err != nil {
			return fmt.Errorf("save itens: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, o.ID, audit.ActionUpdate, nil)
	return nil
}

// Delete removes the quote and its items. Documents converted from the
// quote keep existing; their origem reference is cleared by the schema.
func (s *Service) Delete(ctx context.Context, emp *tenant.Empresa, orcamentoID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, emp.ID, orcamentoID)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("orcamento", orcamentoID.String())
		}
		return err
	}

	s.record(ctx, orcamentoID, audit.ActionDelete, nil)
	return nil
}

// List retrieves quotes for the empresa. Plate matching is enabled only for
// empresas in the AUTO ramo.
func (s *Service) List(ctx context.Context, emp *tenant.Empresa, filter ListFilter) ([]*Orcamento, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewValidation("invalid status filter").
			WithDetail("value", string(filter.Status))
	}
	filter.BuscarPlaca = emp.Ramo == tenant.RamoAuto

	rows, err := s.repo.List(ctx, emp.ID, filter)
	if err != nil {
		return nil, err
	}
	if err := s.decorateNomes(ctx, emp.ID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetStatus transitions the quote lifecycle state. Any transition between
// valid states is allowed; conversion eligibility is not checked here.
func (s *Service) SetStatus(ctx context.Context, emp *tenant.Empresa, orcamentoID id.ID, status Status) error {
	if !status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(status))
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetStatus(ctx, emp.ID, orcamentoID, status)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("orcamento", orcamentoID.String())
		}
		return err
	}

	s.record(ctx, orcamentoID, audit.ActionStatus, map[string]any{"status": string(status)})
	return nil
}

// Duplicar creates an independent RASCUNHO copy of the quote with a fresh
// numero. Stored line totals are carried over verbatim.
func (s *Service) Duplicar(ctx context.Context, emp *tenant.Empresa, orcamentoID id.ID) (*Orcamento, error) {
	orig, err := s.GetByID(ctx, emp, orcamentoID)
	if err != nil {
		return nil, err
	}

	dup := orig.Duplicar()

	numero, err := s.numerator.GetNextNumber(ctx, numerator.ConfigFor("ORC", emp.ID.String()), nil, dup.Data)
	if err != nil {
		return nil, fmt.Errorf("generate numero: %w", err)
	}
	dup.Numero = numero
	dup.CreatedBy = appctx.GetUserID(ctx)
	dup.UpdatedBy = dup.CreatedBy

	total := dup.Total
	dup.Total = types.Zero()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, dup); err != nil {
			return fmt.Errorf("create orcamento: %w", err)
		}
		if err := s.repo.SaveItens(ctx, dup.ID, dup.Itens); err != nil {
			return fmt.Errorf("save itens: %w", err)
		}
		if err := s.repo.UpdateTotal(ctx, emp.ID, dup.ID, total); err != nil {
			return fmt.Errorf("update total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	dup.Total = total
	dup.ClienteNome = orig.ClienteNome

	s.record(ctx, dup.ID, audit.ActionCreate, map[string]any{"duplicado_de": orcamentoID.String()})
	return dup, nil
}

func (s *Service) decorateNomes(ctx context.Context, empresaID id.ID, rows []*Orcamento) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]id.ID, 0, len(rows))
	seen := make(map[id.ID]struct{}, len(rows))
	for _, o := range rows {
		if _, ok := seen[o.ClienteID]; ok {
			continue
		}
		seen[o.ClienteID] = struct{}{}
		ids = append(ids, o.ClienteID)
	}

	nomes, err := s.clientes.GetNomes(ctx, empresaID, ids)
	if err != nil {
		return fmt.Errorf("load cliente nomes: %w", err)
	}
	for _, o := range rows {
		o.ClienteNome = nomes[o.ClienteID]
	}
	return nil
}
