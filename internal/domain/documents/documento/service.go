package documento

import (
	"context"
	"fmt"
	"time"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/core/types"
	"gestor/internal/domain/audit"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/pkg/logger"
)

// PagamentoInput is the payload for recording a payment.
type PagamentoInput struct {
	// Valor nil means "settle the outstanding saldo". Negative values
	// register refunds.
	Valor       *types.Money
	Forma       FormaPagamento
	Data        *time.Time
	Observacoes string
}

// Service provides business logic for documents and their payment ledger.
// Documents themselves are created by the conversion service; here they are
// read and settled.
type Service struct {
	repo      Repository
	clientes  cliente.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new Documento service.
func NewService(repo Repository, clientes cliente.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		clientes:  clientes,
		txManager: txManager,
		auditor:   auditor,
	}
}

func (s *Service) record(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	err := s.auditor.Record(ctx, audit.Entry{
		EntityType: "documento",
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
	})
	if err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "documento", "error", err)
	}
}

// GetByID retrieves a document with its payment ledger, derived totals and
// the cliente name.
func (s *Service) GetByID(ctx context.Context, emp *tenant.Empresa, documentoID id.ID) (*Documento, error) {
	d, err := s.repo.GetByID(ctx, emp.ID, documentoID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("documento", documentoID.String())
		}
		return nil, err
	}

	pagamentos, err := s.repo.GetPagamentos(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("load pagamentos: %w", err)
	}
	d.Pagamentos = pagamentos
	d.SomarPagamentos()

	if err := s.decorateNomes(ctx, emp.ID, []*Documento{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// List retrieves documents for the empresa. ValorPago comes aggregated from
// the repository; plate matching is enabled only for the AUTO ramo.
func (s *Service) List(ctx context.Context, emp *tenant.Empresa, filter ListFilter) ([]*Documento, error) {
	if filter.Tipo != "" && !filter.Tipo.Valid() {
		return nil, apperror.NewValidation("invalid tipo filter").
			WithDetail("value", string(filter.Tipo))
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

// RecordPayment appends an entry to the document's payment ledger.
//
// The saldo is read inside the transaction so the default ("settle the
// rest") cannot race with another payment. A payment that would be zero is
// rejected: it means the document is already settled, or an explicit zero
// was sent for one with no saldo. The document total is never touched.
func (s *Service) RecordPayment(ctx context.Context, emp *tenant.Empresa, documentoID id.ID, input PagamentoInput) (*Pagamento, error) {
	if !input.Forma.Valid() {
		return nil, apperror.NewValidation("invalid forma_pagamento").
			WithDetail("field", "formaPagamento").
			WithDetail("value", string(input.Forma))
	}

	var p *Pagamento
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, emp.ID, documentoID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("documento", documentoID.String())
			}
			return err
		}

		pago, err := s.repo.SomaPagamentos(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("sum pagamentos: %w", err)
		}
		saldo := d.Total.Sub(pago)

		valor := saldo
		if input.Valor != nil && !input.Valor.IsZero() {
			valor = *input.Valor
		}
		if valor.IsZero() {
			return apperror.NewValidation("documento já está quitado").
				WithDetail("documento_id", documentoID.String())
		}

		data := time.Now().UTC()
		if input.Data != nil {
			data = *input.Data
		}

		p = &Pagamento{
			ID:          id.New(),
			DocumentoID: d.ID,
			Data:        data,
			Valor:       valor,
			Forma:       input.Forma,
			Observacoes: input.Observacoes,
		}
		if err := s.repo.AddPagamento(ctx, p); err != nil {
			return fmt.Errorf("add pagamento: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, documentoID, audit.ActionPayment, map[string]any{
		"pagamento_id": p.ID.String(),
		"valor":        p.Valor.String(),
		"forma":        string(p.Forma),
	})
	return p, nil
}

// DeletePayment removes a ledger entry. Used to correct mistakes; the
// derived financial state adjusts on the next read.
func (s *Service) DeletePayment(ctx context.Context, emp *tenant.Empresa, documentoID, pagamentoID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, emp.ID, documentoID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("documento", documentoID.String())
			}
			return err
		}
		return s.repo.DeletePagamento(ctx, documentoID, pagamentoID)
	})
	if err != nil {
		return err
	}

	s.record(ctx, documentoID, audit.ActionPayment, map[string]any{
		"pagamento_id": pagamentoID.String(),
		"removido":     true,
	})
	return nil
}

func (s *Service) decorateNomes(ctx context.Context, empresaID id.ID, rows []*Documento) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]id.ID, 0, len(rows))
	seen := make(map[id.ID]struct{}, len(rows))
	for _, d := range rows {
		if _, ok := seen[d.ClienteID]; ok {
			continue
		}
		seen[d.ClienteID] = struct{}{}
		ids = append(ids, d.ClienteID)
	}

	nomes, err := s.clientes.GetNomes(ctx, empresaID, ids)
	if err != nil {
		return fmt.Errorf("load cliente nomes: %w", err)
	}
	for _, d := range rows {
		d.ClienteNome = nomes[d.ClienteID]
	}
	return nil
}
