// Package conversao turns an approved quote into a sale or service order.
// Conversion is idempotent per (quote, tipo): repeating it returns the
// already-converted document instead of creating a second one.
package conversao

import (
	"context"
	"fmt"
	"time"

	"gestor/internal/core/apperror"
	appctx "gestor/internal/core/context"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/tx"
	"gestor/internal/domain/audit"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/domain/documents/orcamento"
	"gestor/pkg/logger"
	"gestor/pkg/numerator"
)

// Numerator issues document numbers. Implemented by pkg/numerator.
type Numerator interface {
	GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error)
}

// Result is the outcome of a conversion.
type Result struct {
	Documento *documento.Documento
	// Created is false when an existing document was returned instead of
	// a new one being inserted.
	Created bool
}

// Service converts quotes into documents.
type Service struct {
	orcamentos orcamento.Repository
	documentos documento.Repository
	numerator  Numerator
	txManager  tx.Manager
	auditor    audit.Recorder
}

// NewService creates a new conversion service.
func NewService(orcamentos orcamento.Repository, documentos documento.Repository, num Numerator, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		orcamentos: orcamentos,
		documentos: documentos,
		numerator:  num,
		txManager:  txManager,
		auditor:    auditor,
	}
}

func numeroPrefix(tipo documento.Tipo) string {
	if tipo == documento.TipoVenda {
		return "VEN"
	}
	return "OS"
}

// Convert creates a document of the given tipo from the quote, or returns
// the one already created for this (quote, tipo) pair.
//
// Two callers racing past the existence check both try to insert; the
// partial unique index on (origem_orcamento_id, tipo) rejects the loser
// with a duplicate error. The transaction is aborted by then, so the
// winner's row is re-read outside of it. The quote status is left alone:
// conversion records a business fact, it does not drive the quote workflow.
func (s *Service) Convert(ctx context.Context, emp *tenant.Empresa, orcamentoID id.ID, tipo documento.Tipo) (*Result, error) {
	if !tipo.Valid() {
		return nil, apperror.NewValidation("invalid tipo").
			WithDetail("field", "tipo").
			WithDetail("value", string(tipo))
	}

	var result *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orcamentos.GetByID(ctx, emp.ID, orcamentoID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("orcamento", orcamentoID.String())
			}
			return err
		}

		existing, err := s.documentos.GetByOrigem(ctx, emp.ID, orcamentoID, tipo)
		if err == nil {
			result = &Result{Documento: existing, Created: false}
			return nil
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		numero, err := s.numerator.GetNextNumber(ctx, numerator.ConfigFor(numeroPrefix(tipo), emp.ID.String()), nil, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("generate numero: %w", err)
		}

		d := s.build(o, tipo)
		d.Numero = numero
		d.CreatedBy = appctx.GetUserID(ctx)
		d.UpdatedBy = d.CreatedBy

		if err := s.documentos.Create(ctx, d); err != nil {
			return fmt.Errorf("create documento: %w", err)
		}
		result = &Result{Documento: d, Created: true}
		return nil
	})
	if err != nil {
		if apperror.IsDuplicate(err) {
			// Lost the race: the transaction that inserted first owns the
			// row now. Ours rolled back, so read outside it.
			existing, getErr := s.documentos.GetByOrigem(ctx, emp.ID, orcamentoID, tipo)
			if getErr != nil {
				return nil, fmt.Errorf("load documento after duplicate: %w", getErr)
			}
			return &Result{Documento: existing, Created: false}, nil
		}
		return nil, err
	}

	if result.Created {
		s.record(ctx, result.Documento.ID, orcamentoID, tipo)
	}
	return result, nil
}

func (s *Service) build(o *orcamento.Orcamento, tipo documento.Tipo) *documento.Documento {
	origem := o.ID
	d := &documento.Documento{}
	d.Document = entity.NewDocument()
	d.Observacoes = o.Observacoes
	d.EmpresaID = o.EmpresaID
	d.ClienteID = o.ClienteID
	d.Tipo = tipo
	d.OrigemOrcamentoID = &origem
	d.Placa = o.Placa
	d.VeiculoDescricao = o.VeiculoDescricao
	d.Total = o.Total
	return d
}

func (s *Service) record(ctx context.Context, documentoID, orcamentoID id.ID, tipo documento.Tipo) {
	err := s.auditor.Record(ctx, audit.Entry{
		EntityType: "documento",
		EntityID:   documentoID,
		Action:     audit.ActionConvert,
		Changes: map[string]any{
			"origem_orcamento_id": orcamentoID.String(),
			"tipo":                string(tipo),
		},
	})
	if err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "documento", "error", err)
	}
}
