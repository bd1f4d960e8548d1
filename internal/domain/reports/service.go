package reports

import (
	"context"
	"fmt"
	"time"

	"gestor/internal/core/tenant"
)

const ultimosLimit = 5

// Service assembles the dashboard.
type Service struct {
	repo Repository

	// now is injectable for tests
	now func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Dashboard builds the summary for the empresa. Date ranges are computed in
// UTC: "hoje" is [today 00:00, tomorrow 00:00), "mês" is the first of the
// current month until the first of the next.
func (s *Service) Dashboard(ctx context.Context, emp *tenant.Empresa) (*Dashboard, error) {
	now := s.now().UTC()
	hoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	amanha := hoje.AddDate(0, 0, 1)
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	proximoMes := inicioMes.AddDate(0, 1, 0)

	faturamentoHoje, err := s.repo.GetFaturamento(ctx, emp.ID, hoje, amanha)
	if err != nil {
		return nil, fmt.Errorf("faturamento hoje: %w", err)
	}

	faturamentoMes, err := s.repo.GetFaturamento(ctx, emp.ID, inicioMes, proximoMes)
	if err != nil {
		return nil, fmt.Errorf("faturamento mês: %w", err)
	}

	osAbertas, err := s.repo.CountOSAbertas(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("count os abertas: %w", err)
	}

	orcamentosAbertos, err := s.repo.CountOrcamentosAbertos(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("count orçamentos abertos: %w", err)
	}

	ultimosOrcamentos, err := s.repo.GetUltimosOrcamentos(ctx, emp.ID, ultimosLimit)
	if err != nil {
		return nil, fmt.Errorf("últimos orçamentos: %w", err)
	}

	ultimosDocumentos, err := s.repo.GetUltimosDocumentos(ctx, emp.ID, ultimosLimit)
	if err != nil {
		return nil, fmt.Errorf("últimos documentos: %w", err)
	}

	return &Dashboard{
		FaturamentoHoje:   faturamentoHoje,
		FaturamentoMes:    faturamentoMes,
		OSAbertas:         osAbertas,
		OrcamentosAbertos: orcamentosAbertos,
		UltimosOrcamentos: ultimosOrcamentos,
		UltimosDocumentos: ultimosDocumentos,
	}, nil
}
