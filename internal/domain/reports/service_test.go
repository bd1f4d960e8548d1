package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/types"
)

type mockRepo struct {
	faturamentoCalls [][2]time.Time
	ultimosLimits    []int
}

func (m *mockRepo) GetFaturamento(ctx context.Context, empresaID id.ID, de, ate time.Time) (types.Money, error) {
	m.faturamentoCalls = append(m.faturamentoCalls, [2]time.Time{de, ate})
	return types.MustMoney("1234.50"), nil
}

func (m *mockRepo) CountOSAbertas(ctx context.Context, empresaID id.ID) (int64, error) {
	return 3, nil
}

func (m *mockRepo) CountOrcamentosAbertos(ctx context.Context, empresaID id.ID) (int64, error) {
	return 7, nil
}

func (m *mockRepo) GetUltimosOrcamentos(ctx context.Context, empresaID id.ID, limit int) ([]OrcamentoResumo, error) {
	m.ultimosLimits = append(m.ultimosLimits, limit)
	return []OrcamentoResumo{{Numero: "ORC-2026-000003"}}, nil
}

func (m *mockRepo) GetUltimosDocumentos(ctx context.Context, empresaID id.ID, limit int) ([]DocumentoResumo, error) {
	m.ultimosLimits = append(m.ultimosLimits, limit)
	return []DocumentoResumo{{Numero: "OS-2026-000001"}}, nil
}

func TestDashboard(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	}

	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	d, err := svc.Dashboard(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, "1234.5", d.FaturamentoHoje.String())
	assert.Equal(t, int64(3), d.OSAbertas)
	assert.Equal(t, int64(7), d.OrcamentosAbertos)
	require.Len(t, d.UltimosOrcamentos, 1)
	require.Len(t, d.UltimosDocumentos, 1)

	// today range, then month range, both half-open
	require.Len(t, repo.faturamentoCalls, 2)
	hoje := repo.faturamentoCalls[0]
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), hoje[0])
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), hoje[1])

	mes := repo.faturamentoCalls[1]
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), mes[0])
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), mes[1])

	assert.Equal(t, []int{5, 5}, repo.ultimosLimits)
}
