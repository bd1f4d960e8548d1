package orcamento

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/types"
	"gestor/internal/domain"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/pkg/numerator"
)

// --- test doubles ---

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	orcamentos map[id.ID]*Orcamento
	itens      map[id.ID][]Item
	listFilter ListFilter
}

func newMemRepo() *memRepo {
	return &memRepo{
		orcamentos: make(map[id.ID]*Orcamento),
		itens:      make(map[id.ID][]Item),
	}
}

func (m *memRepo) Create(ctx context.Context, o *Orcamento) error {
	stored := *o
	m.orcamentos[o.ID] = &stored
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, empresaID, orcamentoID id.ID) (*Orcamento, error) {
	o, ok := m.orcamentos[orcamentoID]
	if !ok || o.EmpresaID != empresaID {
		return nil, apperror.NewNotFound("orcamento", orcamentoID.String())
	}
	copied := *o
	return &copied, nil
}

func (m *memRepo) Update(ctx context.Context, o *Orcamento) error {
	if _, ok := m.orcamentos[o.ID]; !ok {
		return apperror.NewNotFound("orcamento", o.ID.String())
	}
	stored := *o
	m.orcamentos[o.ID] = &stored
	return nil
}

func (m *memRepo) Delete(ctx context.Context, empresaID, orcamentoID id.ID) error {
	o, ok := m.orcamentos[orcamentoID]
	if !ok || o.EmpresaID != empresaID {
		return apperror.NewNotFound("orcamento", orcamentoID.String())
	}
	delete(m.orcamentos, orcamentoID)
	delete(m.itens, orcamentoID)
	return nil
}

func (m *memRepo) List(ctx context.Context, empresaID id.ID, filter ListFilter) ([]*Orcamento, error) {
	m.listFilter = filter
	var out []*Orcamento
	for _, o := range m.orcamentos {
		if o.EmpresaID == empresaID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memRepo) SaveItens(ctx context.Context, orcamentoID id.ID, itens []Item) error {
	m.itens[orcamentoID] = append([]Item(nil), itens...)
	return nil
}

func (m *memRepo) GetItens(ctx context.Context, orcamentoID id.ID) ([]Item, error) {
	return append([]Item(nil), m.itens[orcamentoID]...), nil
}

func (m *memRepo) SetStatus(ctx context.Context, empresaID, orcamentoID id.ID, status Status) error {
	o, ok := m.orcamentos[orcamentoID]
	if !ok || o.EmpresaID != empresaID {
		return apperror.NewNotFound("orcamento", orcamentoID.String())
	}
	o.Status = status
	return nil
}

func (m *memRepo) UpdateTotal(ctx context.Context, empresaID, orcamentoID id.ID, total types.Money) error {
	o, ok := m.orcamentos[orcamentoID]
	if !ok || o.EmpresaID != empresaID {
		return apperror.NewNotFound("orcamento", orcamentoID.String())
	}
	o.Total = total
	return nil
}

type memClientes struct {
	nomes map[id.ID]string // known clientes per empresa are keyed only by id in tests
}

func (m *memClientes) Create(ctx context.Context, c *cliente.Cliente) error { return nil }
func (m *memClientes) GetByID(ctx context.Context, empresaID, clienteID id.ID) (*cliente.Cliente, error) {
	return nil, apperror.NewNotFound("cliente", clienteID.String())
}
func (m *memClientes) Update(ctx context.Context, c *cliente.Cliente) error { return nil }
func (m *memClientes) Delete(ctx context.Context, empresaID, clienteID id.ID) error {
	return nil
}
func (m *memClientes) List(ctx context.Context, empresaID id.ID, filter domain.ListFilter) (domain.ListResult[*cliente.Cliente], error) {
	return domain.ListResult[*cliente.Cliente]{}, nil
}
func (m *memClientes) Exists(ctx context.Context, empresaID, clienteID id.ID) (bool, error) {
	_, ok := m.nomes[clienteID]
	return ok, nil
}
func (m *memClientes) GetNomes(ctx context.Context, empresaID id.ID, ids []id.ID) (map[id.ID]string, error) {
	out := make(map[id.ID]string, len(ids))
	for _, cid := range ids {
		if nome, ok := m.nomes[cid]; ok {
			out[cid] = nome
		}
	}
	return out, nil
}

func newTestService(t *testing.T, clienteID id.ID) (*Service, *memRepo, *tenant.Empresa) {
	t.Helper()
	repo := newMemRepo()
	clientes := &memClientes{nomes: map[id.ID]string{clienteID: "Maria Silva"}}
	svc := NewService(repo, clientes, seqNumerator(), fakeTx{}, nil)
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	return svc, repo, emp
}

// seqNumerator returns a Numerator issuing ORC-000001, ORC-000002, ...
func seqNumerator() Numerator {
	n := 0
	return numeratorFunc(func() (string, error) {
		n++
		return fmt.Sprintf("ORC-%06d", n), nil
	})
}

type numeratorFunc func() (string, error)

func (f numeratorFunc) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	return f()
}

// --- tests ---

func TestCreate_TwoPhaseTotal(t *testing.T) {
	clienteID := id.New()
	svc, repo, emp := newTestService(t, clienteID)

	o := NewOrcamento(id.Nil(), clienteID)
	o.Itens = []Item{
		{Descricao: "alinhamento", Quantidade: types.MustMoney("1"), PrecoUnitario: types.MustMoney("150")},
		{}, // empty draft
		{Descricao: "balanceamento", Quantidade: types.MustMoney("4"), PrecoUnitario: types.MustMoney("25")},
	}

	err := svc.Create(context.Background(), emp, o)
	require.NoError(t, err)

	assert.Equal(t, emp.ID, o.EmpresaID)
	assert.Equal(t, "ORC-000001", o.Numero)
	assert.Equal(t, StatusRascunho, o.Status)
	assert.Equal(t, "250", o.Total.String())

	stored := repo.orcamentos[o.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "250", stored.Total.String())
	assert.Len(t, repo.itens[o.ID], 2)
}

func TestCreate_ClienteDesconhecido(t *testing.T) {
	svc, _, emp := newTestService(t, id.New())

	o := NewOrcamento(id.Nil(), id.New())
	err := svc.Create(context.Background(), emp, o)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetByID_OutraEmpresaNaoEncontrado(t *testing.T) {
	clienteID := id.New()
	svc, _, emp := newTestService(t, clienteID)

	o := NewOrcamento(id.Nil(), clienteID)
	require.NoError(t, svc.Create(context.Background(), emp, o))

	outra := &tenant.Empresa{ID: id.New(), Nome: "Outra", Ramo: tenant.RamoGeral}
	_, err := svc.GetByID(context.Background(), outra, o.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetByID_DecoraClienteNome(t *testing.T) {
	clienteID := id.New()
	svc, _, emp := newTestService(t, clienteID)

	o := NewOrcamento(id.Nil(), clienteID)
	require.NoError(t, svc.Create(context.Background(), emp, o))

	got, err := svc.GetByID(context.Background(), emp, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", got.ClienteNome)
}

func TestSetStatus(t *testing.T) {
	clienteID := id.New()
	svc, repo, emp := newTestService(t, clienteID)

	o := NewOrcamento(id.Nil(), clienteID)
	require.NoError(t, svc.Create(context.Background(), emp, o))

	require.NoError(t, svc.SetStatus(context.Background(), emp, o.ID, StatusEnviado))
	assert.Equal(t, StatusEnviado, repo.orcamentos[o.ID].Status)

	err := svc.SetStatus(context.Background(), emp, o.ID, "QUALQUER")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	outra := &tenant.Empresa{ID: id.New(), Nome: "Outra", Ramo: tenant.RamoGeral}
	err = svc.SetStatus(context.Background(), outra, o.ID, StatusAprovado)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, StatusEnviado, repo.orcamentos[o.ID].Status)
}

func TestList_PlacaApenasRamoAuto(t *testing.T) {
	clienteID := id.New()
	svc, repo, emp := newTestService(t, clienteID)

	_, err := svc.List(context.Background(), emp, ListFilter{Texto: "abc"})
	require.NoError(t, err)
	assert.True(t, repo.listFilter.BuscarPlaca)

	geral := &tenant.Empresa{ID: emp.ID, Nome: emp.Nome, Ramo: tenant.RamoGeral}
	_, err = svc.List(context.Background(), geral, ListFilter{Texto: "abc"})
	require.NoError(t, err)
	assert.False(t, repo.listFilter.BuscarPlaca)
}

func TestDuplicar(t *testing.T) {
	clienteID := id.New()
	svc, repo, emp := newTestService(t, clienteID)

	o := NewOrcamento(id.Nil(), clienteID)
	o.Itens = []Item{
		{Descricao: "pastilhas", Quantidade: types.MustMoney("1"), PrecoUnitario: types.MustMoney("320")},
	}
	require.NoError(t, svc.Create(context.Background(), emp, o))
	require.NoError(t, svc.SetStatus(context.Background(), emp, o.ID, StatusRecusado))

	dup, err := svc.Duplicar(context.Background(), emp, o.ID)
	require.NoError(t, err)

	assert.NotEqual(t, o.ID, dup.ID)
	assert.Equal(t, "ORC-000002", dup.Numero)
	assert.Equal(t, StatusRascunho, dup.Status)
	assert.Equal(t, "320", dup.Total.String())
	assert.Len(t, repo.itens[dup.ID], 1)

	// original keeps its own status and numero
	assert.Equal(t, StatusRecusado, repo.orcamentos[o.ID].Status)
	assert.Equal(t, "ORC-000001", repo.orcamentos[o.ID].Numero)
}
