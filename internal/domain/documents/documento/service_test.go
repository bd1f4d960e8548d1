package documento

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/types"
	"gestor/internal/domain"
	"gestor/internal/domain/catalogs/cliente"
)

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	documentos map[id.ID]*Documento
	pagamentos map[id.ID][]Pagamento
}

func newMemRepo() *memRepo {
	return &memRepo{
		documentos: make(map[id.ID]*Documento),
		pagamentos: make(map[id.ID][]Pagamento),
	}
}

func (m *memRepo) Create(ctx context.Context, d *Documento) error {
	stored := *d
	m.documentos[d.ID] = &stored
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, empresaID, documentoID id.ID) (*Documento, error) {
	d, ok := m.documentos[documentoID]
	if !ok || d.EmpresaID != empresaID {
		return nil, apperror.NewNotFound("documento", documentoID.String())
	}
	copied := *d
	return &copied, nil
}

func (m *memRepo) GetByOrigem(ctx context.Context, empresaID, orcamentoID id.ID, tipo Tipo) (*Documento, error) {
	for _, d := range m.documentos {
		if d.EmpresaID == empresaID && d.Tipo == tipo &&
			d.OrigemOrcamentoID != nil && *d.OrigemOrcamentoID == orcamentoID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("documento", orcamentoID.String())
}

func (m *memRepo) List(ctx context.Context, empresaID id.ID, filter ListFilter) ([]*Documento, error) {
	var out []*Documento
	for _, d := range m.documentos {
		if d.EmpresaID != empresaID {
			continue
		}
		copied := *d
		copied.Pagamentos = m.pagamentos[d.ID]
		copied.SomarPagamentos()
		copied.Pagamentos = nil
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memRepo) GetPagamentos(ctx context.Context, documentoID id.ID) ([]Pagamento, error) {
	return append([]Pagamento(nil), m.pagamentos[documentoID]...), nil
}

func (m *memRepo) SomaPagamentos(ctx context.Context, documentoID id.ID) (types.Money, error) {
	total := types.Zero()
	for _, p := range m.pagamentos[documentoID] {
		total = total.Add(p.Valor)
	}
	return total, nil
}

func (m *memRepo) AddPagamento(ctx context.Context, p *Pagamento) error {
	m.pagamentos[p.DocumentoID] = append(m.pagamentos[p.DocumentoID], *p)
	return nil
}

func (m *memRepo) DeletePagamento(ctx context.Context, documentoID, pagamentoID id.ID) error {
	list := m.pagamentos[documentoID]
	for i, p := range list {
		if p.ID == pagamentoID {
			m.pagamentos[documentoID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("pagamento", pagamentoID.String())
}

type stubClientes struct{ nomes map[id.ID]string }

func (s *stubClientes) Create(ctx context.Context, c *cliente.Cliente) error { return nil }
func (s *stubClientes) GetByID(ctx context.Context, empresaID, clienteID id.ID) (*cliente.Cliente, error) {
	return nil, apperror.NewNotFound("cliente", clienteID.String())
}
func (s *stubClientes) Update(ctx context.Context, c *cliente.Cliente) error        { return nil }
func (s *stubClientes) Delete(ctx context.Context, empresaID, clienteID id.ID) error { return nil }
func (s *stubClientes) List(ctx context.Context, empresaID id.ID, filter domain.ListFilter) (domain.ListResult[*cliente.Cliente], error) {
	return domain.ListResult[*cliente.Cliente]{}, nil
}
func (s *stubClientes) Exists(ctx context.Context, empresaID, clienteID id.ID) (bool, error) {
	_, ok := s.nomes[clienteID]
	return ok, nil
}
func (s *stubClientes) GetNomes(ctx context.Context, empresaID id.ID, ids []id.ID) (map[id.ID]string, error) {
	out := make(map[id.ID]string)
	for _, cid := range ids {
		if nome, ok := s.nomes[cid]; ok {
			out[cid] = nome
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *memRepo, *tenant.Empresa, *Documento) {
	t.Helper()
	repo := newMemRepo()
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	clienteID := id.New()

	d := &Documento{}
	d.ID = id.New()
	d.EmpresaID = emp.ID
	d.ClienteID = clienteID
	d.Tipo = TipoOS
	d.Numero = "OS-2026-000001"
	d.Total = types.MustMoney("300")
	repo.documentos[d.ID] = d

	svc := NewService(repo, &stubClientes{nomes: map[id.ID]string{clienteID: "João Souza"}}, fakeTx{}, nil)
	return svc, repo, emp, d
}

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestRecordPayment_Explicito(t *testing.T) {
	svc, repo, emp, d := newTestService(t)

	p, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("100"),
		Forma: FormaPix,
	})
	require.NoError(t, err)
	assert.Equal(t, "100", p.Valor.String())
	assert.Len(t, repo.pagamentos[d.ID], 1)

	// document total untouched
	assert.Equal(t, "300", repo.documentos[d.ID].Total.String())
}

func TestRecordPayment_DefaultQuitaSaldo(t *testing.T) {
	svc, _, emp, d := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("120"),
		Forma: FormaDinheiro,
	})
	require.NoError(t, err)

	p, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Forma: FormaCartao,
	})
	require.NoError(t, err)
	assert.Equal(t, "180", p.Valor.String())

	got, err := svc.GetByID(context.Background(), emp, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPago, got.Status())
	assert.True(t, got.Saldo().IsZero())
}

func TestRecordPayment_DocumentoQuitadoRejeitado(t *testing.T) {
	svc, _, emp, d := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("300"),
		Forma: FormaPix,
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{Forma: FormaPix})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordPayment_EstornoNegativo(t *testing.T) {
	svc, _, emp, d := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("300"),
		Forma: FormaPix,
	})
	require.NoError(t, err)

	p, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("-50"),
		Forma: FormaOutro,
	})
	require.NoError(t, err)
	assert.Equal(t, "-50", p.Valor.String())

	got, err := svc.GetByID(context.Background(), emp, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusParcial, got.Status())
	assert.Equal(t, "50", got.Saldo().String())
}

func TestRecordPayment_FormaInvalida(t *testing.T) {
	svc, _, emp, d := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("10"),
		Forma: "CHEQUE",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordPayment_OutraEmpresaNaoEncontrado(t *testing.T) {
	svc, _, _, d := newTestService(t)

	outra := &tenant.Empresa{ID: id.New(), Nome: "Outra", Ramo: tenant.RamoGeral}
	_, err := svc.RecordPayment(context.Background(), outra, d.ID, PagamentoInput{
		Valor: money("10"),
		Forma: FormaPix,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeletePayment(t *testing.T) {
	svc, repo, emp, d := newTestService(t)

	p, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("100"),
		Forma: FormaPix,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayment(context.Background(), emp, d.ID, p.ID))
	assert.Empty(t, repo.pagamentos[d.ID])

	err = svc.DeletePayment(context.Background(), emp, d.ID, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetByID_DecoraNomeEValorPago(t *testing.T) {
	svc, _, emp, d := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), emp, d.ID, PagamentoInput{
		Valor: money("120"),
		Forma: FormaBoleto,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), emp, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "João Souza", got.ClienteNome)
	assert.Equal(t, "120", got.ValorPago.String())
	assert.Len(t, got.Pagamentos, 1)
}
