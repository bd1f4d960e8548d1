package conversao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/core/types"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/domain/documents/orcamento"
	"gestor/pkg/numerator"
)

type fakeTx struct{}

func (fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type numeratorFunc func() (string, error)

func (f numeratorFunc) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	return f()
}

func seqNumerator(prefix string) Numerator {
	n := 0
	return numeratorFunc(func() (string, error) {
		n++
		return fmt.Sprintf("%s-%06d", prefix, n), nil
	})
}

// orcRepoStub serves a single quote.
type orcRepoStub struct{ o *orcamento.Orcamento }

func (s *orcRepoStub) Create(ctx context.Context, o *orcamento.Orcamento) error { return nil }
func (s *orcRepoStub) GetByID(ctx context.Context, empresaID, orcamentoID id.ID) (*orcamento.Orcamento, error) {
	if s.o != nil && s.o.ID == orcamentoID && s.o.EmpresaID == empresaID {
		copied := *s.o
		return &copied, nil
	}
	return nil, apperror.NewNotFound("orcamento", orcamentoID.String())
}
func (s *orcRepoStub) Update(ctx context.Context, o *orcamento.Orcamento) error { return nil }
func (s *orcRepoStub) Delete(ctx context.Context, empresaID, orcamentoID id.ID) error {
	return nil
}
func (s *orcRepoStub) List(ctx context.Context, empresaID id.ID, filter orcamento.ListFilter) ([]*orcamento.Orcamento, error) {
	return nil, nil
}
func (s *orcRepoStub) SaveItens(ctx context.Context, orcamentoID id.ID, itens []orcamento.Item) error {
	return nil
}
func (s *orcRepoStub) GetItens(ctx context.Context, orcamentoID id.ID) ([]orcamento.Item, error) {
	return nil, nil
}
func (s *orcRepoStub) UpdateTotal(ctx context.Context, empresaID, orcamentoID id.ID, total types.Money) error {
	return nil
}
func (s *orcRepoStub) SetStatus(ctx context.Context, empresaID, orcamentoID id.ID, status orcamento.Status) error {
	return nil
}

// docRepoStub stores documents and can simulate a concurrent duplicate.
type docRepoStub struct {
	byID map[id.ID]*documento.Documento

	// duplicateOnce makes the next Create fail with a duplicate error,
	// inserting the winner's row as a concurrent transaction would.
	duplicateOnce *documento.Documento
}

func newDocRepoStub() *docRepoStub {
	return &docRepoStub{byID: make(map[id.ID]*documento.Documento)}
}

func (s *docRepoStub) Create(ctx context.Context, d *documento.Documento) error {
	if s.duplicateOnce != nil {
		winner := s.duplicateOnce
		s.duplicateOnce = nil
		s.byID[winner.ID] = winner
		return apperror.NewDuplicate("documento", "origem_orcamento_id", winner.OrigemOrcamentoID.String())
	}
	stored := *d
	s.byID[d.ID] = &stored
	return nil
}

func (s *docRepoStub) GetByID(ctx context.Context, empresaID, documentoID id.ID) (*documento.Documento, error) {
	d, ok := s.byID[documentoID]
	if !ok || d.EmpresaID != empresaID {
		return nil, apperror.NewNotFound("documento", documentoID.String())
	}
	copied := *d
	return &copied, nil
}

func (s *docRepoStub) GetByOrigem(ctx context.Context, empresaID, orcamentoID id.ID, tipo documento.Tipo) (*documento.Documento, error) {
	for _, d := range s.byID {
		if d.EmpresaID == empresaID && d.Tipo == tipo &&
			d.OrigemOrcamentoID != nil && *d.OrigemOrcamentoID == orcamentoID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("documento", orcamentoID.String())
}

func (s *docRepoStub) List(ctx context.Context, empresaID id.ID, filter documento.ListFilter) ([]*documento.Documento, error) {
	return nil, nil
}
func (s *docRepoStub) GetPagamentos(ctx context.Context, documentoID id.ID) ([]documento.Pagamento, error) {
	return nil, nil
}
func (s *docRepoStub) SomaPagamentos(ctx context.Context, documentoID id.ID) (types.Money, error) {
	return types.Zero(), nil
}
func (s *docRepoStub) AddPagamento(ctx context.Context, p *documento.Pagamento) error { return nil }
func (s *docRepoStub) DeletePagamento(ctx context.Context, documentoID, pagamentoID id.ID) error {
	return nil
}

func newQuote(emp *tenant.Empresa) *orcamento.Orcamento {
	o := orcamento.NewOrcamento(emp.ID, id.New())
	o.Numero = "ORC-000009"
	o.Status = orcamento.StatusAprovado
	o.Placa = "XYZ9A88"
	o.VeiculoDescricao = "Gol 1.0"
	o.Observacoes = "troca completa"
	o.Total = types.MustMoney("450.00")
	return o
}

func TestConvert_CriaDocumento(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	o := newQuote(emp)
	docs := newDocRepoStub()
	svc := NewService(&orcRepoStub{o: o}, docs, seqNumerator("OS"), fakeTx{}, nil)

	res, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoOS)
	require.NoError(t, err)
	assert.True(t, res.Created)

	d := res.Documento
	assert.Equal(t, documento.TipoOS, d.Tipo)
	assert.Equal(t, "OS-000001", d.Numero)
	assert.Equal(t, o.ClienteID, d.ClienteID)
	assert.Equal(t, "450", d.Total.String())
	assert.Equal(t, "XYZ9A88", d.Placa)
	assert.Equal(t, "troca completa", d.Observacoes)
	require.NotNil(t, d.OrigemOrcamentoID)
	assert.Equal(t, o.ID, *d.OrigemOrcamentoID)

	// quote status untouched
	assert.Equal(t, orcamento.StatusAprovado, o.Status)
}

func TestConvert_Idempotente(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	o := newQuote(emp)
	docs := newDocRepoStub()
	svc := NewService(&orcRepoStub{o: o}, docs, seqNumerator("VEN"), fakeTx{}, nil)

	first, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoVenda)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoVenda)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Documento.ID, second.Documento.ID)
	assert.Len(t, docs.byID, 1)
}

func TestConvert_TiposIndependentes(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	o := newQuote(emp)
	docs := newDocRepoStub()
	svc := NewService(&orcRepoStub{o: o}, docs, seqNumerator("DOC"), fakeTx{}, nil)

	venda, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoVenda)
	require.NoError(t, err)
	os, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoOS)
	require.NoError(t, err)

	assert.True(t, venda.Created)
	assert.True(t, os.Created)
	assert.NotEqual(t, venda.Documento.ID, os.Documento.ID)
}

func TestConvert_TipoInvalido(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoGeral}
	svc := NewService(&orcRepoStub{}, newDocRepoStub(), seqNumerator("X"), fakeTx{}, nil)

	_, err := svc.Convert(context.Background(), emp, id.New(), "ORCAMENTO")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestConvert_OrcamentoInexistente(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoGeral}
	svc := NewService(&orcRepoStub{}, newDocRepoStub(), seqNumerator("X"), fakeTx{}, nil)

	_, err := svc.Convert(context.Background(), emp, id.New(), documento.TipoVenda)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConvert_CorridaConcorrente(t *testing.T) {
	emp := &tenant.Empresa{ID: id.New(), Nome: "Oficina Alfa", Ramo: tenant.RamoAuto}
	o := newQuote(emp)
	docs := newDocRepoStub()

	// A concurrent request inserted this row between our existence check
	// and our insert; the unique index rejects ours.
	origem := o.ID
	winner := &documento.Documento{}
	winner.Document = entity.NewDocument()
	winner.EmpresaID = emp.ID
	winner.ClienteID = o.ClienteID
	winner.Tipo = documento.TipoOS
	winner.Numero = "OS-000042"
	winner.OrigemOrcamentoID = &origem
	winner.Total = o.Total
	docs.duplicateOnce = winner

	svc := NewService(&orcRepoStub{o: o}, docs, seqNumerator("OS"), fakeTx{}, nil)

	res, err := svc.Convert(context.Background(), emp, o.ID, documento.TipoOS)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, winner.ID, res.Documento.ID)
	assert.Equal(t, "OS-000042", res.Documento.Numero)
	assert.Len(t, docs.byID, 1)
}
