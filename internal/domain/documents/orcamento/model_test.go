package orcamento

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/id"
	"gestor/internal/core/types"
)

func TestItemVazio(t *testing.T) {
	assert.True(t, Item{}.Vazio())
	assert.True(t, Item{Descricao: "   "}.Vazio())

	assert.False(t, Item{Descricao: "troca de óleo"}.Vazio())
	assert.False(t, Item{TipoItem: TipoItemServico}.Vazio())
	assert.False(t, Item{Quantidade: types.MustMoney("1")}.Vazio())
	assert.False(t, Item{PrecoUnitario: types.MustMoney("9.90")}.Vazio())
}

func TestNormalizarItens(t *testing.T) {
	o := NewOrcamento(id.New(), id.New())
	o.Itens = []Item{
		{Descricao: "filtro", Quantidade: types.MustMoney("2"), PrecoUnitario: types.MustMoney("35.50")},
		{}, // empty draft, must be dropped
		{Descricao: "mão de obra", Quantidade: types.MustMoney("1.5"), PrecoUnitario: types.MustMoney("80")},
	}

	o.NormalizarItens()

	require.Len(t, o.Itens, 2)
	assert.Equal(t, 1, o.Itens[0].Seq)
	assert.Equal(t, 2, o.Itens[1].Seq)
	assert.Equal(t, "71", o.Itens[0].Total.String())
	assert.Equal(t, "120", o.Itens[1].Total.String())
	assert.Equal(t, "191", o.TotalItens().String())

	for _, item := range o.Itens {
		assert.False(t, id.IsNil(item.ID))
		assert.Equal(t, o.ID, item.OrcamentoID)
	}
}

func TestNormalizarItens_DescricaoSemValores(t *testing.T) {
	o := NewOrcamento(id.New(), id.New())
	o.Itens = []Item{{Descricao: "cortesia"}}

	o.NormalizarItens()

	require.Len(t, o.Itens, 1)
	assert.True(t, o.Itens[0].Total.IsZero())
	assert.True(t, o.TotalItens().IsZero())
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		o := NewOrcamento(id.New(), id.New())
		assert.NoError(t, o.Validate(context.Background()))
	})

	t.Run("missing cliente", func(t *testing.T) {
		o := NewOrcamento(id.New(), id.Nil())
		err := o.Validate(context.Background())
		require.Error(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		o := NewOrcamento(id.New(), id.New())
		o.Status = "PENDENTE"
		require.Error(t, o.Validate(context.Background()))
	})

	t.Run("negative quantidade", func(t *testing.T) {
		o := NewOrcamento(id.New(), id.New())
		o.Itens = []Item{{Descricao: "x", Quantidade: types.MustMoney("-1")}}
		require.Error(t, o.Validate(context.Background()))
	})
}

func TestDuplicar_PreservaTotaisArmazenados(t *testing.T) {
	o := NewOrcamento(id.New(), id.New())
	o.Numero = "ORC-2026-000007"
	o.Status = StatusAprovado
	o.Placa = "ABC1D23"
	o.Observacoes = "revisão dos 60 mil"
	// Stored totals deliberately differ from quantidade × preço: a copy
	// must carry them as-is, never recompute.
	o.Itens = []Item{
		{ID: id.New(), Seq: 1, Descricao: "peça", Quantidade: types.MustMoney("2"), PrecoUnitario: types.MustMoney("50"), Total: types.MustMoney("90")},
		{ID: id.New(), Seq: 2, Descricao: "serviço", Quantidade: types.MustMoney("1"), PrecoUnitario: types.MustMoney("200"), Total: types.MustMoney("200")},
	}
	o.Total = types.MustMoney("290")

	dup := o.Duplicar()

	assert.NotEqual(t, o.ID, dup.ID)
	assert.Empty(t, dup.Numero)
	assert.Equal(t, StatusRascunho, dup.Status)
	assert.Equal(t, o.ClienteID, dup.ClienteID)
	assert.Equal(t, o.EmpresaID, dup.EmpresaID)
	assert.Equal(t, "ABC1D23", dup.Placa)
	assert.Equal(t, "revisão dos 60 mil", dup.Observacoes)

	require.Len(t, dup.Itens, 2)
	assert.Equal(t, "90", dup.Itens[0].Total.String())
	assert.Equal(t, "200", dup.Itens[1].Total.String())
	assert.Equal(t, "290", dup.Total.String())

	// independent copies
	assert.NotEqual(t, o.Itens[0].ID, dup.Itens[0].ID)
	assert.Equal(t, dup.ID, dup.Itens[0].OrcamentoID)

	// source untouched
	assert.Equal(t, StatusAprovado, o.Status)
	assert.Equal(t, "ORC-2026-000007", o.Numero)
}
