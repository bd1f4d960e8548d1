package documento

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor/internal/core/types"
)

func doc(total string, pagamentos ...string) *Documento {
	d := &Documento{Total: types.MustMoney(total)}
	for _, v := range pagamentos {
		d.Pagamentos = append(d.Pagamentos, Pagamento{Valor: types.MustMoney(v)})
	}
	d.SomarPagamentos()
	return d
}

func TestStatusFinanceiro(t *testing.T) {
	tests := []struct {
		name string
		d    *Documento
		want StatusFinanceiro
	}{
		{"sem valor", doc("0"), StatusSemValor},
		{"sem valor mesmo com pagamento", doc("0", "50"), StatusSemValor},
		{"em aberto", doc("100"), StatusEmAberto},
		{"parcial", doc("100", "40"), StatusParcial},
		{"pago exato", doc("100", "60", "40"), StatusPago},
		{"pago com sobra", doc("100", "150"), StatusPago},
		{"estorno reabre", doc("100", "100", "-30"), StatusParcial},
		{"estorno total", doc("100", "100", "-100"), StatusEmAberto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Status())
		})
	}
}

func TestSaldo(t *testing.T) {
	assert.Equal(t, "60", doc("100", "40").Saldo().String())
	assert.Equal(t, "-50", doc("100", "150").Saldo().String())
	assert.Equal(t, "100", doc("100").Saldo().String())
}

func TestFormaPagamentoValid(t *testing.T) {
	for _, f := range []FormaPagamento{FormaDinheiro, FormaCartao, FormaPix, FormaBoleto, FormaOutro} {
		assert.True(t, f.Valid())
	}
	assert.False(t, FormaPagamento("CHEQUE").Valid())
	assert.False(t, FormaPagamento("").Valid())
}

func TestTipoValid(t *testing.T) {
	assert.True(t, TipoVenda.Valid())
	assert.True(t, TipoOS.Valid())
	assert.False(t, Tipo("ORCAMENTO").Valid())
}
