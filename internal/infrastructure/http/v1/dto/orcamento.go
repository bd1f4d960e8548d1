package dto

import (
	"time"

	"gestor/internal/core/apperror"
	"gestor/internal/core/entity"
	"gestor/internal/core/id"
	"gestor/internal/core/types"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/domain/documents/orcamento"
)

// ItemRequest is one line on a quote payload. Empty lines (no tipo, no
// referenced record, no values) are accepted and dropped on save.
type ItemRequest struct {
	TipoItem      string      `json:"tipoItem"`
	ProdutoID     *string     `json:"produtoId"`
	ServicoID     *string     `json:"servicoId"`
	Descricao     string      `json:"descricao"`
	Quantidade    types.Money `json:"quantidade"`
	PrecoUnitario types.Money `json:"precoUnitario"`
}

// OrcamentoRequest for creating and updating quotes.
type OrcamentoRequest struct {
	ClienteID        string        `json:"clienteId" binding:"required"`
	Data             *time.Time    `json:"data"`
	Validade         *time.Time    `json:"validade"`
	Placa            string        `json:"placa"`
	VeiculoDescricao string        `json:"veiculoDescricao"`
	Observacoes      string        `json:"observacoes"`
	Status           string        `json:"status"`
	Itens            []ItemRequest `json:"itens"`
}

// ToOrcamento builds a new domain entity from the request.
func (r OrcamentoRequest) ToOrcamento() (*orcamento.Orcamento, error) {
	clienteID, err := id.Parse(r.ClienteID)
	if err != nil {
		return nil, apperror.NewValidation("invalid clienteId").
			WithDetail("field", "clienteId")
	}

	o := &orcamento.Orcamento{
		Document:         entity.NewDocument(),
		ClienteID:        clienteID,
		Validade:         r.Validade,
		Placa:            r.Placa,
		VeiculoDescricao: r.VeiculoDescricao,
		Status:           orcamento.Status(r.Status),
	}
	o.Observacoes = r.Observacoes
	if r.Data != nil {
		o.Data = *r.Data
	}

	o.Itens, err = toItens(r.Itens)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func toItens(reqs []ItemRequest) ([]orcamento.Item, error) {
	itens := make([]orcamento.Item, 0, len(reqs))
	for i, req := range reqs {
		item := orcamento.Item{
			TipoItem:      orcamento.TipoItem(req.TipoItem),
			Descricao:     req.Descricao,
			Quantidade:    req.Quantidade,
			PrecoUnitario: req.PrecoUnitario,
		}

		if req.ProdutoID != nil && *req.ProdutoID != "" {
			parsed, err := id.Parse(*req.ProdutoID)
			if err != nil {
				return nil, apperror.NewValidation("invalid produtoId").
					WithDetail("item", i)
			}
			item.ProdutoID = &parsed
		}
		if req.ServicoID != nil && *req.ServicoID != "" {
			parsed, err := id.Parse(*req.ServicoID)
			if err != nil {
				return nil, apperror.NewValidation("invalid servicoId").
					WithDetail("item", i)
			}
			item.ServicoID = &parsed
		}

		itens = append(itens, item)
	}
	return itens, nil
}

// SetStatusRequest transitions a quote's lifecycle state.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ConvertRequest turns a quote into a documento.
type ConvertRequest struct {
	Tipo string `json:"tipo" binding:"required"`
}

// ConvertResponse reports the conversion outcome. Message is set when the
// quote had already been converted and the existing documento is returned.
type ConvertResponse struct {
	Documento *documento.Documento `json:"documento"`
	Message   string               `json:"message,omitempty"`
}
