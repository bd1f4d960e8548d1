package dto

import (
	"gestor/internal/core/entity"
	"gestor/internal/core/types"
	"gestor/internal/domain/catalogs/produto"
)

// ProdutoRequest for creating and updating produtos.
type ProdutoRequest struct {
	Nome            string      `json:"nome" binding:"required"`
	Descricao       string      `json:"descricao"`
	PrecoVenda      types.Money `json:"precoVenda"`
	ControlaEstoque bool        `json:"controlaEstoque"`
	EstoqueAtual    types.Money `json:"estoqueAtual"`
	Ativo           *bool       `json:"ativo"`
}

// ToProduto builds a new domain entity from the request.
func (r ProdutoRequest) ToProduto() *produto.Produto {
	p := &produto.Produto{
		Catalog:         entity.NewCatalog(r.Nome),
		Descricao:       r.Descricao,
		PrecoVenda:      r.PrecoVenda,
		ControlaEstoque: r.ControlaEstoque,
		EstoqueAtual:    r.EstoqueAtual,
		Ativo:           true,
	}
	if r.Ativo != nil {
		p.Ativo = *r.Ativo
	}
	return p
}

// ApplyTo maps the request onto an existing entity.
func (r ProdutoRequest) ApplyTo(p *produto.Produto) *produto.Produto {
	p.Nome = r.Nome
	p.Descricao = r.Descricao
	p.PrecoVenda = r.PrecoVenda
	p.ControlaEstoque = r.ControlaEstoque
	p.EstoqueAtual = r.EstoqueAtual
	if r.Ativo != nil {
		p.Ativo = *r.Ativo
	}
	return p
}
