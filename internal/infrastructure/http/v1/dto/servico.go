package dto

import (
	"gestor/internal/core/entity"
	"gestor/internal/core/types"
	"gestor/internal/domain/catalogs/servico"
)

// ServicoRequest for creating and updating serviços.
type ServicoRequest struct {
	Nome           string      `json:"nome" binding:"required"`
	Descricao      string      `json:"descricao"`
	Preco          types.Money `json:"preco"`
	DuracaoMinutos *int        `json:"duracaoMinutos"`
	Ativo          *bool       `json:"ativo"`
}

// ToServico builds a new domain entity from the request.
func (r ServicoRequest) ToServico() *servico.Servico {
	s := &servico.Servico{
		Catalog:        entity.NewCatalog(r.Nome),
		Descricao:      r.Descricao,
		Preco:          r.Preco,
		DuracaoMinutos: r.DuracaoMinutos,
		Ativo:          true,
	}
	if r.Ativo != nil {
		s.Ativo = *r.Ativo
	}
	return s
}

// ApplyTo maps the request onto an existing entity.
func (r ServicoRequest) ApplyTo(s *servico.Servico) *servico.Servico {
	s.Nome = r.Nome
	s.Descricao = r.Descricao
	s.Preco = r.Preco
	s.DuracaoMinutos = r.DuracaoMinutos
	if r.Ativo != nil {
		s.Ativo = *r.Ativo
	}
	return s
}
