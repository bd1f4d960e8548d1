package dto

import (
	"gestor/internal/core/entity"
	"gestor/internal/domain/catalogs/cliente"
)

// ClienteRequest for creating and updating clientes.
type ClienteRequest struct {
	Nome        string  `json:"nome" binding:"required"`
	Documento   *string `json:"documento"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"`
	Observacoes *string `json:"observacoes"`
}

// ToCliente builds a new domain entity from the request.
func (r ClienteRequest) ToCliente() *cliente.Cliente {
	return &cliente.Cliente{
		Catalog:     entity.NewCatalog(r.Nome),
		Documento:   r.Documento,
		Telefone:    r.Telefone,
		Email:       r.Email,
		Observacoes: r.Observacoes,
	}
}

// ApplyTo maps the request onto an existing entity.
func (r ClienteRequest) ApplyTo(c *cliente.Cliente) *cliente.Cliente {
	c.Nome = r.Nome
	c.Documento = r.Documento
	c.Telefone = r.Telefone
	c.Email = r.Email
	c.Observacoes = r.Observacoes
	return c
}
