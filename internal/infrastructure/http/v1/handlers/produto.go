package handlers

import (
	"gestor/internal/domain/catalogs/produto"
	"gestor/internal/infrastructure/http/v1/dto"
)

// ProdutoHandler handles produto catalog endpoints.
type ProdutoHandler struct {
	*CatalogHandler[*produto.Produto, dto.ProdutoRequest]
}

// NewProdutoHandler creates a new produto handler.
func NewProdutoHandler(base *BaseHandler, service *produto.Service) *ProdutoHandler {
	return &ProdutoHandler{
		CatalogHandler: NewCatalogHandler(
			base,
			service,
			func(req dto.ProdutoRequest) (*produto.Produto, error) {
				return req.ToProduto(), nil
			},
			func(req dto.ProdutoRequest, existing *produto.Produto) *produto.Produto {
				return req.ApplyTo(existing)
			},
		),
	}
}
