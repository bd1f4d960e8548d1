package handlers

import (
	"gestor/internal/domain/catalogs/cliente"
	"gestor/internal/infrastructure/http/v1/dto"
)

// ClienteHandler handles cliente catalog endpoints.
type ClienteHandler struct {
	*CatalogHandler[*cliente.Cliente, dto.ClienteRequest]
}

// NewClienteHandler creates a new cliente handler.
func NewClienteHandler(base *BaseHandler, service *cliente.Service) *ClienteHandler {
	return &ClienteHandler{
		CatalogHandler: NewCatalogHandler(
			base,
			service,
			func(req dto.ClienteRequest) (*cliente.Cliente, error) {
				return req.ToCliente(), nil
			},
			func(req dto.ClienteRequest, existing *cliente.Cliente) *cliente.Cliente {
				return req.ApplyTo(existing)
			},
		),
	}
}
