package handlers

import (
	"gestor/internal/domain/catalogs/servico"
	"gestor/internal/infrastructure/http/v1/dto"
)

// ServicoHandler handles serviço catalog endpoints.
type ServicoHandler struct {
	*CatalogHandler[*servico.Servico, dto.ServicoRequest]
}

// NewServicoHandler creates a new serviço handler.
func NewServicoHandler(base *BaseHandler, service *servico.Service) *ServicoHandler {
	return &ServicoHandler{
		CatalogHandler: NewCatalogHandler(
			base,
			service,
			func(req dto.ServicoRequest) (*servico.Servico, error) {
				return req.ToServico(), nil
			},
			func(req dto.ServicoRequest, existing *servico.Servico) *servico.Servico {
				return req.ApplyTo(existing)
			},
		),
	}
}
