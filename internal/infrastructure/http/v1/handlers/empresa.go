package handlers

import (
	"github.com/gin-gonic/gin"

	"gestor/internal/domain/catalogs/empresa"
)

// EmpresaHandler exposes the authenticated user's own empresa.
type EmpresaHandler struct {
	*BaseHandler
	service *empresa.Service
}

// NewEmpresaHandler creates a new empresa handler.
func NewEmpresaHandler(base *BaseHandler, service *empresa.Service) *EmpresaHandler {
	return &EmpresaHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /empresa - the full record of the resolved empresa.
func (h *EmpresaHandler) Get(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), emp.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}
