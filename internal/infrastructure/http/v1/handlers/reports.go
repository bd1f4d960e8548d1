package handlers

import (
	"github.com/gin-gonic/gin"

	"gestor/internal/domain/reports"
)

// ReportsHandler handles dashboard endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), emp)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dashboard)
}
