package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/infrastructure/http/v1/dto"
)

// DocumentoHandler handles sale/service-order endpoints.
type DocumentoHandler struct {
	*BaseHandler
	service *documento.Service
	history AuditHistorian
}

// NewDocumentoHandler creates a new documento handler. history may be nil
// when the audit recorder does not support read-back.
func NewDocumentoHandler(base *BaseHandler, service *documento.Service, history AuditHistorian) *DocumentoHandler {
	return &DocumentoHandler{
		BaseHandler: base,
		service:     service,
		history:     history,
	}
}

// List handles GET /document/documentos
func (h *DocumentoHandler) List(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	filter := documento.ListFilter{
		Texto:  c.Query("texto"),
		Tipo:   documento.Tipo(c.Query("tipo")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if filter.DataDe, ok = h.parseDateQuery(c, "dataDe"); !ok {
		return
	}
	if filter.DataAte, ok = h.parseDateQuery(c, "dataAte"); !ok {
		return
	}

	rows, err := h.service.List(c.Request.Context(), emp, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      rows,
		TotalCount: int64(len(rows)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

func (h *DocumentoHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date").
			WithDetail("field", key).
			WithDetail("value", val))
		return nil, false
	}
	return &parsed, true
}

// Get handles GET /document/documentos/:id - detail with payment ledger.
func (h *DocumentoHandler) Get(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	documentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), emp, documentoID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"documento":        d,
		"saldo":            d.Saldo(),
		"statusFinanceiro": d.Status(),
	})
}

// Historico handles GET /document/documentos/:id/historico
// The document is fetched first so another empresa's trail reads as not-found.
func (h *DocumentoHandler) Historico(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	documentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), emp, documentoID); err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.history.GetEntityHistory(c.Request.Context(), "documento", documentoID, historicoLimit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fromAuditEntries(entries))
}

// AddPagamento handles POST /document/documentos/:id/pagamentos
func (h *DocumentoHandler) AddPagamento(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	documentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.PagamentoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), emp, documentoID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p)
}

// DeletePagamento handles DELETE /document/documentos/:id/pagamentos/:pagamentoId
func (h *DocumentoHandler) DeletePagamento(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	documentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	pagamentoID, err := id.Parse(c.Param("pagamentoId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid pagamentoId format"))
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), emp, documentoID, pagamentoID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
