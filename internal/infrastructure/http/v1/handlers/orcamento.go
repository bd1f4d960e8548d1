package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/domain/documents/conversao"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/domain/documents/orcamento"
	"gestor/internal/infrastructure/http/v1/dto"
)

// OrcamentoHandler handles quote endpoints.
type OrcamentoHandler struct {
	*BaseHandler
	service   *orcamento.Service
	converter *conversao.Service
	history   AuditHistorian
}

// NewOrcamentoHandler creates a new orcamento handler. history may be nil
// when the audit recorder does not support read-back.
func NewOrcamentoHandler(base *BaseHandler, service *orcamento.Service, converter *conversao.Service, history AuditHistorian) *OrcamentoHandler {
	return &OrcamentoHandler{
		BaseHandler: base,
		service:     service,
		converter:   converter,
		history:     history,
	}
}

// List handles GET /document/orcamentos
func (h *OrcamentoHandler) List(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
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

func (h *OrcamentoHandler) parseFilter(c *gin.Context) (orcamento.ListFilter, bool) {
	filter := orcamento.ListFilter{
		Texto:  c.Query("texto"),
		Status: orcamento.Status(c.Query("status")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	var ok bool
	if filter.DataDe, ok = h.parseDateQuery(c, "dataDe"); !ok {
		return filter, false
	}
	if filter.DataAte, ok = h.parseDateQuery(c, "dataAte"); !ok {
		return filter, false
	}
	return filter, true
}

func (h *OrcamentoHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
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

// Get handles GET /document/orcamentos/:id
func (h *OrcamentoHandler) Get(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), emp, orcamentoID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// Create handles POST /document/orcamentos
func (h *OrcamentoHandler) Create(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	var req dto.OrcamentoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := req.ToOrcamento()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), emp, o); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, o)
}

// Update handles PUT /document/orcamentos/:id
func (h *OrcamentoHandler) Update(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.OrcamentoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := req.ToOrcamento()
	if err != nil {
		h.Error(c, err)
		return
	}
	o.ID = orcamentoID

	if err := h.service.Update(c.Request.Context(), emp, o); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// Delete handles DELETE /document/orcamentos/:id
func (h *OrcamentoHandler) Delete(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), emp, orcamentoID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetStatus handles POST /document/orcamentos/:id/status
func (h *OrcamentoHandler) SetStatus(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	err = h.service.SetStatus(c.Request.Context(), emp, orcamentoID, orcamento.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status atualizado")
}

// Duplicar handles POST /document/orcamentos/:id/duplicar
func (h *OrcamentoHandler) Duplicar(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	dup, err := h.service.Duplicar(c.Request.Context(), emp, orcamentoID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dup)
}

// Historico handles GET /document/orcamentos/:id/historico
// The quote is fetched first so another empresa's trail reads as not-found.
func (h *OrcamentoHandler) Historico(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), emp, orcamentoID); err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.history.GetEntityHistory(c.Request.Context(), "orcamento", orcamentoID, historicoLimit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fromAuditEntries(entries))
}

// Converter handles POST /document/orcamentos/:id/converter
// Returns 201 with the new documento, or 200 with the existing one when the
// quote was already converted to the requested tipo.
func (h *OrcamentoHandler) Converter(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	orcamentoID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ConvertRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.converter.Convert(c.Request.Context(), emp, orcamentoID, documento.Tipo(req.Tipo))
	if err != nil {
		h.Error(c, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, dto.ConvertResponse{
			Documento: result.Documento,
			Message:   "documento já existente para este orçamento",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.ConvertResponse{Documento: result.Documento})
}
