// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/domain"
	"gestor/internal/infrastructure/http/v1/dto"
)

// CatalogCrud is the service surface the generic catalog handler needs.
// The concrete catalog services (cliente, produto, servico) satisfy it.
type CatalogCrud[T domain.Scoped] interface {
	Create(ctx context.Context, emp *tenant.Empresa, entity T) error
	GetByID(ctx context.Context, emp *tenant.Empresa, entityID id.ID) (T, error)
	Update(ctx context.Context, emp *tenant.Empresa, entity T) error
	Delete(ctx context.Context, emp *tenant.Empresa, entityID id.ID) error
	List(ctx context.Context, emp *tenant.Empresa, filter domain.ListFilter) (domain.ListResult[T], error)
}

// CatalogHandler provides generic HTTP handlers for catalog entities.
// Requests bind to a DTO; responses are the domain entities themselves
// (their json tags define the wire shape).
type CatalogHandler[T domain.Scoped, Req any] struct {
	*BaseHandler
	service CatalogCrud[T]

	// newEntity builds a fresh entity from the create payload
	newEntity func(req Req) (T, error)

	// applyTo maps the update payload onto the stored entity
	applyTo func(req Req, existing T) T
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T domain.Scoped, Req any](
	base *BaseHandler,
	service CatalogCrud[T],
	newEntity func(req Req) (T, error),
	applyTo func(req Req, existing T) T,
) *CatalogHandler[T, Req] {
	return &CatalogHandler[T, Req]{
		BaseHandler: base,
		service:     service,
		newEntity:   newEntity,
		applyTo:     applyTo,
	}
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T, Req]) List(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "nome")

	if ativo := c.Query("ativo"); ativo != "" {
		val := ativo == "true"
		filter.Ativo = &val
	}

	result, err := h.service.List(c.Request.Context(), emp, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T, Req]) Get(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), emp, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Create handles POST /{entity} - create new entity.
func (h *CatalogHandler[T, Req]) Create(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.newEntity(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), emp, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity)
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T, Req]) Update(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), emp, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.applyTo(req, existing)

	if err := h.service.Update(c.Request.Context(), emp, updated); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /{entity}/:id - remove entity.
// Records referenced by quotes or documents come back as an in-use error.
func (h *CatalogHandler[T, Req]) Delete(c *gin.Context) {
	emp, ok := h.Empresa(c)
	if !ok {
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), emp, entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
