package handlers

import (
	"github.com/gin-gonic/gin"

	"gestor/internal/core/apperror"
	appctx "gestor/internal/core/context"
	"gestor/internal/core/id"
	"gestor/internal/domain/auth"
	"gestor/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLoginResult(result))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	u, err := h.service.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.UsuarioResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Nome:  u.Nome,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
}
