package middleware

import (
	"github.com/gin-gonic/gin"

	"gestor/internal/core/apperror"
	appctx "gestor/internal/core/context"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/domain/perfil"
)

// Empresa middleware resolves the authenticated user's empresa via their
// perfil and stores it in the request context. Must run after Auth.
//
// Handlers read the result with tenant.GetEmpresa; a request that reaches a
// tenant-scoped handler always carries a resolved empresa.
func Empresa(resolver *perfil.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := appctx.GetUser(ctx)
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		userID, err := id.Parse(user.UserID)
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid token subject"))
			c.Abort()
			return
		}

		emp, err := resolver.Resolve(ctx, userID)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(tenant.WithEmpresa(ctx, emp))
		c.Set("empresa_id", emp.ID.String())

		c.Next()
	}
}
