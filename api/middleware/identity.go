package middleware

import (
	"propertyhub/api/ctxutil"
	"propertyhub/api/response"
	"propertyhub/config"
	"propertyhub/domain/identity"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware reads the caller headers forwarded by the gateway and
// rejects the request when they are missing or carry an unknown role.
// Role requirements are enforced later by the application services.
func IdentityMiddleware(cfg *config.IdentityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := identity.Validate(c.GetHeader(cfg.UserIDHeader), c.GetHeader(cfg.RoleHeader))
		if err != nil {
			response.HandleAppError(c, err)
			return
		}

		ctxutil.SetCaller(c, caller)
		c.Next()
	}
}
