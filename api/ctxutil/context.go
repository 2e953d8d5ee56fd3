// Package ctxutil moves request-scoped values between gin and handlers.
package ctxutil

import (
	"propertyhub/domain/identity"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// SetCaller stores the validated caller identity.
func SetCaller(c *gin.Context, caller identity.Context) {
	c.Set(callerKey, caller)
}

// Caller returns the identity stored by the identity middleware, or the zero
// Context when the route is not protected.
func Caller(c *gin.Context) identity.Context {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(identity.Context); ok {
			return caller
		}
	}
	return identity.Context{}
}
