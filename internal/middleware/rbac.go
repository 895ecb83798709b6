package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

// RequireRoles admits only identities holding one of roles. It must run
// after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrMissingCredential, ""))
			c.Abort()
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "Insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
